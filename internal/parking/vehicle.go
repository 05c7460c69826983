package parking

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// plateChars is the accepted plate alphabet after normalization.
var plateChars = regexp.MustCompile(`^[A-Z0-9-]+$`)

// Vehicle is one parking stay. A record with a nil ExitTime is "open" and
// occupies a slot; once closed it is kept as history and never mutated again.
type Vehicle struct {
	ID        uuid.UUID       `json:"id"`
	Plate     string          `json:"plate"`
	Model     string          `json:"model"`
	EntryTime time.Time       `json:"entry_time"`
	ExitTime  *time.Time      `json:"exit_time,omitempty"`
	AmountDue decimal.Decimal `json:"amount_due"`
	Paid      bool            `json:"paid"`
}

// Open reports whether the vehicle is still parked.
func (v Vehicle) Open() bool {
	return v.ExitTime == nil
}

// clone returns a copy that shares no pointers with the receiver, so callers
// can never mutate ledger-owned state through a returned record.
func (v *Vehicle) clone() Vehicle {
	out := *v
	if v.ExitTime != nil {
		t := *v.ExitTime
		out.ExitTime = &t
	}
	return out
}

// NormalizePlate trims surrounding whitespace and uppercases the plate.
// It is applied to every plate before it reaches the ledger.
func NormalizePlate(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidPlate reports whether a normalized plate is non-empty and uses only
// letters, digits and dashes.
func ValidPlate(plate string) bool {
	return plateChars.MatchString(plate)
}

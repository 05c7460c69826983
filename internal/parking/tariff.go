package parking

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tariff computes the fee for a completed stay. HourlyRate is charged per
// started hour; BaseFee, when configured, is a flat amount added on top of
// any non-zero charge. Both default to zero values.
type Tariff struct {
	HourlyRate decimal.Decimal
	BaseFee    decimal.Decimal
}

// BilledHours is the stay duration rounded up to the next whole hour.
// A non-positive duration (clock skew) bills zero hours, never negative.
func BilledHours(entry, exit time.Time) int64 {
	d := exit.Sub(entry)
	if d <= 0 {
		return 0
	}
	hours := d / time.Hour
	if d%time.Hour != 0 {
		hours++
	}
	return int64(hours)
}

// Charge returns the amount due for a stay from entry to exit. The result
// depends only on the two timestamps and the tariff, so the same inputs
// always produce the same charge.
func (t Tariff) Charge(entry, exit time.Time) decimal.Decimal {
	hours := BilledHours(entry, exit)
	if hours == 0 {
		return decimal.Zero
	}
	charge := t.HourlyRate.Mul(decimal.NewFromInt(hours))
	return charge.Add(t.BaseFee)
}

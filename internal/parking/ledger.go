package parking

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ledger is the single source of truth for who is currently parked. It owns
// the record map, enforces the capacity and one-open-record-per-plate
// invariants, and keeps closed records as history. Every check-then-act
// sequence runs as one critical section under mu; no operation performs I/O
// while holding the lock, so all calls complete in bounded time.
type Ledger struct {
	mu       sync.Mutex
	capacity int
	open     map[string]*Vehicle
	history  []*Vehicle
	now      func() time.Time
}

// LedgerOption configures a Ledger at construction.
type LedgerOption func(*Ledger)

// WithClock replaces the ledger's time source. Test hook.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

func NewLedger(capacity int, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		capacity: capacity,
		open:     make(map[string]*Vehicle),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Capacity returns the configured maximum number of open records.
func (l *Ledger) Capacity() int {
	return l.capacity
}

// RecordEntry creates an open record for plate, or fails with
// ErrCapacityExceeded when every slot is taken, or ErrAlreadyParked when an
// open record for the plate already exists. The capacity check, the
// duplicate check and the insert happen atomically, so concurrent entries
// can never push the open count past capacity or open the same plate twice.
// The plate must already be normalized.
func (l *Ledger) RecordEntry(plate, model string) (Vehicle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.open) >= l.capacity {
		return Vehicle{}, ErrCapacityExceeded
	}
	if _, exists := l.open[plate]; exists {
		return Vehicle{}, ErrAlreadyParked
	}

	v := &Vehicle{
		ID:        uuid.New(),
		Plate:     plate,
		Model:     model,
		EntryTime: l.now(),
	}
	l.open[plate] = v
	l.history = append(l.history, v)

	return v.clone(), nil
}

// RecordExit closes the open record for plate: it stamps the exit time,
// computes the charge from the tariff, marks the record paid and returns it.
// The lookup and the mutation are one critical section, so the same record
// can never be closed twice. Fails with ErrVehicleNotFound when the plate
// has no open record.
func (l *Ledger) RecordExit(plate string, tariff Tariff) (Vehicle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.open[plate]
	if !ok {
		return Vehicle{}, ErrVehicleNotFound
	}

	exit := l.now()
	if exit.Before(v.EntryTime) {
		// Clock skew: never record an exit earlier than the entry.
		exit = v.EntryTime
	}
	v.ExitTime = &exit
	v.AmountDue = tariff.Charge(v.EntryTime, exit)
	v.Paid = true
	delete(l.open, plate)

	return v.clone(), nil
}

// CountOpen returns a snapshot count of currently open records. It may be
// stale the instant it returns; capacity decisions are made only inside
// RecordEntry.
func (l *Ledger) CountOpen() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.open)
}

// HasOpen reports whether plate currently has an open record.
func (l *Ledger) HasOpen(plate string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.open[plate]
	return ok
}

// ListAll returns the full history, open and closed, in insertion order.
// Every element is a copy.
func (l *Ledger) ListAll() []Vehicle {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Vehicle, 0, len(l.history))
	for _, v := range l.history {
		out = append(out, v.clone())
	}
	return out
}

// FindLatest returns the most recent record for plate, open or closed.
func (l *Ledger) FindLatest(plate string) (Vehicle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(l.history) - 1; i >= 0; i-- {
		if l.history[i].Plate == plate {
			return l.history[i].clone(), nil
		}
	}
	return Vehicle{}, ErrVehicleNotFound
}

// Restore seeds the ledger from a persisted snapshot, preserving order.
// Intended for startup only: it replaces any existing state. Later records
// win when a snapshot holds more than one open record for a plate.
func (l *Ledger) Restore(snapshot []Vehicle) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.open = make(map[string]*Vehicle, len(snapshot))
	l.history = make([]*Vehicle, 0, len(snapshot))
	for i := range snapshot {
		v := snapshot[i].clone()
		l.history = append(l.history, &v)
		if v.Open() {
			l.open[v.Plate] = &v
		}
	}
}

package parking

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"parking-ledger/internal/logging"
)

// SnapshotStore is the persistence gateway for the occupancy ledger. The
// ledger commits in memory first; a snapshot write that fails afterwards is
// logged and absorbed, never surfaced to the original caller.
type SnapshotStore interface {
	// Save durably replaces the previous snapshot with the given ordered
	// sequence of vehicles.
	Save(ctx context.Context, vehicles []Vehicle) error

	// Load returns the last saved snapshot in its original order, or an
	// empty slice when no snapshot exists.
	Load(ctx context.Context) ([]Vehicle, error)
}

// Service is the adapter-facing facade: it normalizes input, delegates the
// invariant-carrying work to the Ledger, and snapshots the ledger through
// the persistence gateway after each successful mutation. Durability is
// best-effort: a failed snapshot is logged and the caller still gets the
// committed in-memory result.
type Service struct {
	ledger  *Ledger
	tariff  Tariff
	gateway SnapshotStore
}

func NewService(ledger *Ledger, tariff Tariff, gateway SnapshotStore) *Service {
	return &Service{
		ledger:  ledger,
		tariff:  tariff,
		gateway: gateway,
	}
}

// Restore seeds the ledger from the last persisted snapshot. A missing or
// unreadable snapshot degrades to an empty ledger with a warning; startup
// never fails on it.
func (s *Service) Restore(ctx context.Context) {
	snapshot, err := s.gateway.Load(ctx)
	if err != nil {
		logging.Warn(ctx).Err(err).Msg("snapshot load failed, starting with empty ledger")
		return
	}
	s.ledger.Restore(snapshot)
}

// RegisterEntry records a vehicle entering the lot and returns the new open
// record. The raw plate is trimmed and uppercased before validation.
func (s *Service) RegisterEntry(ctx context.Context, rawPlate, model string) (Vehicle, error) {
	plate := NormalizePlate(rawPlate)
	if !ValidPlate(plate) {
		return Vehicle{}, ErrInvalidPlate
	}
	if strings.TrimSpace(model) == "" {
		return Vehicle{}, ErrInvalidModel
	}

	v, err := s.ledger.RecordEntry(plate, strings.TrimSpace(model))
	if err != nil {
		return Vehicle{}, err
	}

	s.persist(ctx)
	return v, nil
}

// RegisterExit closes the open record for the plate and returns the updated
// record together with the amount charged.
func (s *Service) RegisterExit(ctx context.Context, rawPlate string) (Vehicle, decimal.Decimal, error) {
	plate := NormalizePlate(rawPlate)
	if !ValidPlate(plate) {
		return Vehicle{}, decimal.Zero, ErrInvalidPlate
	}

	v, err := s.ledger.RecordExit(plate, s.tariff)
	if err != nil {
		return Vehicle{}, decimal.Zero, err
	}

	s.persist(ctx)
	return v, v.AmountDue, nil
}

// AvailableSlots returns how many slots are currently free, never negative.
func (s *Service) AvailableSlots() int {
	free := s.ledger.Capacity() - s.ledger.CountOpen()
	if free < 0 {
		return 0
	}
	return free
}

// Capacity returns the configured slot count.
func (s *Service) Capacity() int {
	return s.ledger.Capacity()
}

// ListVehicles returns the full history, open and closed, in entry order.
func (s *Service) ListVehicles() []Vehicle {
	return s.ledger.ListAll()
}

// FindByPlate returns the most recent record for a plate, open or closed.
func (s *Service) FindByPlate(rawPlate string) (Vehicle, error) {
	plate := NormalizePlate(rawPlate)
	if !ValidPlate(plate) {
		return Vehicle{}, ErrInvalidPlate
	}
	return s.ledger.FindLatest(plate)
}

// persist snapshots the ledger after the in-memory mutation has committed.
// Runs outside the ledger lock so storage latency never serializes ledger
// traffic, and absorbs failures: the caller's operation already succeeded.
func (s *Service) persist(ctx context.Context) {
	if err := s.gateway.Save(ctx, s.ledger.ListAll()); err != nil {
		logging.Warn(ctx).Err(err).Msg("snapshot save failed, in-memory ledger unaffected")
	}
}

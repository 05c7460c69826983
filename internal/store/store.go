package store

import (
	"context"

	"parking-ledger/internal/parking"
)

// SnapshotStore is the persistence gateway for the occupancy ledger. The
// ledger commits in memory first; a snapshot write that fails afterwards is
// logged and absorbed, never surfaced to the original caller.
type SnapshotStore interface {
	// Save durably replaces the previous snapshot with the given ordered
	// sequence of vehicles.
	Save(ctx context.Context, vehicles []parking.Vehicle) error

	// Load returns the last saved snapshot in its original order, or an
	// empty slice when no snapshot exists.
	Load(ctx context.Context) ([]parking.Vehicle, error)
}

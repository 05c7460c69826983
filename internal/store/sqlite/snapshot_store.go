// Package sqlite implements the snapshot gateway on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbpkg "parking-ledger/internal/db"
	"parking-ledger/internal/parking"
)

type SnapshotStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewSnapshotStore(db *sql.DB, writer *dbpkg.Worker) *SnapshotStore {
	return &SnapshotStore{db: db, writer: writer}
}

// Save replaces the stored snapshot with vehicles, preserving slice order.
// The delete and the inserts run in one transaction on the writer goroutine,
// so a reader never observes a half-written snapshot.
func (s *SnapshotStore) Save(ctx context.Context, vehicles []parking.Vehicle) error {
	return s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM vehicles;`); err != nil {
			return fmt.Errorf("snapshot clear: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
INSERT INTO vehicles(position, id, plate, model, entry_at_ms, exit_at_ms, amount_due, paid)
VALUES (?, ?, ?, ?, ?, ?, ?, ?);
`)
		if err != nil {
			return fmt.Errorf("snapshot prepare: %w", err)
		}
		defer stmt.Close()

		for i, v := range vehicles {
			var exitMs any
			if v.ExitTime != nil {
				exitMs = v.ExitTime.UTC().UnixMilli()
			}

			var paid int
			if v.Paid {
				paid = 1
			}

			if _, err := stmt.ExecContext(ctx,
				i, v.ID.String(), v.Plate, v.Model,
				v.EntryTime.UTC().UnixMilli(), exitMs,
				v.AmountDue.String(), paid,
			); err != nil {
				return fmt.Errorf("snapshot insert %s: %w", v.Plate, err)
			}
		}

		return nil
	})
}

// Load returns the stored snapshot in its saved order. An empty table yields
// an empty slice, not an error.
func (s *SnapshotStore) Load(ctx context.Context) ([]parking.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, plate, model, entry_at_ms, exit_at_ms, amount_due, paid
FROM vehicles
ORDER BY position;
`)
	if err != nil {
		return nil, fmt.Errorf("snapshot query: %w", err)
	}
	defer rows.Close()

	var out []parking.Vehicle
	for rows.Next() {
		var (
			idStr   string
			plate   string
			model   string
			entryMs int64
			exitMs  sql.NullInt64
			amount  string
			paid    int
		)
		if err := rows.Scan(&idStr, &plate, &model, &entryMs, &exitMs, &amount, &paid); err != nil {
			return nil, fmt.Errorf("snapshot scan: %w", err)
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("snapshot id %q: %w", idStr, err)
		}
		due, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("snapshot amount %q: %w", amount, err)
		}

		v := parking.Vehicle{
			ID:        id,
			Plate:     plate,
			Model:     model,
			EntryTime: time.UnixMilli(entryMs).UTC(),
			AmountDue: due,
			Paid:      paid != 0,
		}
		if exitMs.Valid {
			t := time.UnixMilli(exitMs.Int64).UTC()
			v.ExitTime = &t
		}

		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("snapshot rows: %w", err)
	}

	return out, nil
}

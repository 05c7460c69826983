package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"parking-ledger/internal/parking"
	sqlitestore "parking-ledger/internal/store/sqlite"
)

func sampleVehicles() []parking.Vehicle {
	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	exit := entry.Add(2*time.Hour + 15*time.Minute)

	return []parking.Vehicle{
		{
			ID:        uuid.New(),
			Plate:     "ABC1234",
			Model:     "Fit",
			EntryTime: entry,
			ExitTime:  &exit,
			AmountDue: decimal.RequireFromString("15.00"),
			Paid:      true,
		},
		{
			ID:        uuid.New(),
			Plate:     "XYZ9999",
			Model:     "Gol",
			EntryTime: entry.Add(30 * time.Minute),
			AmountDue: decimal.Zero,
		},
	}
}

func TestSnapshotStore_SaveLoadRoundTrip(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	s := sqlitestore.NewSnapshotStore(conn, w)
	ctx := context.Background()

	want := sampleVehicles()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d vehicles, got %d", len(want), len(got))
	}

	for i := range want {
		if got[i].ID != want[i].ID {
			t.Errorf("vehicle %d: id %s != %s", i, got[i].ID, want[i].ID)
		}
		if got[i].Plate != want[i].Plate || got[i].Model != want[i].Model {
			t.Errorf("vehicle %d: plate/model mismatch", i)
		}
		if !got[i].EntryTime.Equal(want[i].EntryTime) {
			t.Errorf("vehicle %d: entry %v != %v", i, got[i].EntryTime, want[i].EntryTime)
		}
		if (got[i].ExitTime == nil) != (want[i].ExitTime == nil) {
			t.Errorf("vehicle %d: exit nil-ness mismatch", i)
		} else if got[i].ExitTime != nil && !got[i].ExitTime.Equal(*want[i].ExitTime) {
			t.Errorf("vehicle %d: exit %v != %v", i, got[i].ExitTime, want[i].ExitTime)
		}
		if !got[i].AmountDue.Equal(want[i].AmountDue) {
			t.Errorf("vehicle %d: amount %s != %s", i, got[i].AmountDue, want[i].AmountDue)
		}
		if got[i].Paid != want[i].Paid {
			t.Errorf("vehicle %d: paid mismatch", i)
		}
	}
}

func TestSnapshotStore_SaveReplacesPreviousSnapshot(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	s := sqlitestore.NewSnapshotStore(conn, w)
	ctx := context.Background()

	if err := s.Save(ctx, sampleVehicles()); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	smaller := sampleVehicles()[:1]
	if err := s.Save(ctx, smaller); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected snapshot to be replaced, got %d vehicles", len(got))
	}
	if got[0].Plate != "ABC1234" {
		t.Errorf("expected plate ABC1234, got %s", got[0].Plate)
	}
}

func TestSnapshotStore_LoadEmpty(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	s := sqlitestore.NewSnapshotStore(conn, w)

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %d vehicles", len(got))
	}
}

func TestSnapshotStore_PreservesOrder(t *testing.T) {
	conn := openTestDB(t)
	w := newTestWriter(t, conn)
	s := sqlitestore.NewSnapshotStore(conn, w)
	ctx := context.Background()

	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	plates := []string{"CCC0003", "AAA0001", "BBB0002"}

	var vehicles []parking.Vehicle
	for _, p := range plates {
		vehicles = append(vehicles, parking.Vehicle{
			ID:        uuid.New(),
			Plate:     p,
			Model:     "Uno",
			EntryTime: entry,
			AmountDue: decimal.Zero,
		})
	}

	if err := s.Save(ctx, vehicles); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for i, p := range plates {
		if got[i].Plate != p {
			t.Errorf("position %d: expected %s, got %s", i, p, got[i].Plate)
		}
	}
}

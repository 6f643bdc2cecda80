package store

import (
	"context"
	"errors"
	"testing"

	"github.com/KyleKincer/tableyeah/pkg/timeline"
)

func testSheet(date string) timeline.DaySheet {
	return timeline.DaySheet{
		Date:   date,
		Tables: []timeline.Table{{ID: 1, Key: "1", MinCapacity: 2, MaxCapacity: 4}},
		Reservations: []timeline.Reservation{
			{ID: "r1", StartTime: "18:00", Covers: 2, Status: timeline.StatusBooked, TableIDs: []int{1}},
		},
	}
}

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, err := s.Get(ctx, "2026-08-23"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() before Put error = %v, want ErrNotFound", err)
	}

	sheet := testSheet("2026-08-23")
	if err := s.Put(ctx, sheet); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := s.Get(ctx, "2026-08-23")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got.Reservations) != 1 || got.Reservations[0].ID != "r1" {
		t.Errorf("Get() = %+v, want stored sheet", got)
	}
}

func TestMemoryStorePutReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Put(ctx, testSheet("2026-08-23"))

	updated := testSheet("2026-08-23")
	updated.Reservations[0].TableIDs = nil // reassignment committed by caller
	if err := s.Put(ctx, updated); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, _ := s.Get(ctx, "2026-08-23")
	if len(got.Reservations[0].TableIDs) != 0 {
		t.Errorf("TableIDs = %v, want replaced sheet", got.Reservations[0].TableIDs)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_ = s.Put(ctx, testSheet("2026-08-23"))
	if err := s.Delete(ctx, "2026-08-23"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "2026-08-23"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrNotFound", err)
	}

	// Deleting a missing date is not an error.
	if err := s.Delete(ctx, "1999-01-01"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

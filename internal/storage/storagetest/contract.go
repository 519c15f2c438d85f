// Package storagetest holds the behavior every storage.Provider must share.
// Backends call Run from their own tests.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/storage"
)

// Factory returns a fresh, initialized provider rooted in a temp directory.
type Factory func(t *testing.T) storage.Provider

var base = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func draft(activity string, hours float64, offset time.Duration) models.Draft {
	return models.Draft{
		Activity:  activity,
		Hours:     hours,
		Timestamp: base.Add(offset),
	}
}

// Run executes the shared contract against providers built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("InsertAndGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		d := draft("Work", 2.5, 0)
		d.Description = "quarterly report"
		d.SortOrder = models.Int64Ptr(1710408600000)

		id, err := s.Insert(ctx, d)
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}

		got, err := s.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.ID != id || got.Activity != "Work" || got.Hours != 2.5 || got.Description != "quarterly report" {
			t.Errorf("unexpected entry: %+v", got)
		}
		if !got.Timestamp.Equal(d.Timestamp) {
			t.Errorf("timestamp = %v, want %v", got.Timestamp, d.Timestamp)
		}
		if got.SortOrder == nil || *got.SortOrder != 1710408600000 {
			t.Errorf("sort order = %v, want 1710408600000", got.SortOrder)
		}
	})

	t.Run("MissingSortOrderStaysNil", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.Insert(ctx, draft("Sleep", 8, 0))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		got, err := s.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.SortOrder != nil {
			t.Errorf("expected nil sort order, got %d", *got.SortOrder)
		}
	})

	t.Run("IDsAreUniqueAndNeverReused", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		first, err := s.Insert(ctx, draft("Sleep", 8, 0))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		second, err := s.Insert(ctx, draft("Work", 1, time.Minute))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if first == second {
			t.Fatalf("ids must be unique, both were %d", first)
		}

		if err := s.Delete(ctx, second); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		third, err := s.Insert(ctx, draft("Study", 1, 2*time.Minute))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if third == first || third == second {
			t.Errorf("id %d was reused", third)
		}
		if third < second {
			t.Errorf("ids must increase: got %d after %d", third, second)
		}
	})

	t.Run("ListAllReturnsEverything", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		entries, err := s.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll on empty store failed: %v", err)
		}
		if len(entries) != 0 {
			t.Fatalf("expected empty store, got %d entries", len(entries))
		}

		want := map[string]bool{"Sleep": true, "Work": true, "Reading": true}
		offset := time.Duration(0)
		for activity := range want {
			if _, err := s.Insert(ctx, draft(activity, 1, offset)); err != nil {
				t.Fatalf("Insert %s failed: %v", activity, err)
			}
			offset += time.Hour
		}

		entries, err = s.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll failed: %v", err)
		}
		if len(entries) != len(want) {
			t.Fatalf("expected %d entries, got %d", len(want), len(entries))
		}
		for _, e := range entries {
			if !want[e.Activity] {
				t.Errorf("unexpected activity %q", e.Activity)
			}
		}
	})

	t.Run("UpdateReplacesRecord", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.Insert(ctx, draft("Work", 4, 0))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		e, _ := s.Get(ctx, id)
		e.Hours = 3
		e.Description = "code review"
		e.SortOrder = models.Int64Ptr(42)

		if err := s.Update(ctx, e); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		got, err := s.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.Hours != 3 || got.Description != "code review" || got.OrderKey() != 42 {
			t.Errorf("update not applied: %+v", got)
		}
	})

	t.Run("UpdateMissingIsNotFound", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		err := s.Update(ctx, models.Entry{ID: 999, Activity: "Work", Hours: 1, Timestamp: base})
		if !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetMissingIsNotFound", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Get(context.Background(), 12345)
		if !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteMissingIsNoop", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.Insert(ctx, draft("Sleep", 7, 0))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := s.Delete(ctx, id+100); err != nil {
			t.Errorf("deleting an absent id should succeed, got %v", err)
		}
		if err := s.Delete(ctx, id); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := s.Delete(ctx, id); err != nil {
			t.Errorf("second delete should succeed, got %v", err)
		}
		if _, err := s.Get(ctx, id); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("expected deleted entry to be gone, got %v", err)
		}
	})

	t.Run("UpdateBatchAllOrNothing", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		a, _ := s.Insert(ctx, draft("Sleep", 8, 0))
		b, _ := s.Insert(ctx, draft("Work", 2, time.Hour))

		ea, _ := s.Get(ctx, a)
		eb, _ := s.Get(ctx, b)
		ea.SortOrder = models.Int64Ptr(b)
		eb.SortOrder = models.Int64Ptr(a)

		if err := s.UpdateBatch(ctx, []models.Entry{ea, eb}); err != nil {
			t.Fatalf("UpdateBatch failed: %v", err)
		}
		ga, _ := s.Get(ctx, a)
		gb, _ := s.Get(ctx, b)
		if ga.OrderKey() != b || gb.OrderKey() != a {
			t.Errorf("batch not applied: a=%d b=%d", ga.OrderKey(), gb.OrderKey())
		}

		// A missing id in the batch must leave the existing record alone.
		ga.SortOrder = models.Int64Ptr(777)
		ghost := models.Entry{ID: b + 500, Activity: "Study", Hours: 1, Timestamp: base}
		err := s.UpdateBatch(ctx, []models.Entry{ga, ghost})
		if err == nil {
			t.Fatal("expected error for batch with missing id")
		}
		after, _ := s.Get(ctx, a)
		if after.OrderKey() != b {
			t.Errorf("partial batch was persisted: order key %d", after.OrderKey())
		}
	})

	t.Run("SettingsRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if err := s.SaveSettings(ctx, models.Settings{Timezone: "Europe/Berlin"}); err != nil {
			t.Fatalf("SaveSettings failed: %v", err)
		}
		got, err := s.GetSettings(ctx)
		if err != nil {
			t.Fatalf("GetSettings failed: %v", err)
		}
		if got.Timezone != "Europe/Berlin" {
			t.Errorf("timezone = %q, want Europe/Berlin", got.Timezone)
		}
	})

	t.Run("InitIsIdempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		id, err := s.Insert(ctx, draft("Work", 1, 0))
		if err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
		if err := s.Init(ctx); err != nil {
			t.Fatalf("second Init failed: %v", err)
		}
		if _, err := s.Get(ctx, id); err != nil {
			t.Errorf("entry lost after re-init: %v", err)
		}
	})

	t.Run("OperationsBeforeLoadFail", func(t *testing.T) {
		s := newStore(t)
		if err := s.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		_, err := s.ListAll(context.Background())
		if !errors.Is(err, apperrors.ErrStorageUnavailable) {
			t.Errorf("expected ErrStorageUnavailable after Close, got %v", err)
		}
	})
}

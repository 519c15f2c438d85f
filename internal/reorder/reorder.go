// Package reorder moves today's entries relative to each other by exchanging
// their order keys.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/ordering"
	"github.com/julianstephens/hourlog/internal/storage"
)

// Coordinator applies reorder requests to the store. Only entries dated
// today in its location can be moved.
type Coordinator struct {
	store storage.Provider
	now   func() time.Time
	loc   *time.Location
}

func New(store storage.Provider, now func() time.Time, loc *time.Location) *Coordinator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Coordinator{store: store, now: now, loc: loc}
}

func (c *Coordinator) today() string {
	return models.DayOf(c.now(), c.loc)
}

// Swap exchanges the order keys of two of today's entries. Both entries end
// up with an explicit sort order. Swapping the same pair twice restores the
// original order.
func (c *Coordinator) Swap(ctx context.Context, sourceID, targetID int64) error {
	if sourceID == targetID {
		return nil
	}

	source, err := c.store.Get(ctx, sourceID)
	if err != nil {
		return err
	}
	target, err := c.store.Get(ctx, targetID)
	if err != nil {
		return err
	}

	today := c.today()
	if source.Day(c.loc) != today || target.Day(c.loc) != today {
		return apperrors.Wrap(apperrors.ErrCrossDayReorder, "reorder entries",
			fmt.Errorf("entries %d and %d are not both dated %s", sourceID, targetID, today))
	}

	sourceKey, targetKey := source.OrderKey(), target.OrderKey()
	source.SortOrder = models.Int64Ptr(targetKey)
	target.SortOrder = models.Int64Ptr(sourceKey)

	if err := c.store.UpdateBatch(ctx, []models.Entry{source, target}); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrWriteFailed) {
			return err
		}
		return apperrors.Wrap(apperrors.ErrWriteFailed, "reorder entries", err)
	}

	logger.Debug("swapped entries", "source", sourceID, "target", targetID,
		"source_order", targetKey, "target_order", sourceKey)
	return nil
}

// Move swaps the entry with its neighbor delta positions away in today's
// order. Moving past either end is a no-op.
func (c *Coordinator) Move(ctx context.Context, id int64, delta int) error {
	if delta == 0 {
		return nil
	}

	entries, err := c.store.ListAll(ctx)
	if err != nil {
		return err
	}
	_, todays := ordering.Partition(entries, c.today(), c.loc)
	ordered := ordering.OrderToday(todays)

	pos := -1
	for i, e := range ordered {
		if e.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		for _, e := range entries {
			if e.ID == id {
				return apperrors.Wrap(apperrors.ErrCrossDayReorder, "move entry",
					fmt.Errorf("entry %d is not dated today", id))
			}
		}
		return apperrors.Wrap(apperrors.ErrNotFound, "move entry", fmt.Errorf("id %d", id))
	}

	next := pos + delta
	if next < 0 || next >= len(ordered) {
		return nil
	}
	return c.Swap(ctx, id, ordered[next].ID)
}

// Package tracker is the application service behind every user-facing
// surface. A Session owns the open store, the clock and the location that
// decide what "today" is, and the color palette for the run.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/ordering"
	"github.com/julianstephens/hourlog/internal/reorder"
	"github.com/julianstephens/hourlog/internal/storage"
	"github.com/julianstephens/hourlog/internal/utils"
	"github.com/julianstephens/hourlog/internal/validation"
)

// Config describes how to open a Session.
type Config struct {
	Store storage.Provider
	// Now defaults to time.Now.
	Now func() time.Time
	// Timezone overrides the timezone stored in settings when set.
	Timezone string
}

type Session struct {
	store     storage.Provider
	now       func() time.Time
	loc       *time.Location
	override  string
	palette   *ordering.Palette
	reorderer *reorder.Coordinator
}

// EditProposal is what an edit form starts from.
type EditProposal struct {
	Entry               models.Entry
	Hours               int
	Minutes             int
	Description         string
	DescriptionEditable bool
}

// View is every derived sequence the surfaces render, computed from a single read.
type View struct {
	Today    string
	History  []models.Entry
	Todays   []models.Entry
	Ordered  []models.Entry
	Chart    ordering.Chart
	Rows     []ordering.Row
	DayTotal float64
}

// Open loads the store and resolves the session location.
func Open(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Store == nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, "open session", fmt.Errorf("no store configured"))
	}
	if err := cfg.Store.Load(ctx); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, "open session", err)
	}

	settings, err := cfg.Store.GetSettings(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, "open session", err)
	}
	loc, err := utils.ResolveLocation(cfg.Timezone, settings)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "open session", err)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		store:    cfg.Store,
		now:      now,
		loc:      loc,
		override: cfg.Timezone,
		palette:  ordering.NewPalette(),
	}
	s.reorderer = reorder.New(s.store, s.now, s.loc)
	logger.Debug("session opened", "store", cfg.Store.Path(), "timezone", loc.String())
	return s, nil
}

func (s *Session) Close() error {
	return s.store.Close()
}

func (s *Session) Store() storage.Provider {
	return s.store
}

func (s *Session) Location() *time.Location {
	return s.loc
}

func (s *Session) Palette() *ordering.Palette {
	return s.palette
}

// Now returns the session clock reading.
func (s *Session) Now() time.Time {
	return s.now()
}

// Today is the current local date in the session location.
func (s *Session) Today() string {
	return utils.Today(s.now(), s.loc)
}

// Add validates and stores a new entry for today. Hours and minutes are
// combined; the description is dropped for activities that do not take one.
func (s *Session) Add(ctx context.Context, activity string, hours, minutes float64, description string) (models.Entry, error) {
	activity = strings.TrimSpace(activity)
	description = strings.TrimSpace(description)
	if !models.ActivityAllowsDescription(activity) {
		description = ""
	}
	if err := validation.ValidateAmounts(hours, minutes); err != nil {
		logger.Debug("entry rejected", "activity", activity, "hours", hours, "minutes", minutes, "error", err)
		return models.Entry{}, err
	}

	now := s.now()
	draft := models.Draft{
		Activity:    activity,
		Hours:       models.ToHours(hours, minutes),
		Timestamp:   now,
		Description: description,
	}

	entries, err := s.store.ListAll(ctx)
	if err != nil {
		return models.Entry{}, err
	}
	_, todays := ordering.Partition(entries, utils.Today(now, s.loc), s.loc)

	if err := validation.ValidateNewEntry(draft, todays); err != nil {
		logger.Debug("entry rejected", "activity", activity, "hours", draft.Hours, "error", err)
		return models.Entry{}, err
	}

	draft.SortOrder = models.Int64Ptr(nextSortOrder(now, todays))

	id, err := s.store.Insert(ctx, draft)
	if err != nil {
		return models.Entry{}, err
	}
	logger.Info("entry added", "id", id, "activity", activity, "hours", draft.Hours)
	return draft.WithID(id), nil
}

// nextSortOrder places a new entry after every entry already logged today.
func nextSortOrder(now time.Time, todays []models.Entry) int64 {
	next := now.UnixMilli()
	for _, e := range todays {
		if k := e.OrderKey() + 1; k > next {
			next = k
		}
	}
	return next
}

// ProposeEdit returns the current values of an entry for an edit form.
func (s *Session) ProposeEdit(ctx context.Context, id int64) (EditProposal, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return EditProposal{}, err
	}
	h, m := models.SplitHours(e.Hours)
	return EditProposal{
		Entry:               e,
		Hours:               h,
		Minutes:             m,
		Description:         e.Description,
		DescriptionEditable: models.ActivityAllowsDescription(e.Activity),
	}, nil
}

// ApplyEdit changes the hours and description of an entry after checking the
// day's capacity without the entry itself. Activity and timestamp never change.
func (s *Session) ApplyEdit(ctx context.Context, id int64, hours float64, description string) (models.Entry, error) {
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return models.Entry{}, err
	}

	entries, err := s.store.ListAll(ctx)
	if err != nil {
		return models.Entry{}, err
	}
	day := e.Day(s.loc)
	var others []models.Entry
	for _, other := range entries {
		if other.ID != id && other.Day(s.loc) == day {
			others = append(others, other)
		}
	}

	if err := validation.ValidateEdit(hours, others); err != nil {
		logger.Debug("edit rejected", "id", id, "hours", hours, "error", err)
		return models.Entry{}, err
	}

	e.Hours = hours
	if models.ActivityAllowsDescription(e.Activity) {
		e.Description = strings.TrimSpace(description)
	}
	if err := s.store.Update(ctx, e); err != nil {
		return models.Entry{}, err
	}
	logger.Info("entry updated", "id", id, "hours", hours)
	return e, nil
}

// Delete removes an entry. Deleting an absent id succeeds.
func (s *Session) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("entry deleted", "id", id)
	return nil
}

// Reorder swaps the positions of two of today's entries.
func (s *Session) Reorder(ctx context.Context, sourceID, targetID int64) error {
	return s.reorderer.Swap(ctx, sourceID, targetID)
}

// Move shifts an entry delta positions within today's order.
func (s *Session) Move(ctx context.Context, id int64, delta int) error {
	return s.reorderer.Move(ctx, id, delta)
}

// Snapshot reads every entry once and derives all views from that read.
func (s *Session) Snapshot(ctx context.Context) (View, error) {
	entries, err := s.store.ListAll(ctx)
	if err != nil {
		return View{}, err
	}

	today := s.Today()
	history, todays := ordering.Partition(entries, today, s.loc)
	history = ordering.OrderHistory(history)
	todays = ordering.OrderToday(todays)
	ordered := append(append(make([]models.Entry, 0, len(entries)), history...), todays...)

	return View{
		Today:    today,
		History:  history,
		Todays:   todays,
		Ordered:  ordered,
		Chart:    ordering.ForChart(ordered, s.loc, s.palette),
		Rows:     ordering.ListRows(todays, s.palette),
		DayTotal: validation.DayTotal(todays),
	}, nil
}

// SetTimezone validates and stores a new timezone. Without an override the
// session switches to it immediately.
func (s *Session) SetTimezone(ctx context.Context, timezone string) error {
	loc, err := utils.LoadLocation(timezone)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "set timezone", err)
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return err
	}
	settings.Timezone = timezone
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return err
	}

	if s.override == "" {
		s.loc = loc
		s.reorderer = reorder.New(s.store, s.now, s.loc)
	}
	return nil
}

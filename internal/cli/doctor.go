package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/hourlog/internal/constants"
	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/storage/sqlite"
	"github.com/julianstephens/hourlog/internal/tracker"
	"github.com/julianstephens/hourlog/internal/utils"
	"github.com/julianstephens/hourlog/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name  string
	run   func() error
	warn  bool
	needs bool // skipped when the store could not be opened
}

func (cmd *DoctorCmd) Run(app *Context, ctx context.Context) error {
	app.println("Running diagnostics...")
	app.println("")

	var session *tracker.Session
	checks := []check{
		{name: "Storage reachable", run: func() error {
			s, err := app.Session(ctx)
			session = s
			return err
		}},
		{name: "Schema version", needs: true, run: func() error { return checkSchemaVersion(app, ctx) }},
		{name: "Timezone", needs: true, run: func() error { return checkTimezone(session) }},
		{name: "Daily invariants", needs: true, run: func() error { return checkDailyInvariants(ctx, session) }},
		{name: "Today's order", needs: true, run: func() error { return checkTodayOrder(ctx, session) }},
		{name: "Backups present", warn: true, run: func() error { return checkBackupsPresent(app) }},
	}

	hasError := false
	for _, c := range checks {
		if c.needs && session == nil {
			app.printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run()
		switch {
		case err == nil:
			app.printf("✓ %s: OK\n", c.name)
		case c.warn:
			app.printf("⚠ %s: WARNING\n", c.name)
			app.printf("   %v\n", err)
		default:
			app.printf("❌ %s: FAIL\n", c.name)
			app.printf("   Error: %v\n", err)
			hasError = true
		}
	}

	app.println("")
	if hasError {
		app.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	app.println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(app *Context, ctx context.Context) error {
	store, ok := app.Store.(*sqlite.Store)
	if !ok {
		// the key-value backend validates its marker on load
		return nil
	}
	current, latest, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}
	if current != latest {
		return fmt.Errorf("schema version %d, expected %d (run 'hourlog init' to migrate)", current, latest)
	}
	return nil
}

func checkTimezone(session *tracker.Session) error {
	now := session.Now()
	if now.Year() < 2000 || now.Year() > 2100 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if !utils.ValidateTimezone(session.Location().String()) {
		return fmt.Errorf("timezone %s cannot be loaded", session.Location())
	}
	return nil
}

// checkDailyInvariants replays the write-time rules over every stored day.
func checkDailyInvariants(ctx context.Context, session *tracker.Session) error {
	entries, err := session.Store().ListAll(ctx)
	if err != nil {
		return err
	}

	byDay := make(map[string][]models.Entry)
	for _, e := range entries {
		day := e.Day(session.Location())
		byDay[day] = append(byDay[day], e)
	}

	var problems []string
	for day, list := range byDay {
		seen := make(map[string]bool)
		for _, e := range list {
			if seen[e.Activity] {
				problems = append(problems, fmt.Sprintf("%s: %s logged more than once", day, e.Activity))
			}
			seen[e.Activity] = true
		}
		if total := validation.DayTotal(list); total > constants.DayCapacityHours+constants.HoursEpsilon {
			problems = append(problems, fmt.Sprintf("%s: %.2fh logged, over the 24h limit", day, total))
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%d problem(s):\n   %s", len(problems), strings.Join(problems, "\n   "))
	}
	return nil
}

func checkTodayOrder(ctx context.Context, session *tracker.Session) error {
	view, err := session.Snapshot(ctx)
	if err != nil {
		return err
	}
	seen := make(map[int64]int64)
	for _, e := range view.Todays {
		if other, ok := seen[e.OrderKey()]; ok {
			return fmt.Errorf("entries %d and %d share order key %d", other, e.ID, e.OrderKey())
		}
		seen[e.OrderKey()] = e.ID
	}
	return nil
}

func checkBackupsPresent(app *Context) error {
	mgr, err := app.backupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s (run 'hourlog backup create')", mgr.Dir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

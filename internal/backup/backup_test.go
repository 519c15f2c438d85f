package backup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/hourlog/internal/models"
	"github.com/julianstephens/hourlog/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "hourlog.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer store.Close()

	ts := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	for _, a := range []string{"Sleep", "Work"} {
		if _, err := store.Insert(ctx, models.Draft{Activity: a, Hours: 2, Timestamp: ts}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	return dbPath
}

func countEntries(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n); err != nil {
		t.Fatalf("failed to count entries: %v", err)
	}
	return n
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 2, 1, 10, 5, 0, 0, time.Local))

	path, err := mgr.Create(context.Background())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Base(path) != "hourlog-20250201-1005.db" {
		t.Errorf("unexpected backup name %s", filepath.Base(path))
	}
	if filepath.Dir(path) != mgr.Dir() {
		t.Errorf("backup written outside %s", mgr.Dir())
	}
	if n := countEntries(t, path); n != 2 {
		t.Errorf("backup has %d entries, want 2", n)
	}
}

func TestCreateSameMinuteGetsUniqueNames(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 2, 1, 10, 5, 30, 0, time.Local))

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := mgr.Create(context.Background())
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("duplicate backup path %s", path)
		}
		seen[path] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(context.Background()); err == nil {
		t.Fatal("expected error for missing database")
	}
}

func TestListNewestFirstAndIgnoresStrangers(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	if err := os.MkdirAll(mgr.Dir(), 0700); err != nil {
		t.Fatal(err)
	}

	names := []string{
		"hourlog-20250101-0900.db",
		"hourlog-20250301-0900.db",
		"hourlog-20250201-090000-2.db",
		"notes.txt",
		"hourlog-garbage.db",
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	want := []string{"hourlog-20250301-0900.db", "hourlog-20250201-090000-2.db", "hourlog-20250101-0900.db"}
	for i, w := range want {
		if filepath.Base(backups[i].Path) != w {
			t.Errorf("backup %d = %s, want %s", i, filepath.Base(backups[i].Path), w)
		}
	}
}

func TestListWithoutBackupDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "hourlog.db"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotationKeepsNewest(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.keep = 3

	start := time.Date(2025, 2, 1, 8, 0, 0, 0, time.Local)
	for i := 0; i < 5; i++ {
		mgr.now = fixedClock(start.Add(time.Duration(i) * time.Hour))
		if _, err := mgr.Create(context.Background()); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups after rotation, got %d", len(backups))
	}
	if !strings.Contains(backups[0].Path, "20250201-1200") || !strings.Contains(backups[2].Path, "20250201-1000") {
		t.Errorf("rotation kept the wrong files: %s .. %s", backups[0].Path, backups[2].Path)
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	ctx := context.Background()
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2025, 2, 1, 10, 0, 0, 0, time.Local))

	snapshot, err := mgr.Create(ctx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := store.Insert(ctx, models.Draft{Activity: "Study", Hours: 1, Timestamp: time.Now()}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	store.Close()
	if n := countEntries(t, dbPath); n != 3 {
		t.Fatalf("expected 3 entries before restore, got %d", n)
	}

	mgr.now = fixedClock(time.Date(2025, 2, 1, 11, 0, 0, 0, time.Local))
	safety, err := mgr.Restore(ctx, snapshot)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if n := countEntries(t, dbPath); n != 2 {
		t.Errorf("expected 2 entries after restore, got %d", n)
	}
	if safety == "" {
		t.Fatal("expected a safety backup of the replaced database")
	}
	if n := countEntries(t, safety); n != 3 {
		t.Errorf("safety backup has %d entries, want 3", n)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreRejectsForeignDatabase(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	foreign := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE notes (id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if _, err := mgr.Restore(context.Background(), foreign); err == nil {
		t.Fatal("expected restore of a non-hourlog database to fail")
	}
	if n := countEntries(t, dbPath); n != 2 {
		t.Errorf("database changed after rejected restore: %d entries", n)
	}
}

func TestRestoreMissingFile(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	_, err := mgr.Restore(context.Background(), fmt.Sprintf("%s/none.db", t.TempDir()))
	if err == nil {
		t.Fatal("expected error for missing backup file")
	}
}

package storage

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/hasanulkarim/UltimateProjectPlanner/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "planner.db")
	store, err := OpenSQLite(path, zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	store := newTestSQLite(t)

	tasks := []model.Task{
		{ID: "t1", Title: "Write report", Date: "2026-03-02", StartTime: "09:00", Duration: 30, TimeSpent: 120, Category: "office"},
	}
	if err := store.Save(KeyTasks, tasks); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got []model.Task
	found, err := store.Load(KeyTasks, &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatalf("saved key not found")
	}
	if len(got) != 1 || got[0] != tasks[0] {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestSQLiteUpsertReplacesValue(t *testing.T) {
	store := newTestSQLite(t)

	if err := store.Save(KeyCategories, []string{"office"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(KeyCategories, []string{"office", "home"}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	var got []string
	if found, _ := store.Load(KeyCategories, &got); !found {
		t.Fatalf("key not found after upsert")
	}
	if len(got) != 2 || got[1] != "home" {
		t.Fatalf("upsert did not replace: %v", got)
	}
}

func TestSQLitePing(t *testing.T) {
	store := newTestSQLite(t)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	_ = store.Close()
	if err := store.Ping(context.Background()); err == nil {
		t.Fatalf("ping succeeded on closed store")
	}
}

func TestSQLiteMissingKey(t *testing.T) {
	store := newTestSQLite(t)

	var got model.Timer
	found, err := store.Load(KeyTimer, &got)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("missing key reported found")
	}
}

func TestSQLiteCorruptRowReportsAbsent(t *testing.T) {
	store := newTestSQLite(t)

	if _, err := store.db.Exec(
		`INSERT INTO planner_state (key, value) VALUES (?, ?)`,
		KeyTimer, "{not json",
	); err != nil {
		t.Fatalf("inject corrupt row: %v", err)
	}

	var got model.Timer
	found, err := store.Load(KeyTimer, &got)
	if err != nil {
		t.Fatalf("corrupt row should degrade, not error: %v", err)
	}
	if found {
		t.Fatalf("corrupt row reported found")
	}
}

func TestMemoryStoreMatchesContract(t *testing.T) {
	store := NewMemoryStore()

	timer := model.Timer{TaskID: "t1", IsRunning: true, ElapsedTime: 42}
	if err := store.Save(KeyTimer, timer); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got model.Timer
	found, err := store.Load(KeyTimer, &got)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if got.TaskID != "t1" || got.ElapsedTime != 42 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	var missing []model.Task
	if found, _ := store.Load(KeyTasks, &missing); found {
		t.Fatalf("missing key reported found")
	}
}

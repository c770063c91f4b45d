package migration

import (
	"context"
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"

	"github.com/gamttori/gamttori/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func memFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, body := range files {
		m[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return m
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return n == 1
}

func TestCurrentVersion(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(setupTestDB(t), memFS(nil), SQLite)

	v, err := runner.CurrentVersion(ctx)
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if v != 0 {
		t.Errorf("expected version 0, got %d", v)
	}

	if err := runner.SetVersion(ctx, 5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	v, _ = runner.CurrentVersion(ctx)
	if v != 5 {
		t.Errorf("expected version 5, got %d", v)
	}
}

func TestMigrationsSorted(t *testing.T) {
	runner := NewRunner(setupTestDB(t), memFS(map[string]string{
		"003_another.sql": "CREATE TABLE b (id INTEGER);",
		"001_init.sql":    "CREATE TABLE a (id INTEGER);",
		"002_update.sql":  "ALTER TABLE a ADD COLUMN name TEXT;",
		"README.md":       "ignored",
	}), SQLite)

	ms, err := runner.Migrations()
	if err != nil {
		t.Fatalf("Migrations failed: %v", err)
	}
	if len(ms) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(ms))
	}
	for i, want := range []string{"init", "update", "another"} {
		if ms[i].Version != i+1 || ms[i].Name != want {
			t.Errorf("migration %d = (%d, %s), want (%d, %s)", i, ms[i].Version, ms[i].Name, i+1, want)
		}
	}
}

func TestApplyFromScratchAndIncremental(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	files := memFS(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);",
	})
	runner := NewRunner(db, files, SQLite)

	n, err := runner.Apply(ctx)
	if err != nil || n != 1 {
		t.Fatalf("Apply() = %d, %v; want 1, nil", n, err)
	}

	files["002_posts.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE posts (id INTEGER PRIMARY KEY);")}
	n, err = runner.Apply(ctx)
	if err != nil || n != 1 {
		t.Fatalf("second Apply() = %d, %v; want 1, nil", n, err)
	}

	n, err = runner.Apply(ctx)
	if err != nil || n != 0 {
		t.Fatalf("no-op Apply() = %d, %v; want 0, nil", n, err)
	}

	if !tableExists(t, db, "users") || !tableExists(t, db, "posts") {
		t.Error("expected both tables to exist")
	}
	st, err := runner.Status(ctx)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if !st.UpToDate() || st.Current != 2 {
		t.Errorf("Status = %+v, want up to date at 2", st)
	}
}

func TestApplyRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	runner := NewRunner(db, memFS(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);\nTHIS IS INVALID SQL;",
	}), SQLite)

	if _, err := runner.Apply(ctx); err == nil {
		t.Fatal("Apply should have failed with invalid SQL")
	}
	v, err := runner.CurrentVersion(ctx)
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if v != 0 {
		t.Errorf("expected version 0 after failed migration, got %d", v)
	}
	if tableExists(t, db, "users") {
		t.Error("table should not exist after failed migration")
	}
}

func TestValidateNewerDatabase(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(setupTestDB(t), memFS(map[string]string{
		"001_init.sql": "CREATE TABLE users (id INTEGER PRIMARY KEY);",
	}), SQLite)

	if err := runner.SetVersion(ctx, 10); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	if err := runner.Validate(ctx); err == nil {
		t.Fatal("Validate should fail for a newer database")
	}
	if _, err := runner.Apply(ctx); err == nil {
		t.Fatal("Apply should fail for a newer database")
	}
}

func TestInvalidFilenames(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"missing underscore", map[string]string{"001init.sql": "SELECT 1;"}, "invalid migration filename"},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}, "version must be at least 1"},
		{"duplicate version", map[string]string{"001_a.sql": "SELECT 1;", "001_b.sql": "SELECT 1;"}, "duplicate migration version"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(setupTestDB(t), memFS(tt.files), SQLite).Migrations()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Migrations() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestEmbeddedSQLiteMigrationsApply(t *testing.T) {
	ctx := context.Background()
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	db := setupTestDB(t)
	if _, err := NewRunner(db, sub, SQLite).Apply(ctx); err != nil {
		t.Fatalf("embedded migrations failed: %v", err)
	}
	if !tableExists(t, db, "kv") || !tableExists(t, db, "settings") {
		t.Error("expected kv and settings tables")
	}
}

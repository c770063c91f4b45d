package backups

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/config"
	"github.com/gamttori/gamttori/internal/storage/memory"
	"github.com/gamttori/gamttori/internal/storage/sqlite"
)

func TestBackupCreateAndList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "gamttori.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()
	ctx := cli.NewContext(store, config.Default(), cli.Deps{})

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}

	mgr, _ := ctx.BackupManager()
	list, err := mgr.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 backup, got %d", len(list))
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx := cli.NewContext(memory.New(), config.Default(), cli.Deps{})
	if err := (&BackupCreateCmd{}).Run(ctx); err != errNotSQLite {
		t.Errorf("expected errNotSQLite, got %v", err)
	}
}

func TestRestoreResolve(t *testing.T) {
	dir := t.TempDir()
	name := "gamttori-20260301-090000.db"
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := (&BackupRestoreCmd{BackupFile: name}).resolve(dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != filepath.Join(dir, name) {
		t.Errorf("resolve = %q", got)
	}

	if _, err := (&BackupRestoreCmd{BackupFile: "missing.db"}).resolve(dir); err == nil {
		t.Error("expected error for missing backup")
	}
}

package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/models"
)

// TestStore_Integration runs against a real database.
// Example: GAMTTORI_TEST_POSTGRES="postgres://gamttori@localhost:5432/gamttori_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("GAMTTORI_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("GAMTTORI_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}
	ctx := context.Background()

	store := New(connStr)
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	defer store.Close()

	t.Run("Settings", func(t *testing.T) {
		settings, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to get settings: %v", err)
		}
		settings.UnlockPolicy = constants.UnlockPolicyCumulative
		if err := store.SaveSettings(settings); err != nil {
			t.Fatalf("Failed to save settings: %v", err)
		}
		got, err := store.GetSettings()
		if err != nil {
			t.Fatalf("Failed to reload settings: %v", err)
		}
		if got != settings {
			t.Errorf("settings = %+v, want %+v", got, settings)
		}
		_ = store.SaveSettings(models.DefaultSettings())
	})

	t.Run("KV", func(t *testing.T) {
		key := constants.MoodKey("2024-01-01")
		t.Cleanup(func() { _ = store.Delete(ctx, key) })

		if err := store.Set(ctx, key, `{"weight":1}`); err != nil {
			t.Fatalf("Set: %v", err)
		}
		if err := store.Set(ctx, key, `{"weight":4}`); err != nil {
			t.Fatalf("Set: %v", err)
		}
		v, ok, err := store.Get(ctx, key)
		if err != nil || !ok || v != `{"weight":4}` {
			t.Errorf("Get() = %q, %v, %v", v, ok, err)
		}
		keys, err := store.Keys(ctx, constants.PrefixMood)
		if err != nil {
			t.Fatalf("Keys: %v", err)
		}
		found := false
		for _, k := range keys {
			found = found || k == key
		}
		if !found {
			t.Errorf("Keys() = %v, missing %s", keys, key)
		}
	})
}

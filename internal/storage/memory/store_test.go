package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/gamttori/gamttori/internal/constants"
)

func TestKVAndSettings(t *testing.T) {
	s := New()
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if _, ok, _ := s.Get(ctx, "x"); ok {
		t.Error("absent key reported present")
	}
	_ = s.Set(ctx, "mood_2024-01-02", "b")
	_ = s.Set(ctx, "mood_2024-01-01", "a")
	keys, _ := s.Keys(ctx, "mood_")
	if len(keys) != 2 || keys[0] != "mood_2024-01-01" {
		t.Errorf("Keys() = %v", keys)
	}
	_ = s.Delete(ctx, "mood_2024-01-01")
	_ = s.Delete(ctx, "mood_2024-01-01")
	if keys, _ := s.Keys(ctx, "mood_"); len(keys) != 1 {
		t.Errorf("Keys() after delete = %v", keys)
	}

	settings, _ := s.GetSettings()
	settings.UnlockPolicy = constants.UnlockPolicyCumulative
	_ = s.SaveSettings(settings)
	got, _ := s.GetSettings()
	if got.UnlockPolicy != constants.UnlockPolicyCumulative {
		t.Errorf("UnlockPolicy = %q", got.UnlockPolicy)
	}
}

func TestConcurrentWritersConverge(t *testing.T) {
	s := New()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, "k", "v")
		}()
	}
	wg.Wait()
	if v, _, _ := s.Get(ctx, "k"); v != "v" {
		t.Errorf("Get() = %q", v)
	}
}

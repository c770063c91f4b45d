package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/gamttori/gamttori/internal/cli"
	"github.com/gamttori/gamttori/internal/config"
	"github.com/gamttori/gamttori/internal/constants"
	"github.com/gamttori/gamttori/internal/storage/memory"
)

func TestTodayKeepsStoryMarker(t *testing.T) {
	gokeyring.MockInit()
	cfg := config.Default()
	cfg.BackendEnabled = false
	cfg.Timezone = "UTC"
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	app := cli.NewContext(memory.New(), cfg, cli.Deps{Clock: func() time.Time { return now }})

	ctx := context.Background()
	require.NoError(t, app.Store.Set(ctx, constants.KeyStoryLastShown, "2026-02-28"))

	require.NoError(t, (&TodayCmd{}).Run(app))
	assert.Equal(t, "2026-02-28", app.Trigger.LastShown(ctx))

	_, ok := app.Trigger.Pending(ctx, now, 1)
	assert.True(t, ok, "story still opens later today")
}

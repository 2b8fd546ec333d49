package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/csslab/internal/catalog"
	"github.com/ziadkadry99/csslab/internal/notify"
	"github.com/ziadkadry99/csslab/internal/session"
)

func withConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, ".csslab.yml")
	if body != "" {
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	old := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = old })
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"", "debug", "INFO", "warn", "error"} {
		logger, err := newLogger(level, false)
		require.NoError(t, err, level)
		require.NotNil(t, logger)
	}

	_, err := newLogger("loud", false)
	assert.Error(t, err)
}

func TestOpenRuntimeEphemeral(t *testing.T) {
	withConfig(t, "")

	rt, err := openRuntime(context.Background(), true)
	require.NoError(t, err)
	defer rt.Close()

	assert.Nil(t, rt.database)
	assert.Nil(t, rt.toasts)
	assert.Equal(t, 0, rt.manager.Snapshot().Index)
}

func TestOpenRuntimeSQLitePersists(t *testing.T) {
	dataDir := t.TempDir()
	withConfig(t, "store: sqlite\ndata_dir: "+dataDir+"\n")
	ctx := context.Background()

	rt, err := openRuntime(ctx, false)
	require.NoError(t, err)
	require.NotNil(t, rt.toasts)
	require.NoError(t, rt.manager.SelectExercise(ctx, 2))
	rt.manager.UpdateCSS(ctx, "h1 { color: red; }")
	rt.manager.MarkCurrentComplete(ctx)
	require.NoError(t, rt.Close())

	rt, err = openRuntime(ctx, false)
	require.NoError(t, err)
	defer rt.Close()

	snap := rt.manager.Snapshot()
	assert.Equal(t, 2, snap.Index)
	assert.Equal(t, "h1 { color: red; }", snap.CSS)
	assert.True(t, rt.manager.IsCompleted(catalog.At(2).ID))

	pending, err := rt.toasts.GetPending(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, pending)
	assert.Equal(t, session.MsgCompleted, pending[len(pending)-1].Message)
}

func TestOpenRuntimeInvalidConfig(t *testing.T) {
	withConfig(t, "port: 0\n")
	_, err := openRuntime(context.Background(), true)
	assert.Error(t, err)
}

func TestOpenRuntimePrunesDeliveredToasts(t *testing.T) {
	dataDir := t.TempDir()
	withConfig(t, "store: sqlite\ndata_dir: "+dataDir+"\n")
	ctx := context.Background()

	rt, err := openRuntime(ctx, false)
	require.NoError(t, err)
	rt.manager.MarkCurrentComplete(ctx)
	rt.manager.ResetCurrent(ctx)
	pending, err := rt.toasts.GetPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.NoError(t, rt.toasts.MarkDelivered(ctx, pending[0].ID))
	require.NoError(t, rt.Close())

	rt, err = openRuntime(ctx, false)
	require.NoError(t, err)
	defer rt.Close()

	all, err := rt.toasts.List(ctx, notify.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, pending[1].ID, all[0].ID)
}

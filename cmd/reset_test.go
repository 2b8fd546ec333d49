package cmd

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/csslab/internal/catalog"
	"github.com/ziadkadry99/csslab/internal/kv"
	"github.com/ziadkadry99/csslab/internal/lab"
	"github.com/ziadkadry99/csslab/internal/session"
)

func runningLab(t *testing.T) (*httptest.Server, *session.Manager, *kv.MemoryStore) {
	t.Helper()
	store := kv.NewMemoryStore()
	m := session.NewManager(store, nil, nil)
	m.Load(context.Background())

	l, err := lab.New(m, nil, nil)
	require.NoError(t, err)
	r := chi.NewRouter()
	l.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, m, store
}

func TestResetGoesThroughRunningLab(t *testing.T) {
	srv, m, store := runningLab(t)
	ctx := context.Background()
	starter := catalog.At(0).InitialCSS

	m.UpdateCSS(ctx, ".box { color: red; }")

	served, err := resetViaServer(ctx, srv.URL, "ex-1")
	require.NoError(t, err)
	require.True(t, served)

	_, css := m.CurrentCode()
	assert.Equal(t, starter, css)

	// The next edit in the browser must not bring the old CSS back.
	m.UpdateHTML(ctx, "<div class=\"box\">ciao</div>")
	stored, err := kv.GetOr(ctx, store, session.CSSKey("ex-1"), "")
	require.NoError(t, err)
	assert.Equal(t, starter, stored)
}

func TestResetUnknownExerciseOnRunningLab(t *testing.T) {
	srv, _, _ := runningLab(t)

	served, err := resetViaServer(context.Background(), srv.URL, "ex-404")
	assert.False(t, served)
	assert.Error(t, err)
}

func TestResetWithoutRunningLab(t *testing.T) {
	srv := httptest.NewServer(chi.NewRouter())
	url := srv.URL
	srv.Close()

	served, err := resetViaServer(context.Background(), url, "ex-1")
	require.NoError(t, err)
	assert.False(t, served)
}

func TestResetPortOwnedByAnotherService(t *testing.T) {
	srv := httptest.NewServer(chi.NewRouter())
	t.Cleanup(srv.Close)

	served, err := resetViaServer(context.Background(), srv.URL, "ex-1")
	require.NoError(t, err)
	assert.False(t, served)
}

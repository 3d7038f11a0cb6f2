package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mowakeb-api/core/domain"
	"mowakeb-api/infrastructure/logger/logrus"
	"mowakeb-api/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	v, err := config.NewViper("")
	require.NoError(t, err)
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	return cfg
}

func TestNewApplication_SQLiteStateAndRows(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)
	cfg.State.Backend = "sqlite"
	cfg.State.SQLitePath = filepath.Join(dir, "state.db")
	cfg.RowStore.Backend = "sqlite"
	cfg.RowStore.SQLitePath = filepath.Join(dir, "rows.db")

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, logrus.NewWithWriter(io.Discard, "error", false))
	require.NoError(t, err)
	require.NotNil(t, app.rows)

	_, err = app.rows.AddPaper(ctx, domain.PaperRow{Title: "Stored paper", MainField: "Security"})
	require.NoError(t, err)

	list := app.results.Load(ctx, "Security")
	require.Len(t, list.Rows, domain.ResultRowCount)
	assert.Equal(t, "Stored paper", list.Rows[0].Title)

	_, err = app.sessions.SignIn(ctx, domain.User{Email: "ada@example.com"})
	require.NoError(t, err)
	user, err := app.sessions.Current(ctx)
	require.NoError(t, err)
	_, err = app.tracker.AddEntry(ctx, domain.TrackerDraft{Title: "Stored paper"}, user)
	require.NoError(t, err)

	app.shutdown(ctx)

	// state and remote rows survive a restart
	app, err = newApplication(ctx, cfg, logrus.NewWithWriter(io.Discard, "error", false))
	require.NoError(t, err)
	defer app.shutdown(ctx)

	user, err = app.sessions.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	view, err := app.tracker.Reload(ctx, user)
	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	assert.True(t, view.Entries[0].HasRemoteID())
}

func TestNewApplication_MemoryDefaults(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	app, err := newApplication(ctx, cfg, logrus.NewWithWriter(io.Discard, "error", false))
	require.NoError(t, err)
	defer app.shutdown(ctx)

	assert.Nil(t, app.rows)
	svc := app.services()
	assert.NotNil(t, svc.Tracker)
	assert.NotNil(t, svc.Audio)

	// no synthesizer configured
	_, err = app.player.Toggle(ctx, "hello")
	assert.Error(t, err)
}

func TestNewApplication_BadRedis(t *testing.T) {
	cfg := testConfig(t)
	cfg.State.Backend = "redis"
	cfg.Redis.Address = "127.0.0.1:1"

	_, err := newApplication(context.Background(), cfg, logrus.NewWithWriter(io.Discard, "error", false))
	assert.Error(t, err)
}

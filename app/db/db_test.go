package database

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-foodie-tour/config"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestNewDatabaseConfig(t *testing.T) {
	var cfg config.Config
	cfg.Repositories.Postgres.Host = "db"
	cfg.Repositories.Postgres.Port = "5432"
	cfg.Repositories.Postgres.Username = "foodie"
	cfg.Repositories.Postgres.Password = "p@ss"
	cfg.Repositories.Postgres.DB = "foodie_tour"
	cfg.Repositories.Postgres.MAXCONWAITINGTIME = 10

	dbCfg, err := NewDatabaseConfig(&cfg, discard)
	require.NoError(t, err)

	u, err := url.Parse(dbCfg.ConnectionURL)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", u.Scheme)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/foodie_tour", u.Path)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "10", u.Query().Get("connect_timeout"))
}

func TestNewDatabaseConfig_Missing(t *testing.T) {
	_, err := NewDatabaseConfig(nil, discard)
	assert.Error(t, err)

	_, err = NewDatabaseConfig(&config.Config{}, discard)
	assert.Error(t, err)
}

func TestRunMigrations_RejectsScheme(t *testing.T) {
	err := RunMigrations("mysql://localhost/db", discard)
	assert.Error(t, err)
}

type fakePinger struct {
	failures int
	calls    int
}

func (f *fakePinger) Ping(context.Context) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitForDB(t *testing.T) {
	t.Run("succeeds after retries", func(t *testing.T) {
		p := &fakePinger{failures: 1}
		assert.True(t, WaitForDB(context.Background(), p, discard))
		assert.Equal(t, 2, p.calls)
	})

	t.Run("gives up when context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		p := &fakePinger{failures: 100}
		assert.False(t, WaitForDB(ctx, p, discard))
		assert.Equal(t, 1, p.calls)
	})
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/ruralpay/loanledger/internal/database/migrations"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := GetConfig()
		assert.Equal(t, "loan_db", config.Name)
		assert.Equal(t, 25, config.MaxOpenConns)
	})

	t.Run("overrides", func(t *testing.T) {
		viper.Set("database.host", "db.internal")
		viper.Set("database.name", "ledger")
		defer viper.Reset()

		config := GetConfig()
		assert.Equal(t, "db.internal", config.Host)
		assert.Contains(t, config.DSN(), "host=db.internal")
		assert.Contains(t, config.DSN(), "dbname=ledger")
	})
}

func TestMigrationsEmbedded(t *testing.T) {
	data, err := fs.ReadFile(migrations.FS, "00001_create_loans.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS loans")
	assert.Contains(t, string(data), "-- +goose Up")
}

func TestRunMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	t.Run("success", func(t *testing.T) {
		var gotDir string
		gooseUpContext = func(ctx context.Context, d *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			assert.Same(t, db, d)
			gotDir = dir
			return nil
		}

		assert.NoError(t, RunMigrations(context.Background(), db))
		assert.Equal(t, ".", gotDir)
	})

	t.Run("failure is wrapped", func(t *testing.T) {
		gooseUpContext = func(ctx context.Context, d *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			return errors.New("boom")
		}

		err := RunMigrations(context.Background(), db)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "error applying migrations")
	})
}

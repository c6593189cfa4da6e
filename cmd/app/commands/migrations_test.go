package commands

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("unsupported-driver", func(t *testing.T) {
		err := RunMigrations(logger, "sqlite", "sqlite://analytics.db")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
		require.Contains(t, err.Error(), "sqlite")
	})

	t.Run("postgres-invalid-connection-string", func(t *testing.T) {
		err := RunMigrations(logger, "postgres", "invalid-connection-string")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})

	t.Run("mysql-invalid-connection-string", func(t *testing.T) {
		err := RunMigrations(logger, "mysql", "invalid-connection-string")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})
}

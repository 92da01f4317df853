package db

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	require.Equal(t, "pgx5://u:p@localhost:5432/lily?sslmode=disable",
		migrateURL("postgres://u:p@localhost:5432/lily?sslmode=disable"))
	require.Equal(t, "pgx5://localhost/lily", migrateURL("postgresql://localhost/lily"))
	require.Equal(t, "pgx5://localhost/lily", migrateURL("pgx5://localhost/lily"))
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFS, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	require.Len(t, downs, len(ups))
}

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "JWT_EXPIRES_MINUTES", "REDIS_URL", "BILL_DUE_DAYS", "RUN_MIGRATIONS", "APP_ENV"} {
		t.Setenv(k, "")
	}

	cfg := fromEnv()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 60, cfg.JWTExpiresMinutes)
	require.Equal(t, 7, cfg.BillDueDays)
	require.True(t, cfg.RunMigrations)
	require.Empty(t, cfg.RedisURL)
	require.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/lily")
	t.Setenv("BILL_DUE_DAYS", "14")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("JWT_EXPIRES_MINUTES", "not-a-number")

	cfg := fromEnv()
	require.Equal(t, "9000", cfg.Port)
	require.Equal(t, "postgres://localhost/lily", cfg.DatabaseURL)
	require.Equal(t, 14, cfg.BillDueDays)
	require.False(t, cfg.RunMigrations)
	require.True(t, cfg.IsProduction())
	require.Equal(t, 60, cfg.JWTExpiresMinutes)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DBConnMaxLifetime)
	assert.True(t, cfg.SeedDemo)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")
	t.Setenv("SEED_DEMO", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DatabaseURL)
	assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
	assert.False(t, cfg.SeedDemo)
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())

	cfg.CORSAllowedOrigins = ""
	assert.Empty(t, cfg.AllowedOrigins())
}

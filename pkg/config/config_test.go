package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Viper ignora las variables vacías: se aplican los valores por defecto.
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("STORE_KEY_PREFIX", "")
	t.Setenv("INVENTORY_ALLOW_NEGATIVE_STOCK", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "inv_", cfg.Store.KeyPrefix)
	assert.False(t, cfg.Inventory.AllowNegativeStock)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "sqlite")
	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("STORE_KEY_PREFIX", "tienda_")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("INVENTORY_ALLOW_NEGATIVE_STOCK", "true")
	t.Setenv("REDIS_LOCK_TTL_SECONDS", "3")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreRedis, cfg.Store.Backend)
	assert.Equal(t, "tienda_", cfg.Store.KeyPrefix)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.True(t, cfg.Inventory.AllowNegativeStock)
	assert.Equal(t, "3s", cfg.Redis.LockTTL().String())
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, "admin", cfg.Auth.DefaultUsername)
	assert.Equal(t, 480, cfg.JWT.Expiration)
}

func TestLoad_MySQLBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "mysql")
	t.Setenv("MYSQL_DSN", "app:pw@tcp(db:3306)/tienda?parseTime=true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreMySQL, cfg.Store.Backend)
	assert.Equal(t, "app:pw@tcp(db:3306)/tienda?parseTime=true", cfg.MySQL.DSN)
	assert.Equal(t, 10, cfg.MySQL.MaxConns)
}

func TestLoad_InvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("HTTP_PORT", "abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss:word", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%3Aword@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestValidate(t *testing.T) {
	base := Config{
		Store: StoreConfig{Backend: StoreMemory, KeyPrefix: "inv_"},
		JWT:   JWTConfig{Expiration: 10},
		Redis: RedisConfig{LockTTLSeconds: 1},
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.Store.Backend = "sqlite"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Store.KeyPrefix = ""
	assert.Error(t, bad.Validate())
}

package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
	"github.com/jhoicas/Inventario-pos/pkg/config"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: config.StoreMemory, KeyPrefix: "inv_"}}
	b, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer b.Close()
	assert.IsType(t, &storage.MemoryBackend{}, b)
}

func TestOpen_Unknown(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Backend: "sqlite", KeyPrefix: "inv_"}}
	_, err := Open(context.Background(), cfg, nil)
	require.Error(t, err)
}

func TestOpen_MySQLUnreachable(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{Backend: config.StoreMySQL, KeyPrefix: "inv_"},
		MySQL: config.MySQLConfig{DSN: "root:root@tcp(127.0.0.1:1)/inventario_pos?timeout=200ms"},
	}
	_, err := Open(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MySQL")
}

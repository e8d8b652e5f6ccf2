package mysqlstore

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage/storagetest"
)

func newBackend(t *testing.T) (*Backend, string) {
	t.Helper()
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MySQL not available: MYSQL_DSN vacío")
	}
	db, err := Open(context.Background(), dsn, 10)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	prefix := "test_" + uuid.NewString()[:8] + "_"
	b := New(db, prefix+"lock")
	require.NoError(t, b.EnsureSchema(context.Background()))
	t.Cleanup(func() {
		_, _ = db.Exec(`DELETE FROM entity_store WHERE k LIKE ?`, prefix+"%")
		_, _ = db.Exec(`DELETE FROM entity_store_lock WHERE name = ?`, prefix+"lock")
		_ = db.Close()
	})
	return b, prefix
}

func TestBackend_Contract(t *testing.T) {
	b, prefix := newBackend(t)
	storagetest.RunBackendContract(t, b, prefix)
}

func TestBackend_EnsureSchemaIdempotent(t *testing.T) {
	b, _ := newBackend(t)
	require.NoError(t, b.EnsureSchema(context.Background()))
}

func TestBackend_BeginWithoutLockRow(t *testing.T) {
	b, _ := newBackend(t)
	other := New(b.db, "sin_fila_"+uuid.NewString()[:8])

	_, err := other.Begin(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "EnsureSchema")
}

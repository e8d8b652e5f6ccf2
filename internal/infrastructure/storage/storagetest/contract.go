// Package storagetest contiene la batería común que todo storage.Backend debe superar.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
)

// RunBackendContract verifica lectura/escritura, aislamiento de rollback y exclusión mutua.
// prefix aísla las claves de la prueba dentro de backends compartidos.
func RunBackendContract(t *testing.T, b storage.Backend, prefix string) {
	t.Helper()
	ctx := context.Background()
	key := prefix + "contract"

	t.Run("missing key returns nil", func(t *testing.T) {
		tx, err := b.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		v, err := tx.Get(ctx, prefix+"no-existe")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("commit persists and read-your-writes", func(t *testing.T) {
		tx, err := b.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Put(ctx, key, []byte(`[1,2]`)))
		v, err := tx.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `[1,2]`, string(v))
		require.NoError(t, tx.Commit(ctx))

		tx, err = b.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)
		v, err = tx.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `[1,2]`, string(v))
	})

	t.Run("rollback discards writes", func(t *testing.T) {
		tx, err := b.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Put(ctx, key, []byte(`[3]`)))
		require.NoError(t, tx.Rollback(ctx))

		tx, err = b.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)
		v, err := tx.Get(ctx, key)
		require.NoError(t, err)
		assert.JSONEq(t, `[1,2]`, string(v))
	})

	t.Run("delete removes key", func(t *testing.T) {
		tx, err := b.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Delete(ctx, key))
		v, err := tx.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, v)
		require.NoError(t, tx.Commit(ctx))

		tx, err = b.Begin(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)
		v, err = tx.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("transactions are mutually exclusive", func(t *testing.T) {
		store := storage.NewStore(b, prefix, nil)

		const workers = 8
		var wg sync.WaitGroup
		numbers := make(chan int64, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				err := store.Run(ctx, func(r repository.Repos) error {
					n, err := r.Invoices.NextNumber(ctx)
					if err != nil {
						return err
					}
					numbers <- n
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		close(numbers)

		seen := map[int64]bool{}
		for n := range numbers {
			assert.False(t, seen[n], "número %d repetido", n)
			seen[n] = true
		}
		assert.Len(t, seen, workers)
	})
}

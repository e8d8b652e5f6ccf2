// Package postgres implementa el backend PostgreSQL del almacén de entidades:
// una tabla clave/valor JSONB y un advisory lock por transacción.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
)

var _ storage.Backend = (*KVBackend)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS entity_store (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// KVBackend almacén de entidades en la tabla entity_store.
type KVBackend struct {
	pool     *pgxpool.Pool
	lockName string
}

// NewKVBackend construye el backend. lockName identifica el advisory lock
// (normalmente el prefijo de claves); almacenes con distinto nombre no se bloquean entre sí.
func NewKVBackend(pool *pgxpool.Pool, lockName string) *KVBackend {
	return &KVBackend{pool: pool, lockName: lockName}
}

// EnsureSchema crea la tabla entity_store si no existe.
func (b *KVBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.pool.Exec(ctx, schemaSQL); err != nil && !isDuplicateObject(err) {
		return fmt.Errorf("crear entity_store: %w", err)
	}
	return nil
}

// Begin abre una transacción y toma el advisory lock; se libera con Commit o Rollback.
func (b *KVBackend) Begin(ctx context.Context) (storage.BackendTx, error) {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, b.lockName); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("advisory lock: %w", err)
	}
	return &kvTx{tx: tx}, nil
}

// Close cierra el pool.
func (b *KVBackend) Close() error {
	b.pool.Close()
	return nil
}

// SumInvoiceTotals suma totalAmount de las facturas guardadas bajo key, calculado en el servidor.
func (b *KVBackend) SumInvoiceTotals(ctx context.Context, key string) (decimal.Decimal, error) {
	const q = `
SELECT COALESCE(SUM((elem->>'totalAmount')::numeric), 0)
FROM entity_store, jsonb_array_elements(value) AS elem
WHERE key = $1 AND jsonb_typeof(value) = 'array'`
	var total decimal.Decimal
	if err := b.pool.QueryRow(ctx, q, key).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sumar facturas: %w", err)
	}
	return total, nil
}

type kvTx struct {
	tx pgx.Tx
}

func (t *kvTx) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := t.tx.QueryRow(ctx, `SELECT value FROM entity_store WHERE key = $1`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	return raw, nil
}

func (t *kvTx) Put(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO entity_store (key, value, updated_at) VALUES ($1, $2::jsonb, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := t.tx.Exec(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	return nil
}

func (t *kvTx) Delete(ctx context.Context, key string) error {
	if _, err := t.tx.Exec(ctx, `DELETE FROM entity_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("borrar %s: %w", key, err)
	}
	return nil
}

func (t *kvTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *kvTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

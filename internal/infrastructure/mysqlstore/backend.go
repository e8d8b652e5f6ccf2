// Package mysqlstore implementa el backend MySQL del almacén de entidades:
// una tabla clave/valor JSON y una fila de bloqueo tomada con FOR UPDATE.
package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
)

var _ storage.Backend = (*Backend)(nil)

const (
	createStoreSQL = `
CREATE TABLE IF NOT EXISTS entity_store (
	k          VARCHAR(191) NOT NULL PRIMARY KEY,
	v          JSON NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`
	createLockSQL = `
CREATE TABLE IF NOT EXISTS entity_store_lock (
	name VARCHAR(191) NOT NULL PRIMARY KEY
)`
)

// Backend almacén de entidades en la tabla entity_store.
type Backend struct {
	db       *sql.DB
	lockName string
}

// Open abre la conexión con el DSN del driver go-sql-driver/mysql y verifica con ping.
func Open(ctx context.Context, dsn string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir mysql: %w", err)
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

// New construye el backend. Almacenes con distinto lockName no se bloquean entre sí.
func New(db *sql.DB, lockName string) *Backend {
	return &Backend{db: db, lockName: lockName}
}

// EnsureSchema crea las tablas y la fila de bloqueo si no existen.
func (b *Backend) EnsureSchema(ctx context.Context) error {
	for _, q := range []string{createStoreSQL, createLockSQL} {
		if _, err := b.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("crear esquema: %w", err)
		}
	}
	if _, err := b.db.ExecContext(ctx, `INSERT IGNORE INTO entity_store_lock (name) VALUES (?)`, b.lockName); err != nil {
		return fmt.Errorf("crear fila de bloqueo: %w", err)
	}
	return nil
}

// Begin abre una transacción y bloquea la fila de lockName hasta Commit o Rollback.
func (b *Backend) Begin(ctx context.Context) (storage.BackendTx, error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	var name string
	err = tx.QueryRowContext(ctx, `SELECT name FROM entity_store_lock WHERE name = ? FOR UPDATE`, b.lockName).Scan(&name)
	if err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("fila de bloqueo %q ausente: ejecute EnsureSchema", b.lockName)
		}
		return nil, fmt.Errorf("bloqueo: %w", err)
	}
	return &kvTx{tx: tx}, nil
}

// Close cierra la conexión.
func (b *Backend) Close() error {
	return b.db.Close()
}

type kvTx struct {
	tx *sql.Tx
}

func (t *kvTx) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := t.tx.QueryRowContext(ctx, `SELECT v FROM entity_store WHERE k = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	return raw, nil
}

func (t *kvTx) Put(ctx context.Context, key string, value []byte) error {
	const q = `
INSERT INTO entity_store (k, v) VALUES (?, ?)
ON DUPLICATE KEY UPDATE v = VALUES(v)`
	if _, err := t.tx.ExecContext(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	return nil
}

func (t *kvTx) Delete(ctx context.Context, key string) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM entity_store WHERE k = ?`, key); err != nil {
		return fmt.Errorf("borrar %s: %w", key, err)
	}
	return nil
}

func (t *kvTx) Commit(ctx context.Context) error {
	return t.tx.Commit()
}

func (t *kvTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}

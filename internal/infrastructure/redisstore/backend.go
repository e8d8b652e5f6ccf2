// Package redisstore implementa storage.Backend sobre Redis: un lease SET NX serializa
// las unidades de trabajo y los cambios se confirman en un único MULTI/EXEC.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
)

var _ storage.Backend = (*Backend)(nil)

// ErrLeaseLost el lease expiró u otro proceso lo tomó antes del commit.
var ErrLeaseLost = errors.New("redisstore: lease de escritura perdido")

const (
	defaultLeaseTTL   = 10 * time.Second
	defaultRetryDelay = 20 * time.Millisecond
)

// Libera el lease solo si sigue perteneciendo al token.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// Options ajustes del backend.
type Options struct {
	LockKey    string        // clave del lease; por defecto "<prefix>lock"
	LeaseTTL   time.Duration // vida máxima de una unidad de trabajo
	RetryDelay time.Duration // espera entre intentos de tomar el lease
}

// Backend almacén de entidades en Redis.
type Backend struct {
	client     *redis.Client
	lockKey    string
	ttl        time.Duration
	retryDelay time.Duration
}

// New construye el backend. prefix es el prefijo de claves del almacén.
func New(client *redis.Client, prefix string, opts Options) *Backend {
	b := &Backend{
		client:     client,
		lockKey:    opts.LockKey,
		ttl:        opts.LeaseTTL,
		retryDelay: opts.RetryDelay,
	}
	if b.lockKey == "" {
		b.lockKey = prefix + "lock"
	}
	if b.ttl <= 0 {
		b.ttl = defaultLeaseTTL
	}
	if b.retryDelay <= 0 {
		b.retryDelay = defaultRetryDelay
	}
	return b
}

// Begin espera hasta tomar el lease o hasta que ctx se cancele.
func (b *Backend) Begin(ctx context.Context) (storage.BackendTx, error) {
	token := uuid.NewString()
	for {
		ok, err := b.client.SetNX(ctx, b.lockKey, token, b.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("tomar lease: %w", err)
		}
		if ok {
			return &tx{
				b:       b,
				token:   token,
				staged:  make(map[string][]byte),
				deleted: make(map[string]bool),
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(b.retryDelay):
		}
	}
}

// Close cierra el cliente.
func (b *Backend) Close() error {
	return b.client.Close()
}

type tx struct {
	b       *Backend
	token   string
	staged  map[string][]byte
	deleted map[string]bool
	done    bool
}

func (t *tx) Get(ctx context.Context, key string) ([]byte, error) {
	if t.deleted[key] {
		return nil, nil
	}
	if v, ok := t.staged[key]; ok {
		return v, nil
	}
	v, err := t.b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

func (t *tx) Put(_ context.Context, key string, value []byte) error {
	t.staged[key] = value
	delete(t.deleted, key)
	return nil
}

func (t *tx) Delete(_ context.Context, key string) error {
	delete(t.staged, key)
	t.deleted[key] = true
	return nil
}

// Commit aplica los cambios y libera el lease en una transacción vigilada sobre la clave del lease.
func (t *tx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("redisstore: transacción cerrada")
	}
	t.done = true
	err := t.b.client.Watch(ctx, func(rtx *redis.Tx) error {
		owner, err := rtx.Get(ctx, t.b.lockKey).Result()
		if errors.Is(err, redis.Nil) || (err == nil && owner != t.token) {
			return ErrLeaseLost
		}
		if err != nil {
			return err
		}
		_, err = rtx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			for k, v := range t.staged {
				p.Set(ctx, k, v, 0)
			}
			for k := range t.deleted {
				p.Del(ctx, k)
			}
			p.Del(ctx, t.b.lockKey)
			return nil
		})
		return err
	}, t.b.lockKey)
	if err != nil {
		t.release(ctx)
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	return t.release(ctx)
}

func (t *tx) release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, t.b.client, []string{t.b.lockKey}, t.token).Err(); err != nil {
		return fmt.Errorf("liberar lease: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"sync"
)

var _ Backend = (*MemoryBackend)(nil)

// errTxClosed se devuelve al operar sobre una transacción ya confirmada o descartada.
var errTxClosed = errors.New("storage: transacción cerrada")

// MemoryBackend backend en memoria del proceso. Una sola transacción a la vez.
type MemoryBackend struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryBackend construye un backend vacío.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

// Begin bloquea el backend hasta Commit o Rollback. No es reentrante.
func (b *MemoryBackend) Begin(_ context.Context) (BackendTx, error) {
	b.mu.Lock()
	return &memoryTx{
		b:       b,
		staged:  make(map[string][]byte),
		deleted: make(map[string]bool),
	}, nil
}

// Close no libera nada; existe para cumplir Backend.
func (b *MemoryBackend) Close() error { return nil }

type memoryTx struct {
	b       *MemoryBackend
	staged  map[string][]byte
	deleted map[string]bool
	done    bool
}

func (t *memoryTx) Get(_ context.Context, key string) ([]byte, error) {
	if t.done {
		return nil, errTxClosed
	}
	if t.deleted[key] {
		return nil, nil
	}
	if v, ok := t.staged[key]; ok {
		return clone(v), nil
	}
	return clone(t.b.data[key]), nil
}

func (t *memoryTx) Put(_ context.Context, key string, value []byte) error {
	if t.done {
		return errTxClosed
	}
	t.staged[key] = clone(value)
	delete(t.deleted, key)
	return nil
}

func (t *memoryTx) Delete(_ context.Context, key string) error {
	if t.done {
		return errTxClosed
	}
	delete(t.staged, key)
	t.deleted[key] = true
	return nil
}

func (t *memoryTx) Commit(_ context.Context) error {
	if t.done {
		return errTxClosed
	}
	for k := range t.deleted {
		delete(t.b.data, k)
	}
	for k, v := range t.staged {
		t.b.data[k] = v
	}
	t.done = true
	t.b.mu.Unlock()
	return nil
}

func (t *memoryTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.b.mu.Unlock()
	return nil
}

func clone(v []byte) []byte {
	if v == nil {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}

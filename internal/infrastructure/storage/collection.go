package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// flusher escribe en el backend los cambios pendientes de una clave.
type flusher interface {
	flush(ctx context.Context, tx BackendTx) error
}

// document valor JSON bajo una clave, cargado perezosamente y escrito solo si cambió.
// Un JSON ilegible se trata como ausente.
type document[T any] struct {
	key     string
	tx      BackendTx
	log     *logger.Logger
	value   *T
	loaded  bool
	dirty   bool
	deleted bool
}

func newDocument[T any](key string, tx BackendTx, log *logger.Logger) *document[T] {
	return &document[T]{key: key, tx: tx, log: log}
}

func (d *document[T]) load(ctx context.Context) (*T, error) {
	if d.loaded {
		return d.value, nil
	}
	raw, err := d.tx.Get(ctx, d.key)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", d.key, err)
	}
	d.loaded = true
	if len(raw) == 0 {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		d.log.Warn().Err(err).Str("key", d.key).Msg("valor ilegible, se usa el valor por defecto")
		return nil, nil
	}
	d.value = &v
	return d.value, nil
}

func (d *document[T]) set(v T) {
	d.value = &v
	d.loaded = true
	d.dirty = true
	d.deleted = false
}

func (d *document[T]) clear() {
	d.value = nil
	d.loaded = true
	d.dirty = true
	d.deleted = true
}

func (d *document[T]) flush(ctx context.Context, tx BackendTx) error {
	if !d.dirty {
		return nil
	}
	if d.deleted {
		if err := tx.Delete(ctx, d.key); err != nil {
			return fmt.Errorf("borrar %s: %w", d.key, err)
		}
		return nil
	}
	raw, err := json.Marshal(d.value)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", d.key, err)
	}
	if err := tx.Put(ctx, d.key, raw); err != nil {
		return fmt.Errorf("escribir %s: %w", d.key, err)
	}
	return nil
}

// collection arreglo JSON de entidades con identificador.
type collection[T any] struct {
	doc *document[[]T]
	id  func(*T) string
}

func newCollection[T any](key string, tx BackendTx, log *logger.Logger, id func(*T) string) *collection[T] {
	return &collection[T]{doc: newDocument[[]T](key, tx, log), id: id}
}

func (c *collection[T]) all(ctx context.Context) ([]T, error) {
	items, err := c.doc.load(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return nil, nil
	}
	return *items, nil
}

func (c *collection[T]) indexOf(items []T, id string) int {
	for i := range items {
		if c.id(&items[i]) == id {
			return i
		}
	}
	return -1
}

// insert anexa v al final. Falla si ya existe otra entidad con el mismo id.
func (c *collection[T]) insert(ctx context.Context, v T) error {
	items, err := c.all(ctx)
	if err != nil {
		return err
	}
	if c.indexOf(items, c.id(&v)) >= 0 {
		return fmt.Errorf("%s: id duplicado %q", c.doc.key, c.id(&v))
	}
	next := make([]T, len(items), len(items)+1)
	copy(next, items)
	c.doc.set(append(next, v))
	return nil
}

// get devuelve una copia de la entidad o nil si no existe.
func (c *collection[T]) get(ctx context.Context, id string) (*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	i := c.indexOf(items, id)
	if i < 0 {
		return nil, nil
	}
	v := items[i]
	return &v, nil
}

// replace sustituye la entidad con el mismo id. Devuelve false si no existe.
func (c *collection[T]) replace(ctx context.Context, v T) (bool, error) {
	items, err := c.all(ctx)
	if err != nil {
		return false, err
	}
	i := c.indexOf(items, c.id(&v))
	if i < 0 {
		return false, nil
	}
	next := make([]T, len(items))
	copy(next, items)
	next[i] = v
	c.doc.set(next)
	return true, nil
}

func (c *collection[T]) remove(ctx context.Context, id string) (bool, error) {
	items, err := c.all(ctx)
	if err != nil {
		return false, err
	}
	i := c.indexOf(items, id)
	if i < 0 {
		return false, nil
	}
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:i]...)
	next = append(next, items[i+1:]...)
	c.doc.set(next)
	return true, nil
}

// filter devuelve copias de las entidades que cumplen keep, en orden de inserción.
func (c *collection[T]) filter(ctx context.Context, keep func(*T) bool) ([]*T, error) {
	items, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(items))
	for i := range items {
		if keep == nil || keep(&items[i]) {
			v := items[i]
			out = append(out, &v)
		}
	}
	return out, nil
}

func (c *collection[T]) flush(ctx context.Context, tx BackendTx) error {
	return c.doc.flush(ctx, tx)
}

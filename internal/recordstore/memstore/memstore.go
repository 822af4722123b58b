// Package memstore keeps documents in process memory. It backs the tests and
// the DB_DRIVER=memory development mode.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sync"

	"catalogadmin/internal/recordstore"

	"github.com/google/uuid"
)

type Collection[T any] struct {
	mu    sync.RWMutex
	name  string
	order []string
	docs  map[string]map[string]any
	// each entry is a set of fields whose combined values must be unique
	unique [][]string
}

func New[T any](name string) *Collection[T] {
	return &Collection[T]{
		name: name,
		docs: make(map[string]map[string]any),
	}
}

// Unique adds a compound unique constraint over keys, checked on insert
// and update under the same lock as the write.
func (c *Collection[T]) Unique(keys ...string) *Collection[T] {
	c.unique = append(c.unique, keys)
	return c
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) NewID() string { return uuid.NewString() }

func (c *Collection[T]) Insert(_ context.Context, doc *T) error {
	m, err := toMap(doc)
	if err != nil {
		return err
	}
	id, _ := m["_id"].(string)
	if id == "" {
		return fmt.Errorf("insert into %s: document has no _id", c.name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; ok {
		return fmt.Errorf("insert into %s: duplicate _id %s", c.name, id)
	}
	if err := c.checkUnique(id, m); err != nil {
		return fmt.Errorf("insert into %s: %w", c.name, err)
	}
	c.docs[id] = m
	c.order = append(c.order, id)
	return nil
}

func (c *Collection[T]) Find(_ context.Context, filter recordstore.Filter) ([]T, error) {
	want, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := []T{}
	for _, id := range c.order {
		doc := c.docs[id]
		if !matches(doc, want) {
			continue
		}
		v, err := fromMap[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Collection[T]) FindByID(_ context.Context, id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	doc, ok := c.docs[id]
	if !ok {
		return nil, recordstore.ErrNotFound
	}
	v, err := fromMap[T](doc)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Collection[T]) FindByIDs(_ context.Context, ids []string) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		doc, ok := c.docs[id]
		if !ok {
			continue
		}
		v, err := fromMap[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Collection[T]) UpdateByID(_ context.Context, id string, fields recordstore.Fields) error {
	set, err := normalize(fields)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, ok := c.docs[id]
	if !ok {
		return recordstore.ErrNotFound
	}
	next := make(map[string]any, len(doc)+len(set))
	for k, v := range doc {
		next[k] = v
	}
	for k, v := range set {
		if k == "_id" {
			continue
		}
		next[k] = v
	}
	if err := c.checkUnique(id, next); err != nil {
		return fmt.Errorf("update %s %s: %w", c.name, id, err)
	}
	c.docs[id] = next
	return nil
}

// checkUnique reports whether doc would collide with another stored
// document on any unique constraint. Callers hold the write lock.
func (c *Collection[T]) checkUnique(id string, doc map[string]any) error {
	for _, keys := range c.unique {
		want := make(map[string]any, len(keys))
		for _, k := range keys {
			want[k] = doc[k]
		}
		for oid, other := range c.docs {
			if oid != id && matches(other, want) {
				return fmt.Errorf("%w: %v", recordstore.ErrDuplicate, keys)
			}
		}
	}
	return nil
}

func (c *Collection[T]) DeleteByID(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return recordstore.ErrNotFound
	}
	delete(c.docs, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Collection[T]) Count(_ context.Context, filter recordstore.Filter) (int64, error) {
	want, err := normalize(filter)
	if err != nil {
		return 0, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var n int64
	for _, doc := range c.docs {
		if matches(doc, want) {
			n++
		}
	}
	return n, nil
}

func matches(doc, want map[string]any) bool {
	for k, v := range want {
		if !reflect.DeepEqual(doc[k], v) {
			return false
		}
	}
	return true
}

// normalize round-trips through JSON so stored and queried values share
// representations (numbers as float64, times as strings).
func normalize[M ~map[string]any](in M) (map[string]any, error) {
	if len(in) == 0 {
		return map[string]any{}, nil
	}
	return toMap(map[string]any(in))
}

func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return m, nil
}

func fromMap[T any](m map[string]any) (T, error) {
	var v T
	b, err := json.Marshal(m)
	if err != nil {
		return v, fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("decode document: %w", err)
	}
	return v, nil
}

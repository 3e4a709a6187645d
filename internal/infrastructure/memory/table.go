// Package memory holds map-backed repositories with the same contract as the
// MongoDB ones. They back the "memory" storage backend and the tests.
package memory

import (
	"strings"
	"sync"
)

// table keeps rows keyed by id plus their insertion order. Rows go in and
// come out as copies so callers never share state with the table.
type table[T any] struct {
	mu    sync.RWMutex
	rows  map[string]*T
	order []string
	clone func(*T) *T
}

func newTable[T any](clone func(*T) *T) *table[T] {
	return &table[T]{rows: make(map[string]*T), clone: clone}
}

func (t *table[T]) get(id string) *T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		return nil
	}
	return t.clone(row)
}

// insert stores row under id unless check rejects it. check runs under the
// write lock and sees the current rows in insertion order.
func (t *table[T]) insert(id string, row *T, check func(existing []*T) error) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if check != nil {
		if err := check(t.snapshot()); err != nil {
			return nil, err
		}
	}

	t.rows[id] = t.clone(row)
	t.order = append(t.order, id)
	return t.clone(row), nil
}

// update replaces the row stored under id with the result of apply. A miss
// yields nil, nil and apply is not called.
func (t *table[T]) update(id string, apply func(current *T, others []*T) error) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.rows[id]
	if !ok {
		return nil, nil
	}

	others := make([]*T, 0, len(t.order))
	for _, otherID := range t.order {
		if otherID != id {
			others = append(others, t.rows[otherID])
		}
	}

	next := t.clone(current)
	if err := apply(next, others); err != nil {
		return nil, err
	}
	t.rows[id] = next
	return t.clone(next), nil
}

func (t *table[T]) remove(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// list returns copies of the rows accepted by match in insertion order.
func (t *table[T]) list(match func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0, len(t.order))
	for _, row := range t.snapshot() {
		if match(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// snapshot must be called with the lock held.
func (t *table[T]) snapshot() []*T {
	out := make([]*T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id])
	}
	return out
}

func containsFold(value, substr string) bool {
	return strings.Contains(strings.ToLower(value), strings.ToLower(substr))
}

// Package category holds the session's mutable set of expense/income labels.
package category

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrEmptyName = errors.New("category name is empty")
	ErrDuplicate = errors.New("category already exists")
)

// Registry is the ordered set of category labels selectable when recording a
// transaction. Labels are case-sensitive, never renamed, and never deleted
// within a session.
type Registry struct {
	mu    sync.RWMutex
	names []string
}

// NewRegistry returns a registry seeded with the given labels. Duplicate or
// blank seeds are dropped silently.
func NewRegistry(seeds ...string) *Registry {
	r := &Registry{}

	for _, name := range seeds {
		_ = r.Add(name)
	}

	return r
}

// Defaults returns the labels the household starts with.
func Defaults() []string {
	return []string{"Moradia", "Alimentação", "Transporte", "Lazer", "Saúde"}
}

// Add appends a new label. It rejects blank names and exact (case-sensitive)
// duplicates; on rejection the registry is unchanged.
func (r *Registry) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.names {
		if existing == name {
			return ErrDuplicate
		}
	}

	r.names = append(r.names, name)

	return nil
}

// List returns the labels in insertion order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.names))
	copy(out, r.names)

	return out
}

// Contains reports whether the exact label is registered.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, existing := range r.names {
		if existing == name {
			return true
		}
	}

	return false
}

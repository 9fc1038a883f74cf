// ABOUTME: Key-value storage abstraction for persisted planning sessions
// ABOUTME: Adapters cover memory, local files, bolt, and redis backends

package storage

import "errors"

// ErrClosed is returned by adapters used after Close
var ErrClosed = errors.New("storage closed")

// Store reads and writes string values by key.
// Get reports false with a nil error when the key is absent.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// prefixed scopes every key of an underlying store under a namespace
type prefixed struct {
	store  Store
	prefix string
}

// WithPrefix returns a store whose keys are namespaced by prefix.
// It is used to give each API client its own session slot.
func WithPrefix(store Store, prefix string) Store {
	if store == nil {
		return nil
	}
	return &prefixed{store: store, prefix: prefix + ":"}
}

func (p *prefixed) Get(key string) (string, bool, error) {
	return p.store.Get(p.prefix + key)
}

func (p *prefixed) Set(key, value string) error {
	return p.store.Set(p.prefix+key, value)
}

func (p *prefixed) Remove(key string) error {
	return p.store.Remove(p.prefix + key)
}

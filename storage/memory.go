// ABOUTME: In-memory store backed by the TTL cache
// ABOUTME: Default backend for the API server and the test double for sessions

package storage

import (
	"time"

	"github.com/markalston/capacity-planner/cache"
)

// Memory keeps values in process memory, evicting them after ttl
type Memory struct {
	cache *cache.Cache
}

// NewMemory creates a memory store. A non-positive ttl keeps values until removed.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{cache: cache.New(ttl)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	val, ok := m.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	s, ok := val.(string)
	return s, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.cache.Set(key, value)
	return nil
}

func (m *Memory) Remove(key string) error {
	m.cache.Delete(key)
	return nil
}

// Close stops background eviction
func (m *Memory) Close() error {
	m.cache.Close()
	return nil
}

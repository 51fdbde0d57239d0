package fetchcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCapacity bounds the volatile store of a Cache.
const DefaultCapacity = 256

// Entry is a cached value with its lifetime.
type Entry[T any] struct {
	Value     T
	FetchedAt time.Time
	ExpiresAt time.Time
}

// Store holds entries for a Cache. Implementations must be safe for
// concurrent use.
type Store[T any] interface {
	Get(key string) (Entry[T], bool)
	Put(key string, e Entry[T])
	Delete(key string)
}

// LRUStore is a Store bounded to a fixed number of keys; the least recently
// used key is evicted first. Passed to WithDurable and shared between
// caches, it outlives any single cache's Reset.
//
// Entries carry their own ExpiresAt, checked by Cache against its clock, so
// the underlying LRU runs without a TTL and starts no janitor goroutine.
type LRUStore[T any] struct {
	lru *expirable.LRU[string, Entry[T]]
}

// NewLRUStore returns a store holding at most size keys. A size of zero or
// less means unbounded.
func NewLRUStore[T any](size int) *LRUStore[T] {
	return &LRUStore[T]{lru: expirable.NewLRU[string, Entry[T]](max(size, 0), nil, 0)}
}

func (s *LRUStore[T]) Get(key string) (Entry[T], bool) {
	return s.lru.Get(key)
}

func (s *LRUStore[T]) Put(key string, e Entry[T]) {
	s.lru.Add(key, e)
}

func (s *LRUStore[T]) Delete(key string) {
	s.lru.Remove(key)
}

// Purge drops every entry.
func (s *LRUStore[T]) Purge() {
	s.lru.Purge()
}

func (s *LRUStore[T]) Len() int {
	return s.lru.Len()
}

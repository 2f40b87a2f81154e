// Package session keeps per-user state between HTTP calls, bounded in size and
// age.
package session

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caution_session_hits_total",
		Help: "Session lookups that found a live session.",
	})
	sessionMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "caution_session_misses_total",
		Help: "Session lookups for unknown or expired sessions.",
	})
)

// Store is an LRU of sessions; an entry expires ttl after its last Add.
type Store[T any] struct {
	cache *expirable.LRU[string, T]
}

func NewStore[T any](maxEntries int, ttl time.Duration) *Store[T] {
	return &Store[T]{cache: expirable.NewLRU[string, T](maxEntries, nil, ttl)}
}

func (s *Store[T]) Get(id string) (T, bool) {
	v, ok := s.cache.Get(id)
	if ok {
		sessionHits.Inc()
	} else {
		sessionMisses.Inc()
	}
	return v, ok
}

func (s *Store[T]) Add(id string, v T) {
	s.cache.Add(id, v)
}

func (s *Store[T]) Remove(id string) {
	s.cache.Remove(id)
}

func (s *Store[T]) Len() int {
	return s.cache.Len()
}

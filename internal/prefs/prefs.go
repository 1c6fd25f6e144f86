// Package prefs persists small string values across sessions.
// The durable side is pluggable: a TOML file, a bbolt database, or memory.
package prefs

import (
	"log/slog"
	"sync"
)

// Backend is a durable string map.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
	Close() error
}

// Store reads and writes values on a Backend on a best-effort basis.
//
// Errors never reach the caller. The first failed read or write is logged
// and the store switches to memory for the rest of the session; values
// written before the failure remain readable from the copy kept in memory.
type Store struct {
	mu       sync.Mutex
	backend  Backend
	logger   *slog.Logger
	memory   map[string]string
	degraded bool
}

// NewStore wraps backend. A nil logger discards log output.
func NewStore(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if backend == nil {
		backend = NewMemory()
	}
	return &Store{
		backend: backend,
		logger:  logger,
		memory:  make(map[string]string),
	}
}

// Read returns the value stored under key, or fallback when it is unset or
// cannot be read.
func (s *Store) Read(key, fallback string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.memory[key]; ok {
		return v
	}
	if s.degraded {
		return fallback
	}
	v, ok, err := s.backend.Get(key)
	if err != nil {
		s.degrade("read", key, err)
		return fallback
	}
	if !ok {
		return fallback
	}
	return v
}

// Write stores value under key, replacing any previous value.
func (s *Store) Write(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memory[key] = value
	if s.degraded {
		return
	}
	if err := s.backend.Put(key, value); err != nil {
		s.degrade("write", key, err)
	}
}

// Degraded reports whether the store has fallen back to memory.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Close releases the backend.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Close()
}

func (s *Store) degrade(op, key string, err error) {
	s.degraded = true
	s.logger.Warn("prefs storage unavailable, keeping values in memory",
		slog.String("op", op),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// Package memstore is an in-process KV used by tests and the memory backend.
package memstore

import (
	"context"
	"errors"

	"github.com/idilsaglam/todo/internal/store"
)

var (
	ErrWriteFailed = errors.New("memstore: write failed")
	ErrReadFailed  = errors.New("memstore: read failed")
)

type Store struct {
	data map[string]string

	// FailWrites makes every Set return ErrWriteFailed.
	FailWrites bool
	// FailReads makes every Get return ErrReadFailed.
	FailReads bool

	writes int
}

var _ store.KV = (*Store)(nil)

func New() *Store {
	return &Store{data: map[string]string{}}
}

// Seed returns a Store holding the given key/value pairs.
func Seed(kv map[string]string) *Store {
	s := New()
	for k, v := range kv {
		s.data[k] = v
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	if err := store.ValidateKey(key); err != nil {
		return "", false, err
	}
	if s.FailReads {
		return "", false, ErrReadFailed
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	if err := store.ValidateKey(key); err != nil {
		return err
	}
	if s.FailWrites {
		return ErrWriteFailed
	}
	s.data[key] = value
	s.writes++
	return nil
}

// Writes counts successful Set calls.
func (s *Store) Writes() int { return s.writes }

// Value returns the raw stored value for key ("" if absent).
func (s *Store) Value(key string) string { return s.data[key] }

func (s *Store) Close() error { return nil }

// Package todo is the to-do list state core: the Store owns the ordered list
// and its persistence, the Session owns the single add/edit draft.
//
// Items are identified by position. Every mutating Store operation ends with
// an explicit Persist; nothing is written behind the caller's back.
package todo

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

// DefaultKey is the single key the whole list is stored under.
const DefaultKey = "todos"

// corruptSuffix names the key a rejected value is copied to before the
// store falls back to an empty list.
const corruptSuffix = ".corrupt"

type Store struct {
	kv     store.KV
	key    string
	logger *log.Logger
	strict bool

	items []model.Item
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStrictLoad makes Initialize fail on a corrupt stored value instead of
// starting empty.
func WithStrictLoad(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

func NewStore(kv store.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		key:    DefaultKey,
		logger: log.New(io.Discard),
		items:  []model.Item{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Key() string { return s.key }

// Initialize loads the list from the backing store. An absent key or an
// empty value is an empty list. A value that cannot be read or parsed is a corrupt state: by
// default it is logged, copied to "<key>.corrupt" and the list starts empty;
// in strict mode the error is returned instead.
func (s *Store) Initialize(ctx context.Context) error {
	s.items = []model.Item{}

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return s.recoverCorrupt(ctx, "", &CorruptStateError{Key: s.key, Err: err})
	}
	if !ok || raw == "" {
		s.logger.Debug("no stored list, starting empty", "key", s.key)
		return nil
	}

	items, err := decodeStored(s.key, raw)
	if err != nil {
		var cse *CorruptStateError
		if !errors.As(err, &cse) {
			return err
		}
		return s.recoverCorrupt(ctx, raw, cse)
	}
	s.items = items
	s.logger.Debug("loaded list", "key", s.key, "items", len(items))
	return nil
}

func (s *Store) recoverCorrupt(ctx context.Context, raw string, cause *CorruptStateError) error {
	if s.strict {
		s.logger.Error("stored list is corrupt", "key", s.key, "err", cause)
		return cause
	}
	s.logger.Warn("stored list is corrupt, starting empty", "key", s.key, "err", cause)
	if raw == "" {
		return nil
	}
	backup := s.key + corruptSuffix
	if err := s.kv.Set(ctx, backup, raw); err != nil {
		s.logger.Error("could not back up corrupt value", "key", backup, "err", err)
		return nil
	}
	s.logger.Info("corrupt value preserved", "key", backup)
	return nil
}

// Items returns a copy of the list.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

func (s *Store) At(position int) (model.Item, error) {
	if err := s.checkPosition("at", position); err != nil {
		return model.Item{}, err
	}
	return s.items[position], nil
}

// Stats counts completed and pending items.
func (s *Store) Stats() (completed, pending int) {
	for _, it := range s.items {
		if it.Done() {
			completed++
		} else {
			pending++
		}
	}
	return completed, pending
}

func (s *Store) checkPosition(op string, position int) error {
	if position < 0 || position >= len(s.items) {
		return &PositionError{Op: op, Position: position, Len: len(s.items)}
	}
	return nil
}

// Commit writes a draft back: a draft without a target is appended, a draft
// with an in-range target replaces that position. A target out of range is
// an ErrInvalidPosition and leaves the list untouched.
func (s *Store) Commit(ctx context.Context, d Draft) ([]model.Item, error) {
	item := d.Item()
	if p, ok := d.Position(); ok {
		if err := s.checkPosition("commit", p); err != nil {
			s.logger.Warn("commit rejected", "err", err)
			return s.Items(), err
		}
		s.items[p] = item
		s.logger.Debug("item updated", "position", p, "status", item.Status)
	} else {
		s.items = append(s.items, item)
		s.logger.Debug("item added", "position", len(s.items)-1)
	}
	return s.Items(), s.Persist(ctx)
}

// Remove drops the item at position; the others keep their relative order.
func (s *Store) Remove(ctx context.Context, position int) ([]model.Item, error) {
	if err := s.checkPosition("remove", position); err != nil {
		s.logger.Warn("remove rejected", "err", err)
		return s.Items(), err
	}
	next := make([]model.Item, 0, len(s.items)-1)
	next = append(next, s.items[:position]...)
	next = append(next, s.items[position+1:]...)
	s.items = next
	s.logger.Debug("item removed", "position", position)
	return s.Items(), s.Persist(ctx)
}

// Toggle flips the status of the item at position.
func (s *Store) Toggle(ctx context.Context, position int) ([]model.Item, error) {
	if err := s.checkPosition("toggle", position); err != nil {
		return s.Items(), err
	}
	it := s.items[position]
	return s.Commit(ctx, Draft{
		Title:  it.Title,
		Status: it.Status.Toggle(),
		Target: &position,
	})
}

// Persist overwrites the stored value with the full list. On failure the
// in-memory list is left as is and a *PersistenceError is returned.
func (s *Store) Persist(ctx context.Context) error {
	value, err := model.Encode(s.items)
	if err == nil {
		err = s.kv.Set(ctx, s.key, value)
	}
	if err != nil {
		s.logger.Error("could not persist list", "key", s.key, "err", err)
		return &PersistenceError{Key: s.key, Err: err}
	}
	return nil
}

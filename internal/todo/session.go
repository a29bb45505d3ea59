package todo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/todo/internal/model"
)

// Draft is the working copy of an item while the form is open.
// A nil Target means a new item.
type Draft struct {
	Title  string
	Status model.Status
	Target *int
}

func (d Draft) Item() model.Item {
	status := d.Status
	if status == "" {
		status = model.StatusPending
	}
	return model.Item{Title: d.Title, Status: status}
}

// Position returns the edit target, if any.
func (d Draft) Position() (int, bool) {
	if d.Target == nil {
		return 0, false
	}
	return *d.Target, true
}

func (d Draft) clone() Draft {
	if d.Target != nil {
		p := *d.Target
		d.Target = &p
	}
	return d
}

type State int

const (
	StateClosed State = iota
	StateNew
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateEditing:
		return "editing"
	default:
		return "closed"
	}
}

type Field int

const (
	FieldTitle Field = iota
	FieldStatus
)

func (f Field) String() string {
	if f == FieldStatus {
		return "status"
	}
	return "title"
}

var ErrUnknownField = errors.New("unknown field")

func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return FieldTitle, nil
	case "status":
		return FieldStatus, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Session is the single add/edit form. Only one may be open at a time.
type Session struct {
	store *Store
	state State
	draft Draft
}

func NewSession(s *Store) *Session {
	return &Session{store: s}
}

func (s *Session) State() State { return s.state }

func (s *Session) IsOpen() bool { return s.state != StateClosed }

// Draft returns a copy of the current draft.
func (s *Session) Draft() Draft { return s.draft.clone() }

func (s *Session) OpenForCreate() error {
	if s.IsOpen() {
		return ErrSessionOpen
	}
	s.draft = Draft{Status: model.StatusPending}
	s.state = StateNew
	return nil
}

// OpenForEdit copies the item at position into the draft.
func (s *Session) OpenForEdit(position int) error {
	if s.IsOpen() {
		return ErrSessionOpen
	}
	it, err := s.store.At(position)
	if err != nil {
		return err
	}
	s.draft = Draft{Title: it.Title, Status: it.Status, Target: &position}
	s.state = StateEditing
	return nil
}

// UpdateField sets a draft field. Titles are taken verbatim, empty included.
func (s *Session) UpdateField(f Field, value string) error {
	if !s.IsOpen() {
		return ErrSessionClosed
	}
	switch f {
	case FieldTitle:
		s.draft.Title = value
	case FieldStatus:
		st, err := model.ParseStatus(value)
		if err != nil {
			return err
		}
		s.draft.Status = st
	default:
		return fmt.Errorf("%w: %d", ErrUnknownField, f)
	}
	return nil
}

// Submit commits the draft and closes the session. When the target position
// is no longer valid the session stays open so the caller can cancel.
// A persistence failure still closes it: the list already changed.
func (s *Session) Submit(ctx context.Context) ([]model.Item, error) {
	if !s.IsOpen() {
		return s.store.Items(), ErrSessionClosed
	}
	items, err := s.store.Commit(ctx, s.draft.clone())
	if errors.Is(err, ErrInvalidPosition) {
		return items, err
	}
	s.reset()
	return items, err
}

func (s *Session) Cancel() { s.reset() }

func (s *Session) reset() {
	s.draft = Draft{}
	s.state = StateClosed
}

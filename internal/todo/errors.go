package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptState: the stored value could not be read or did not parse.
	ErrCorruptState = errors.New("corrupt state")
	// ErrInvalidPosition: a position outside [0, len) was used for edit or remove.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrPersistence: the list changed in memory but could not be written.
	ErrPersistence = errors.New("persistence failed")

	ErrSessionOpen   = errors.New("an edit session is already open")
	ErrSessionClosed = errors.New("no edit session is open")
)

// PositionError reports an out-of-range position.
type PositionError struct {
	Op       string
	Position int
	Len      int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s: position %d out of range (have %d items)", e.Op, e.Position, e.Len)
}

func (e *PositionError) Is(target error) bool { return target == ErrInvalidPosition }

// PersistenceError wraps a failed write. The in-memory list is kept.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %q: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// CorruptStateError describes why the stored value was rejected.
// Path is the JSON location of the first schema violation, if any.
type CorruptStateError struct {
	Key  string
	Path string
	Err  error
}

func (e *CorruptStateError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("corrupt value for %q at %s: %v", e.Key, e.Path, e.Err)
	}
	return fmt.Sprintf("corrupt value for %q: %v", e.Key, e.Err)
}

func (e *CorruptStateError) Unwrap() error { return e.Err }

func (e *CorruptStateError) Is(target error) bool { return target == ErrCorruptState }

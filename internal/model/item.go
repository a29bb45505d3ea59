package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Status is the completion state of an Item.
// The zero value reads as Pending.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

var ErrInvalidStatus = errors.New("invalid status")

// ParseStatus accepts the canonical names in any case, plus "todo" and "done".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending", "todo":
		return StatusPending, nil
	case "completed", "done":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: %q (want Pending or Completed)", ErrInvalidStatus, s)
}

func (s Status) String() string {
	if s == "" {
		return string(StatusPending)
	}
	return string(s)
}

func (s Status) Completed() bool { return s == StatusCompleted }

// Toggle flips Pending <-> Completed.
func (s Status) Toggle() Status {
	if s.Completed() {
		return StatusPending
	}
	return StatusCompleted
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	switch Status(raw) {
	case StatusPending, StatusCompleted:
		*s = Status(raw)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// Item is the domain model for a todo entry.
// Its position in the list is its identity; there is no id field.
type Item struct {
	Title  string `json:"title"`
	Status Status `json:"status"`
}

// Done reports whether the item is Completed.
func (it Item) Done() bool { return it.Status.Completed() }

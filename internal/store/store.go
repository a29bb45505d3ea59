// Package store defines the key-value string store the to-do list is
// persisted into. Backends live in subpackages.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// KV is a flat string key-value store. A missing key is not an error:
// Get reports it with ok == false.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var ErrInvalidKey = errors.New("invalid key")

// ValidateKey rejects keys that cannot be mapped onto a file name or row.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

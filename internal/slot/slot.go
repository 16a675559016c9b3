// Package slot provides named key-value storage locations that each hold one
// whole serialized value. A Set always replaces the previous value.
package slot

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKey is returned for keys that cannot name a slot.
var ErrInvalidKey = errors.New("invalid slot key")

// Slot is a persistent key-value store of opaque values.
type Slot interface {
	// Get returns the value stored under key. ok is false when nothing has
	// been stored yet.
	Get(key string) (value []byte, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(key string, value []byte) error
	Close() error
}

// ValidateKey reports whether key can be used as a slot name. Keys double as
// file names so separators and leading dots are rejected.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidKey, key)
	}
	return nil
}

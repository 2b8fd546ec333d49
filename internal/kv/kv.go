// Package kv is the durable key-value store behind the lab's session state.
//
// Values are JSON-encoded, so any serialisable value can be stored. Keys are
// plain strings scoped to one lab instance. There is exactly one writer, so
// no backend does locking beyond what it needs for its own consistency:
// the last write to a key wins.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the storage collaborator used by the session manager.
type Store interface {
	// Get decodes the value stored under key into dest. It reports
	// found=false, with a nil error, when the key is absent.
	Get(ctx context.Context, key string, dest any) (found bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetOr returns the value stored under key, or def when the key is absent.
// On error def is returned together with the error.
func GetOr[T any](ctx context.Context, s Store, key string, def T) (T, error) {
	var v T
	found, err := s.Get(ctx, key, &v)
	if err != nil {
		return def, err
	}
	if !found {
		return def, nil
	}
	return v, nil
}

func encode(key string, value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding value for %q: %w", key, err)
	}
	return data, nil
}

func decode(key string, data []byte, dest any) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decoding value for %q: %w", key, err)
	}
	return nil
}

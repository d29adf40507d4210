package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Load decodes the JSON value stored at key into a T. Missing, empty, null or
// unparsable values yield fallback; only backend failures are returned.
func Load[T any](ctx context.Context, store Store, key Key, fallback T) (T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("load %s: %w", key, err)
	}
	if len(raw) == 0 || string(raw) == "null" {
		return fallback, nil
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return fallback, nil
	}
	return out, nil
}

// Save encodes value as JSON and stores it at key.
func Save(ctx context.Context, store Store, key Key, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Batch stages several collection writes for a single SetMany commit.
type Batch struct {
	entries map[Key][]byte
	err     error
}

func NewBatch() *Batch {
	return &Batch{entries: map[Key][]byte{}}
}

// Put stages value under key. The first encoding error is kept and reported by Commit.
func (b *Batch) Put(key Key, value any) *Batch {
	if b.err != nil {
		return b
	}
	raw, err := json.Marshal(value)
	if err != nil {
		b.err = fmt.Errorf("encode %s: %w", key, err)
		return b
	}
	b.entries[key] = raw
	return b
}

// Len reports the number of staged keys.
func (b *Batch) Len() int {
	return len(b.entries)
}

// Commit writes every staged entry atomically.
func (b *Batch) Commit(ctx context.Context, store Store) error {
	if b.err != nil {
		return b.err
	}
	if len(b.entries) == 0 {
		return nil
	}
	if err := store.SetMany(ctx, b.entries); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

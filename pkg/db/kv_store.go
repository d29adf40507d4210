package db

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/angelmondragon/novastore/pkg/db/models"
	"github.com/angelmondragon/novastore/pkg/kv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ kv.Store = (*Client)(nil)

// Get returns the raw value stored under key, or kv.ErrNotFound.
func (c *Client) Get(ctx context.Context, key kv.Key) ([]byte, error) {
	var entry models.KVEntry
	err := c.conn.WithContext(ctx).
		Where("entry_key = ?", key.String()).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, kv.ErrNotFound
		}
		return nil, err
	}
	return []byte(entry.Value), nil
}

// Set upserts a single entry.
func (c *Client) Set(ctx context.Context, key kv.Key, value []byte) error {
	return upsertEntry(ctx, c.conn, key, value, time.Now().UTC())
}

// SetMany upserts every entry inside one transaction.
func (c *Client) SetMany(ctx context.Context, entries map[kv.Key][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	keys := make([]kv.Key, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	// fixed write order keeps concurrent writers from deadlocking on postgres
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	now := time.Now().UTC()
	return c.WithTx(ctx, func(tx *gorm.DB) error {
		for _, key := range keys {
			if err := upsertEntry(ctx, tx, key, entries[key], now); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertEntry(ctx context.Context, conn *gorm.DB, key kv.Key, value []byte, now time.Time) error {
	entry := models.KVEntry{
		Key:       key.String(),
		Value:     string(value),
		UpdatedAt: now,
	}
	return conn.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

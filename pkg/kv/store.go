package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when no value exists for the key.
var ErrNotFound = errors.New("kv: key not found")

// Key names one of the fixed logical collections.
type Key string

const (
	KeyUsers        Key = "nova_users"
	KeyProducts     Key = "nova_products"
	KeyOrders       Key = "nova_orders"
	KeyCart         Key = "nova_cart"
	KeySession      Key = "nova_session"
	KeySellerOrders Key = "nova_sellers_orders"
)

// AllKeys lists every collection key in a stable order.
var AllKeys = []Key{KeyUsers, KeyProducts, KeyOrders, KeyCart, KeySession, KeySellerOrders}

func (k Key) String() string {
	return string(k)
}

// Store is the durable key-value contract every backend implements.
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte) error
	// SetMany writes all entries or none of them.
	SetMany(ctx context.Context, entries map[Key][]byte) error
	Close() error
}

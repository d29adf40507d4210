package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/novastore/pkg/enums"
	"github.com/angelmondragon/novastore/pkg/kv"
)

// Principal is the authenticated identity persisted between reloads.
type Principal struct {
	UserID string     `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   enums.Role `json:"role"`
}

// IsSeller reports whether the principal registered as a seller.
func (p *Principal) IsSeller() bool {
	return p != nil && p.Role == enums.RoleSeller
}

// Provider exposes the read-only surface services need to gate operations.
type Provider interface {
	Current(ctx context.Context) (*Principal, error)
}

// Manager keeps at most one active principal in the store.
type Manager struct {
	store kv.Store
}

var _ Provider = (*Manager)(nil)

// NewManager constructs a session manager backed by the key-value store.
func NewManager(store kv.Store) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	return &Manager{store: store}, nil
}

// Current returns the active principal, or nil for a guest. Unreadable or
// incomplete session data is treated as a guest.
func (m *Manager) Current(ctx context.Context) (*Principal, error) {
	p, err := kv.Load[*Principal](ctx, m.store, kv.KeySession, nil)
	if err != nil {
		return nil, err
	}
	if p == nil || strings.TrimSpace(p.UserID) == "" || !p.Role.IsValid() {
		return nil, nil
	}
	return p, nil
}

// Establish replaces the active principal.
func (m *Manager) Establish(ctx context.Context, p Principal) error {
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("principal user id is required")
	}
	return kv.Save(ctx, m.store, kv.KeySession, p)
}

// Stage puts p into batch as the active principal for a combined commit.
func (m *Manager) Stage(batch *kv.Batch, p Principal) error {
	if strings.TrimSpace(p.UserID) == "" {
		return fmt.Errorf("principal user id is required")
	}
	batch.Put(kv.KeySession, p)
	return nil
}

// Clear removes the active principal unconditionally.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Set(ctx, kv.KeySession, []byte("null"))
}

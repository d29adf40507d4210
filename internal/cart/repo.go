package cart

import (
	"context"

	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/kv"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	Load(ctx context.Context) ([]Line, error)
	Save(ctx context.Context, lines []Line) error
}

type repository struct {
	store kv.Store
}

// NewRepository binds the cart to the cart key of store.
func NewRepository(store kv.Store) CartRepository {
	return &repository{store: store}
}

// Load returns the stored lines, dropping entries that could never have been
// written by the service (blank product or non-positive quantity).
func (r *repository) Load(ctx context.Context) ([]Line, error) {
	raw, err := kv.Load(ctx, r.store, kv.KeyCart, []Line{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	lines := make([]Line, 0, len(raw))
	for _, line := range raw {
		if line.ProductID == "" || line.Qty <= 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *repository) Save(ctx context.Context, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	if err := kv.Save(ctx, r.store, kv.KeyCart, lines); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

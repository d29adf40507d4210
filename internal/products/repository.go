package product

import (
	"context"

	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/kv"
)

// ProductRepository persists the catalog collection.
type ProductRepository interface {
	List(ctx context.Context) ([]Product, error)
	Replace(ctx context.Context, list []Product) error
}

type repository struct {
	store kv.Store
}

// NewRepository binds the catalog to the products collection of store.
func NewRepository(store kv.Store) ProductRepository {
	return &repository{store: store}
}

// List returns products in insertion order.
func (r *repository) List(ctx context.Context) ([]Product, error) {
	list, err := kv.Load(ctx, r.store, kv.KeyProducts, []Product{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	return list, nil
}

func (r *repository) Replace(ctx context.Context, list []Product) error {
	if list == nil {
		list = []Product{}
	}
	if err := kv.Save(ctx, r.store, kv.KeyProducts, list); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save products")
	}
	return nil
}

package orders

import (
	"context"

	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/kv"
)

// Repository defines persistence operations for the orders log and the
// seller index projection.
type Repository interface {
	ListOrders(ctx context.Context) ([]Order, error)
	LoadSellerIndex(ctx context.Context) (SellerIndex, error)
	SaveSellerIndex(ctx context.Context, index SellerIndex) error
	PrepareAppend(ctx context.Context, order Order) (*kv.Batch, error)
}

type repository struct {
	store kv.Store
}

// NewRepository binds the orders log and seller index to store.
func NewRepository(store kv.Store) Repository {
	return &repository{store: store}
}

// ListOrders returns the orders log in commit order.
func (r *repository) ListOrders(ctx context.Context) ([]Order, error) {
	list, err := kv.Load(ctx, r.store, kv.KeyOrders, []Order{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
	}
	return list, nil
}

func (r *repository) LoadSellerIndex(ctx context.Context) (SellerIndex, error) {
	index, err := kv.Load(ctx, r.store, kv.KeySellerOrders, SellerIndex{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller index")
	}
	if index == nil {
		index = SellerIndex{}
	}
	return index, nil
}

func (r *repository) SaveSellerIndex(ctx context.Context, index SellerIndex) error {
	if index == nil {
		index = SellerIndex{}
	}
	if err := kv.Save(ctx, r.store, kv.KeySellerOrders, index); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save seller index")
	}
	return nil
}

// PrepareAppend stages order onto the log and its fan-out onto the seller
// index. Nothing is written until the caller commits the batch.
func (r *repository) PrepareAppend(ctx context.Context, order Order) (*kv.Batch, error) {
	list, err := r.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	index, err := r.LoadSellerIndex(ctx)
	if err != nil {
		return nil, err
	}
	index.Append(order)

	return kv.NewBatch().
		Put(kv.KeyOrders, append(list, order)).
		Put(kv.KeySellerOrders, index), nil
}

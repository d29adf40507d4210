package orders

import (
	"context"
	"fmt"

	"github.com/angelmondragon/novastore/pkg/auth/session"
	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/logger"
)

// Service exposes read-side order views. Seller views are derived from the
// orders log on every call, so they cannot drift from committed orders.
type Service interface {
	ListSellerOrders(ctx context.Context, sellerID string) ([]SellerSubOrder, error)
	MySales(ctx context.Context, principal *session.Principal) ([]SellerSubOrder, error)
	ListBuyerOrders(ctx context.Context, buyerID string) ([]Order, error)
	Get(ctx context.Context, orderID string) (*Order, error)
	RebuildSellerIndex(ctx context.Context) (int, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the order read service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg}, nil
}

// ListSellerOrders returns sellerID's sub-orders in commit order, or an empty slice.
func (s *service) ListSellerOrders(ctx context.Context, sellerID string) ([]SellerSubOrder, error) {
	list, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]SellerSubOrder, 0)
	for _, order := range list {
		_, subs := FanOut(order)
		if sub, ok := subs[sellerID]; ok {
			out = append(out, sub)
		}
	}
	return out, nil
}

// MySales lists the sub-orders of the signed-in seller.
func (s *service) MySales(ctx context.Context, principal *session.Principal) ([]SellerSubOrder, error) {
	if principal == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	if !principal.IsSeller() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "seller role required")
	}
	return s.ListSellerOrders(ctx, principal.UserID)
}

// ListBuyerOrders returns buyerID's orders in commit order.
func (s *service) ListBuyerOrders(ctx context.Context, buyerID string) ([]Order, error) {
	list, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0)
	for _, order := range list {
		if order.BuyerID == buyerID {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*Order, error) {
	list, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == orderID {
			order := list[i]
			return &order, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

// RebuildSellerIndex regenerates the persisted seller index from the orders
// log and returns the number of sellers in it.
func (s *service) RebuildSellerIndex(ctx context.Context) (int, error) {
	list, err := s.repo.ListOrders(ctx)
	if err != nil {
		return 0, err
	}
	index := BuildSellerIndex(list)
	if err := s.repo.SaveSellerIndex(ctx, index); err != nil {
		return 0, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"orders": len(list), "sellers": len(index)}), "seller index rebuilt")
	return len(index), nil
}

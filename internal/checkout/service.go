package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/novastore/internal/cart"
	"github.com/angelmondragon/novastore/internal/checkout/helpers"
	"github.com/angelmondragon/novastore/internal/orders"
	product "github.com/angelmondragon/novastore/internal/products"
	"github.com/angelmondragon/novastore/pkg/auth/session"
	"github.com/angelmondragon/novastore/pkg/enums"
	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/kv"
	"github.com/angelmondragon/novastore/pkg/logger"
	"github.com/angelmondragon/novastore/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service commits the current cart into an order.
type Service interface {
	Checkout(ctx context.Context, info orders.DeliveryInfo) (*orders.Order, error)
}

type cartLoader interface {
	Load(ctx context.Context) ([]cart.Line, error)
}

type catalogReader interface {
	Snapshot(ctx context.Context) (product.Catalog, error)
}

type orderStager interface {
	PrepareAppend(ctx context.Context, order orders.Order) (*kv.Batch, error)
}

// ServiceParams bundles the dependencies required to build a checkout service.
type ServiceParams struct {
	Store       kv.Store
	Session     session.Provider
	Cart        cartLoader
	Catalog     catalogReader
	Orders      orderStager
	ShippingFee decimal.Decimal
	Metrics     *metrics.CheckoutMetrics
	Logger      *logger.Logger
	Clock       func() time.Time
}

type service struct {
	store       kv.Store
	session     session.Provider
	cart        cartLoader
	catalog     catalogReader
	orders      orderStager
	shippingFee decimal.Decimal
	metrics     *metrics.CheckoutMetrics
	logg        *logger.Logger
	now         func() time.Time
}

// NewService builds a checkout service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("store required")
	}
	if params.Session == nil {
		return nil, fmt.Errorf("session provider required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.ShippingFee.IsNegative() {
		return nil, fmt.Errorf("shipping fee must be non-negative")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		store:       params.Store,
		session:     params.Session,
		cart:        params.Cart,
		catalog:     params.Catalog,
		orders:      params.Orders,
		shippingFee: params.ShippingFee,
		metrics:     params.Metrics,
		logg:        logg,
		now:         clock,
	}, nil
}

// Checkout snapshots the cart, prices it, and writes the order, its seller
// fan-out and the emptied cart in one atomic commit. On any error nothing
// is written.
func (s *service) Checkout(ctx context.Context, info orders.DeliveryInfo) (*orders.Order, error) {
	order, err := s.checkout(ctx, info)
	if err != nil {
		s.metrics.IncFailure(string(pkgerrors.CodeOf(err)))
		return nil, err
	}
	return order, nil
}

func (s *service) checkout(ctx context.Context, info orders.DeliveryInfo) (*orders.Order, error) {
	principal, err := s.session.Current(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	if principal == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required to checkout")
	}
	ctx = s.logg.WithUserID(ctx, principal.UserID)

	lines, err := s.cart.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
	}

	info, err = helpers.ValidateDeliveryInfo(info)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	items := helpers.SnapshotItems(lines, catalog)
	totals := helpers.ComputeOrderTotals(items, s.shippingFee)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order id")
	}
	order := orders.Order{
		ID:         id.String(),
		BuyerID:    principal.UserID,
		BuyerEmail: principal.Email,
		Items:      items,
		Subtotal:   totals.Subtotal,
		Shipping:   totals.Shipping,
		Total:      totals.Total,
		Info:       info,
		Status:     enums.OrderStatusPaidSimulated,
		CreatedAt:  s.now().UTC(),
	}

	batch, err := s.orders.PrepareAppend(ctx, order)
	if err != nil {
		return nil, err
	}
	batch.Put(kv.KeyCart, []cart.Line{})
	if err := batch.Commit(ctx, s.store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "commit order")
	}

	sellers, _ := orders.GroupItemsBySeller(items)
	s.metrics.ObserveCommitted(info.PaymentMethod, order.Total, len(sellers))
	ctx = s.logg.WithOrderID(ctx, order.ID)
	for _, sellerID := range sellers {
		s.logg.Debug(s.logg.WithSellerID(ctx, sellerID), "seller sub-order appended")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"items":   len(items),
		"sellers": len(sellers),
		"total":   order.Total.String(),
	}), "order committed")

	return &order, nil
}

package storefront

import (
	"context"
	"fmt"

	"github.com/angelmondragon/novastore/internal/auth"
	"github.com/angelmondragon/novastore/internal/cart"
	"github.com/angelmondragon/novastore/internal/checkout"
	"github.com/angelmondragon/novastore/internal/orders"
	product "github.com/angelmondragon/novastore/internal/products"
	"github.com/angelmondragon/novastore/internal/users"
	"github.com/angelmondragon/novastore/pkg/auth/session"
	"github.com/angelmondragon/novastore/pkg/config"
	"github.com/angelmondragon/novastore/pkg/enums"
	"github.com/angelmondragon/novastore/pkg/kv"
	"github.com/angelmondragon/novastore/pkg/logger"
	"github.com/angelmondragon/novastore/pkg/metrics"
	"github.com/angelmondragon/novastore/pkg/security"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// App is the storefront core: every service wired over one key-value store.
// A presentation layer drives it through the exported services.
type App struct {
	Auth     auth.Service
	Catalog  product.Service
	Cart     cart.Service
	Orders   orders.Service
	Checkout checkout.Service

	cfg     *config.Config
	store   kv.Store
	session *session.Manager
	users   *users.Repository
	orders  orders.Repository
	logg    *logger.Logger
}

// Options carries optional collaborators for New and NewWithStore.
type Options struct {
	Logger   *logger.Logger
	Registry prometheus.Registerer
}

// New opens the configured backend and builds the app on top of it.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	store, err := OpenStore(ctx, cfg, logg)
	if err != nil {
		return nil, err
	}
	app, err := NewWithStore(ctx, cfg, store, opts)
	if err != nil {
		return nil, multierr.Append(err, store.Close())
	}
	return app, nil
}

// NewWithStore wires the services over store, seeds the catalog when enabled
// and rebuilds the seller index projection from the orders log.
func NewWithStore(ctx context.Context, cfg *config.Config, store kv.Store, opts Options) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config required")
	}
	if store == nil {
		return nil, fmt.Errorf("store required")
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	sessionMgr, err := session.NewManager(store)
	if err != nil {
		return nil, err
	}
	userRepo := users.NewRepository(store)
	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionMgr,
		Hasher:         security.NewHasher(cfg.Password),
		Logger:         logg,
	})
	if err != nil {
		return nil, fmt.Errorf("create auth service: %w", err)
	}

	catalogSvc, err := product.NewService(product.NewRepository(store), logg)
	if err != nil {
		return nil, fmt.Errorf("create catalog service: %w", err)
	}

	cartRepo := cart.NewRepository(store)
	cartSvc, err := cart.NewService(cartRepo, catalogSvc, cfg.Checkout.ShippingFee)
	if err != nil {
		return nil, fmt.Errorf("create cart service: %w", err)
	}

	orderRepo := orders.NewRepository(store)
	orderSvc, err := orders.NewService(orderRepo, logg)
	if err != nil {
		return nil, fmt.Errorf("create orders service: %w", err)
	}

	checkoutSvc, err := checkout.NewService(checkout.ServiceParams{
		Store:       store,
		Session:     sessionMgr,
		Cart:        cartRepo,
		Catalog:     catalogSvc,
		Orders:      orderRepo,
		ShippingFee: cfg.Checkout.ShippingFee,
		Metrics:     metrics.NewCheckoutMetrics(opts.Registry),
		Logger:      logg,
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout service: %w", err)
	}

	app := &App{
		Auth:     authSvc,
		Catalog:  catalogSvc,
		Cart:     cartSvc,
		Orders:   orderSvc,
		Checkout: checkoutSvc,
		cfg:      cfg,
		store:    store,
		session:  sessionMgr,
		users:    userRepo,
		orders:   orderRepo,
		logg:     logg,
	}
	if err := app.bootstrap(ctx); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) bootstrap(ctx context.Context) error {
	if a.cfg.Catalog.SeedOnStart {
		if _, err := a.Catalog.EnsureSeeded(ctx); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	if _, err := a.Orders.RebuildSellerIndex(ctx); err != nil {
		return fmt.Errorf("rebuild seller index: %w", err)
	}
	return nil
}

// Close releases the backing store.
func (a *App) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}

// AddProduct lists a product for the signed-in seller.
func (a *App) AddProduct(ctx context.Context, input product.CreateProductInput) (*product.Product, error) {
	p, err := a.Auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	return a.Catalog.AddProduct(ctx, p, input)
}

// RemoveProduct deletes one of the signed-in seller's products.
func (a *App) RemoveProduct(ctx context.Context, productID string) error {
	p, err := a.Auth.Current(ctx)
	if err != nil {
		return err
	}
	return a.Catalog.RemoveProduct(ctx, p, productID)
}

// ListProducts lists the catalog as seen by the current session.
func (a *App) ListProducts(ctx context.Context, filter enums.ProductFilter) ([]product.Product, error) {
	p, err := a.Auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	return a.Catalog.List(ctx, filter, p)
}

// MySales lists the signed-in seller's sub-orders.
func (a *App) MySales(ctx context.Context) ([]orders.SellerSubOrder, error) {
	p, err := a.Auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	return a.Orders.MySales(ctx, p)
}

// MyOrders lists the signed-in buyer's orders; a guest has none.
func (a *App) MyOrders(ctx context.Context) ([]orders.Order, error) {
	p, err := a.Auth.Current(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return []orders.Order{}, nil
	}
	return a.Orders.ListBuyerOrders(ctx, p.UserID)
}

// Status summarizes the persisted collections.
type Status struct {
	Driver    string `json:"driver"`
	Users     int    `json:"users"`
	Products  int    `json:"products"`
	Orders    int    `json:"orders"`
	CartLines int    `json:"cartLines"`
	Sellers   int    `json:"sellers"`
	SignedIn  string `json:"signedIn,omitempty"`
}

func (a *App) Status(ctx context.Context) (*Status, error) {
	userList, err := a.users.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := a.Catalog.List(ctx, enums.ProductFilterAll, nil)
	if err != nil {
		return nil, err
	}
	orderList, err := a.orders.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := a.Cart.Lines(ctx)
	if err != nil {
		return nil, err
	}
	principal, err := a.session.Current(ctx)
	if err != nil {
		return nil, err
	}

	st := &Status{
		Driver:    a.cfg.Store.NormalizedDriver(),
		Users:     len(userList),
		Products:  len(products),
		Orders:    len(orderList),
		CartLines: len(lines),
		Sellers:   len(orders.BuildSellerIndex(orderList)),
	}
	if principal != nil {
		st.SignedIn = principal.Email
	}
	return st, nil
}

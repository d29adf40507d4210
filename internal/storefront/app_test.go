package storefront

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/angelmondragon/novastore/internal/auth"
	"github.com/angelmondragon/novastore/internal/orders"
	product "github.com/angelmondragon/novastore/internal/products"
	"github.com/angelmondragon/novastore/pkg/config"
	"github.com/angelmondragon/novastore/pkg/enums"
	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/kv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Password = config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
	return cfg
}

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testConfig()
	cfg.Store.Driver = config.DriverSQLite
	cfg.DB.SQLitePath = filepath.Join(t.TempDir(), "novastore.db")
	cfg.DB.AutoMigrate = true
	return cfg
}

var delivery = orders.DeliveryInfo{FullName: "Ana", Address: "Calle 1", Phone: "555", PaymentMethod: enums.PaymentMethodCash}

func runStorefrontFlow(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()

	all, err := app.ListProducts(ctx, enums.ProductFilterAll)
	require.NoError(t, err)
	require.Len(t, all, 3, "seeded catalog")

	_, err = app.Auth.Register(ctx, auth.RegisterRequest{Name: "Vendor", Email: "vendor7@shop.io", Password: "pw", Role: enums.RoleSeller})
	require.NoError(t, err)
	listed, err := app.AddProduct(ctx, product.CreateProductInput{Title: "Sensor Pro", Price: decimal.NewFromInt(450)})
	require.NoError(t, err)
	vendorID := listed.SellerID
	require.NoError(t, app.Auth.Logout(ctx))

	_, err = app.Auth.Register(ctx, auth.RegisterRequest{Email: "buyer@shop.io", Password: "pw", Role: enums.RoleBuyer})
	require.NoError(t, err)

	_, err = app.AddProduct(ctx, product.CreateProductInput{Title: "Nope", Price: decimal.NewFromInt(1)})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeForbidden), "buyer cannot list products: %v", err)

	_, err = app.Cart.AddItem(ctx, "p1")
	require.NoError(t, err)
	_, err = app.Cart.AddItem(ctx, listed.ID)
	require.NoError(t, err)
	_, err = app.Cart.AddItem(ctx, listed.ID)
	require.NoError(t, err)

	order, err := app.Checkout.Checkout(ctx, delivery)
	require.NoError(t, err)
	assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(2100)))
	assert.True(t, order.Total.Equal(decimal.NewFromInt(2140)))

	mine, err := app.MyOrders(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, order.ID, mine[0].ID)

	system, err := app.Orders.ListSellerOrders(ctx, product.SystemSellerID)
	require.NoError(t, err)
	require.Len(t, system, 1)
	assert.True(t, system[0].Total.Equal(decimal.NewFromInt(1200)))

	vendor, err := app.Orders.ListSellerOrders(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, vendor, 1)
	assert.True(t, vendor[0].Total.Equal(decimal.NewFromInt(900)))

	_, err = app.Auth.Login(ctx, auth.LoginRequest{Email: "vendor7@shop.io", Password: "pw", Role: enums.RoleSeller})
	require.NoError(t, err)
	sales, err := app.MySales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, order.ID, sales[0].OrderID)

	require.NoError(t, app.RemoveProduct(ctx, listed.ID))
	stored, err := app.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sensor Pro", stored.Items[1].Title)
}

func TestAppFlowOnMemoryStore(t *testing.T) {
	app, err := New(context.Background(), testConfig(), Options{Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	defer app.Close()

	runStorefrontFlow(t, app)

	st, err := app.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, st.Driver)
	assert.Equal(t, 2, st.Users)
	assert.Equal(t, 1, st.Orders)
	assert.Equal(t, 0, st.CartLines)
	assert.Equal(t, 2, st.Sellers)
	assert.Equal(t, "vendor7@shop.io", st.SignedIn)
}

func TestAppStatePersistsAcrossReopenOnSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	app, err := New(ctx, cfg, Options{})
	require.NoError(t, err)
	runStorefrontFlow(t, app)
	require.NoError(t, app.Close())

	reopened, err := New(ctx, cfg, Options{})
	require.NoError(t, err)
	defer reopened.Close()

	p, err := reopened.Auth.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, p, "session survives reload")
	assert.Equal(t, "vendor7@shop.io", p.Email)

	all, err := reopened.ListProducts(ctx, enums.ProductFilterAll)
	require.NoError(t, err)
	assert.Len(t, all, 3, "removed product stays removed and seeds are not re-added")

	sales, err := reopened.MySales(ctx)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestNewRebuildsSellerIndexFromLog(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	app, err := NewWithStore(ctx, testConfig(), store, Options{})
	require.NoError(t, err)
	_, err = app.Auth.Register(ctx, auth.RegisterRequest{Email: "b@shop.io", Password: "pw", Role: enums.RoleBuyer})
	require.NoError(t, err)
	_, err = app.Cart.AddItem(ctx, "p2")
	require.NoError(t, err)
	_, err = app.Checkout.Checkout(ctx, delivery)
	require.NoError(t, err)

	// simulate a projection lost between runs
	require.NoError(t, store.Set(ctx, kv.KeySellerOrders, []byte(`{}`)))

	_, err = NewWithStore(ctx, testConfig(), store, Options{})
	require.NoError(t, err)
	index, err := kv.Load(ctx, store, kv.KeySellerOrders, orders.SellerIndex{})
	require.NoError(t, err)
	require.Len(t, index[product.SystemSellerID], 1)
	assert.True(t, index[product.SystemSellerID][0].Total.Equal(decimal.NewFromInt(450)))
}

func TestSeedingCanBeDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog.SeedOnStart = false
	app, err := NewWithStore(context.Background(), cfg, kv.NewMemoryStore(), Options{})
	require.NoError(t, err)

	list, err := app.ListProducts(context.Background(), enums.ProductFilterAll)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCorruptCollectionsDegradeToDefaults(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	for _, key := range kv.AllKeys {
		require.NoError(t, store.Set(ctx, key, []byte(`{corrupt`)))
	}

	app, err := NewWithStore(ctx, testConfig(), store, Options{})
	require.NoError(t, err)

	p, err := app.Auth.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	st, err := app.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Products, "corrupt catalog is reseeded")
	assert.Equal(t, 0, st.Users)
	assert.Equal(t, 0, st.Orders)
	assert.Equal(t, 0, st.CartLines)
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Driver = "etcd"
	_, err := New(context.Background(), cfg, Options{})
	require.Error(t, err)

	_, err = New(context.Background(), nil, Options{})
	require.Error(t, err)
}

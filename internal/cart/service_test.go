package cart

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	product "github.com/angelmondragon/novastore/internal/products"
	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/kv"
	"github.com/shopspring/decimal"
)

type stubCatalog struct {
	catalog product.Catalog
	err     error
}

func (s *stubCatalog) Snapshot(context.Context) (product.Catalog, error) {
	return s.catalog, s.err
}

func testCatalog() *stubCatalog {
	return &stubCatalog{catalog: product.NewCatalog([]product.Product{
		{ID: "A", Title: "Camera", Price: decimal.NewFromInt(1200), SellerID: "system"},
		{ID: "B", Title: "Sensor", Price: decimal.NewFromInt(450), SellerID: "vendor7"},
	})}
}

func newTestService(t *testing.T, catalog *stubCatalog) (Service, CartRepository) {
	t.Helper()
	repo := NewRepository(kv.NewMemoryStore())
	svc, err := NewService(repo, catalog, decimal.NewFromInt(40))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, testCatalog())

	for _, id := range []string{"A", "B", "B"} {
		if _, err := svc.AddItem(ctx, id); err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
	}
	lines, err := repo.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []Line{{ProductID: "A", Qty: 1}, {ProductID: "B", Qty: 2}}
	if len(lines) != len(want) || lines[0] != want[0] || lines[1] != want[1] {
		t.Fatalf("unexpected lines %+v", lines)
	}

	totals, err := svc.Totals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !totals.Subtotal.Equal(decimal.NewFromInt(2100)) || !totals.ShippingFee.Equal(decimal.NewFromInt(40)) || !totals.Total.Equal(decimal.NewFromInt(2140)) {
		t.Fatalf("unexpected totals %+v", totals)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, testCatalog())

	_, err := svc.AddItem(ctx, "ghost")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if lines, _ := repo.Load(ctx); len(lines) != 0 {
		t.Fatalf("cart should be unchanged, got %+v", lines)
	}
}

func TestAddItemCatalogFailure(t *testing.T) {
	boom := errors.New("catalog down")
	svc, _ := newTestService(t, &stubCatalog{err: boom})
	if _, err := svc.AddItem(context.Background(), "A"); !errors.Is(err, boom) {
		t.Fatalf("expected catalog error, got %v", err)
	}
}

func TestChangeQuantityRemovesLineAtZero(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testCatalog())
	if _, err := svc.AddItem(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddItem(ctx, "B"); err != nil {
		t.Fatal(err)
	}

	lines, err := svc.ChangeQuantity(ctx, "A", -1)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0].ProductID != "B" {
		t.Fatalf("expected only B left, got %+v", lines)
	}

	totals, err := svc.Totals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !totals.Subtotal.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected subtotal 450 without A, got %s", totals.Subtotal)
	}

	lines, err = svc.ChangeQuantity(ctx, "B", -5)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestChangeQuantityOnMissingLineIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, testCatalog())
	if _, err := svc.AddItem(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	lines, err := svc.ChangeQuantity(ctx, "B", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0].ProductID != "A" || lines[0].Qty != 1 {
		t.Fatalf("unexpected lines %+v", lines)
	}
	stored, _ := repo.Load(ctx)
	if len(stored) != 1 {
		t.Fatalf("unexpected stored lines %+v", stored)
	}
}

func TestQuantitiesStayPositive(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, testCatalog())
	rng := rand.New(rand.NewPCG(7, 11))
	ids := []string{"A", "B"}

	for i := 0; i < 500; i++ {
		id := ids[rng.IntN(len(ids))]
		var err error
		if rng.IntN(2) == 0 {
			_, err = svc.AddItem(ctx, id)
		} else {
			_, err = svc.ChangeQuantity(ctx, id, rng.IntN(7)-4)
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		lines, err := repo.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}
		seen := map[string]bool{}
		for _, line := range lines {
			if line.Qty <= 0 {
				t.Fatalf("step %d: non-positive quantity %+v", i, line)
			}
			if seen[line.ProductID] {
				t.Fatalf("step %d: duplicate line for %s", i, line.ProductID)
			}
			seen[line.ProductID] = true
		}
	}
}

func TestOrphanedLinesSkippedButShippingApplies(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog()
	svc, _ := newTestService(t, catalog)
	if _, err := svc.AddItem(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddItem(ctx, "B"); err != nil {
		t.Fatal(err)
	}
	delete(catalog.catalog, "A")

	view, err := svc.View(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if view.Orphaned != 1 || len(view.Lines) != 1 || view.Lines[0].Product.ID != "B" {
		t.Fatalf("unexpected view %+v", view)
	}
	if !view.Totals.Total.Equal(decimal.NewFromInt(490)) {
		t.Fatalf("expected total 490, got %s", view.Totals.Total)
	}

	// the orphaned line is still in the cart
	lines, _ := svc.Lines(ctx)
	if len(lines) != 2 {
		t.Fatalf("expected orphaned line to remain, got %+v", lines)
	}

	delete(catalog.catalog, "B")
	totals, err := svc.Totals(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !totals.Subtotal.IsZero() || !totals.Total.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected shipping only, got %+v", totals)
	}
}

func TestEmptyCartTotalsAreZero(t *testing.T) {
	totals := ComputeTotals(nil, product.Catalog{}, decimal.NewFromInt(40))
	if !totals.Subtotal.IsZero() || !totals.ShippingFee.IsZero() || !totals.Total.IsZero() {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, testCatalog())
	if _, err := svc.AddItem(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	lines, _ := svc.Lines(ctx)
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %+v", lines)
	}
}

func TestLoadDropsInvalidStoredLines(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := store.Set(ctx, kv.KeyCart, []byte(`[{"productId":"A","qty":2},{"productId":"B","qty":0},{"productId":"","qty":1}]`)); err != nil {
		t.Fatal(err)
	}
	lines, err := NewRepository(store).Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0].ProductID != "A" {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestNewServiceRejectsNegativeFee(t *testing.T) {
	if _, err := NewService(NewRepository(kv.NewMemoryStore()), testCatalog(), decimal.NewFromInt(-1)); err == nil {
		t.Fatal("expected error")
	}
}

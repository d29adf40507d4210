package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/angelmondragon/novastore/internal/orders"
	product "github.com/angelmondragon/novastore/internal/products"
	"github.com/shopspring/decimal"
)

func TestRenderProductsFormatsPrices(t *testing.T) {
	views := renderProducts([]product.Product{
		{ID: "p1", Title: "Camera", Price: decimal.NewFromInt(1200), SellerID: product.SystemSellerID},
		{ID: "p9", Title: "Cable", Price: decimal.RequireFromString("19.994"), SellerID: "vendor7"},
	}, "USD")

	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].Price.Amount != "1200.00" || views[0].Price.Currency != "USD" {
		t.Fatalf("unexpected price %+v", views[0].Price)
	}
	if views[1].Price.Amount != "19.99" {
		t.Fatalf("expected rounding at display, got %s", views[1].Price.Amount)
	}
}

func TestRenderSubOrdersFormatsTotals(t *testing.T) {
	vendor := "vendor7"
	subs := []orders.SellerSubOrder{{
		OrderID: "o1",
		Items: []orders.OrderItem{
			{ProductID: "B", Title: "Sensor", Price: decimal.NewFromInt(450), Qty: 2, SellerID: &vendor},
		},
		Total: decimal.NewFromInt(900),
	}}

	views := renderSubOrders(subs, "MXN")
	if len(views) != 1 || len(views[0].Items) != 1 {
		t.Fatalf("unexpected views %+v", views)
	}
	if views[0].Total.Amount != "900.00" || views[0].Total.Currency != "MXN" {
		t.Fatalf("unexpected total %+v", views[0].Total)
	}
	item := views[0].Items[0]
	if item.LineTotal.Amount != "900.00" || item.SellerID != vendor {
		t.Fatalf("unexpected item %+v", item)
	}

	raw, err := json.Marshal(views)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"total":{"amount":"900.00","currency":"MXN"}`) {
		t.Fatalf("unexpected json %s", raw)
	}
}

func TestRenderEmptyListsAsArrays(t *testing.T) {
	raw, err := json.Marshal(renderSubOrders(nil, "USD"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != "[]" {
		t.Fatalf("expected empty array, got %s", raw)
	}
}

package cart

import (
	product "github.com/angelmondragon/novastore/internal/products"
	"github.com/shopspring/decimal"
)

// Line is one product in the cart. Quantity is always at least 1.
type Line struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Totals is the priced summary of a cart.
type Totals struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	ShippingFee decimal.Decimal `json:"shipping"`
	Total       decimal.Decimal `json:"total"`
}

// ViewLine is a cart line resolved against the catalog for display.
type ViewLine struct {
	Product   product.Product `json:"product"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// View is the resolved cart. Orphaned counts lines whose product is gone;
// they stay in the cart but are neither shown nor priced.
type View struct {
	Lines    []ViewLine `json:"lines"`
	Totals   Totals     `json:"totals"`
	Orphaned int        `json:"orphaned"`
}

// ComputeTotals prices lines against catalog. Lines with no matching product
// are skipped. The shipping fee applies whenever the cart has any line.
func ComputeTotals(lines []Line, catalog product.Catalog, shippingFee decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		p, ok := catalog.Find(line.ProductID)
		if !ok {
			continue
		}
		subtotal = subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Qty))))
	}
	shipping := decimal.Zero
	if len(lines) > 0 {
		shipping = shippingFee
	}
	return Totals{
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Total:       subtotal.Add(shipping),
	}
}

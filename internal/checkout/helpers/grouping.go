package helpers

import (
	"github.com/angelmondragon/novastore/internal/cart"
	"github.com/angelmondragon/novastore/internal/orders"
	product "github.com/angelmondragon/novastore/internal/products"
	"github.com/shopspring/decimal"
)

// SnapshotItems copies each cart line's product into an order item. A line
// whose product is gone becomes an item with no title, zero price and no seller.
func SnapshotItems(lines []cart.Line, catalog product.Catalog) []orders.OrderItem {
	items := make([]orders.OrderItem, 0, len(lines))
	for _, line := range lines {
		item := orders.OrderItem{
			ProductID: line.ProductID,
			Price:     decimal.Zero,
			Qty:       line.Qty,
		}
		if p, ok := catalog.Find(line.ProductID); ok {
			seller := p.SellerID
			item.Title = p.Title
			item.Price = p.Price
			item.SellerID = &seller
		}
		items = append(items, item)
	}
	return items
}

// OrderTotals captures the priced summary of an order.
type OrderTotals struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// ComputeOrderTotals sums items and adds the flat shipping fee.
func ComputeOrderTotals(items []orders.OrderItem, shippingFee decimal.Decimal) OrderTotals {
	subtotal := orders.SumItems(items)
	return OrderTotals{
		Subtotal: subtotal,
		Shipping: shippingFee,
		Total:    subtotal.Add(shippingFee),
	}
}

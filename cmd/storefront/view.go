package main

import (
	"time"

	"github.com/angelmondragon/novastore/internal/orders"
	product "github.com/angelmondragon/novastore/internal/products"
	"github.com/angelmondragon/novastore/pkg/types"
)

type productView struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Price     types.Money `json:"price"`
	SellerID  string      `json:"sellerId"`
	CreatedAt time.Time   `json:"createdAt,omitzero"`
}

type itemView struct {
	ProductID string      `json:"productId"`
	Title     string      `json:"title"`
	Price     types.Money `json:"price"`
	Qty       int         `json:"qty"`
	LineTotal types.Money `json:"lineTotal"`
	SellerID  string      `json:"sellerId"`
}

type subOrderView struct {
	OrderID   string              `json:"orderId"`
	Buyer     orders.DeliveryInfo `json:"buyer"`
	Items     []itemView          `json:"items"`
	Total     types.Money         `json:"total"`
	CreatedAt time.Time           `json:"createdAt"`
}

func renderProducts(list []product.Product, currency string) []productView {
	out := make([]productView, 0, len(list))
	for _, p := range list {
		out = append(out, productView{
			ID:        p.ID,
			Title:     p.Title,
			Price:     types.NewMoney(p.Price, currency),
			SellerID:  p.SellerID,
			CreatedAt: p.CreatedAt,
		})
	}
	return out
}

func renderSubOrders(list []orders.SellerSubOrder, currency string) []subOrderView {
	out := make([]subOrderView, 0, len(list))
	for _, sub := range list {
		items := make([]itemView, 0, len(sub.Items))
		for _, item := range sub.Items {
			items = append(items, itemView{
				ProductID: item.ProductID,
				Title:     item.Title,
				Price:     types.NewMoney(item.Price, currency),
				Qty:       item.Qty,
				LineTotal: types.NewMoney(item.LineTotal(), currency),
				SellerID:  item.Seller(),
			})
		}
		out = append(out, subOrderView{
			OrderID:   sub.OrderID,
			Buyer:     sub.Buyer,
			Items:     items,
			Total:     types.NewMoney(sub.Total, currency),
			CreatedAt: sub.CreatedAt,
		})
	}
	return out
}

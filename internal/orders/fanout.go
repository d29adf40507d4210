package orders

import "github.com/shopspring/decimal"

// SumItems adds up price times quantity over items.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// GroupItemsBySeller partitions items by seller bucket. Sellers are returned
// in order of first appearance so fan-out is deterministic.
func GroupItemsBySeller(items []OrderItem) ([]string, map[string][]OrderItem) {
	grouped := make(map[string][]OrderItem)
	sellers := make([]string, 0)
	for _, item := range items {
		seller := item.Seller()
		if _, ok := grouped[seller]; !ok {
			sellers = append(sellers, seller)
		}
		grouped[seller] = append(grouped[seller], item)
	}
	return sellers, grouped
}

// FanOut derives one sub-order per seller referenced by order.
func FanOut(order Order) ([]string, map[string]SellerSubOrder) {
	sellers, grouped := GroupItemsBySeller(order.Items)
	subs := make(map[string]SellerSubOrder, len(sellers))
	for _, seller := range sellers {
		items := grouped[seller]
		subs[seller] = SellerSubOrder{
			OrderID:   order.ID,
			Items:     items,
			Buyer:     order.Info,
			Total:     SumItems(items),
			CreatedAt: order.CreatedAt,
		}
	}
	return sellers, subs
}

// BuildSellerIndex replays orders in commit order into a fresh index.
func BuildSellerIndex(orders []Order) SellerIndex {
	index := SellerIndex{}
	for _, order := range orders {
		index.Append(order)
	}
	return index
}

// Append adds the fan-out of order to the index.
func (idx SellerIndex) Append(order Order) {
	sellers, subs := FanOut(order)
	for _, seller := range sellers {
		idx[seller] = append(idx[seller], subs[seller])
	}
}

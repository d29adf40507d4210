package orders

import (
	"time"

	"github.com/angelmondragon/novastore/pkg/enums"
	"github.com/shopspring/decimal"
)

// SystemSellerID is the bucket for items whose seller could not be resolved.
const SystemSellerID = "system"

// DeliveryInfo is the buyer's shipping and payment choice captured at checkout.
type DeliveryInfo struct {
	FullName      string              `json:"fullname" validate:"required"`
	Address       string              `json:"address" validate:"required"`
	Phone         string              `json:"phone" validate:"required"`
	PaymentMethod enums.PaymentMethod `json:"payment" validate:"required"`
}

// OrderItem is a copy of the product taken at commit time. SellerID is nil
// when the product no longer existed.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Qty       int             `json:"qty"`
	SellerID  *string         `json:"sellerId"`
}

// LineTotal is price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Qty)))
}

// Seller returns the bucket the item fans out to.
func (i OrderItem) Seller() string {
	if i.SellerID == nil || *i.SellerID == "" {
		return SystemSellerID
	}
	return *i.SellerID
}

// Order is an immutable record of a completed purchase.
type Order struct {
	ID         string            `json:"id"`
	BuyerID    string            `json:"buyerId"`
	BuyerEmail string            `json:"buyerEmail"`
	Items      []OrderItem       `json:"items"`
	Subtotal   decimal.Decimal   `json:"subtotal"`
	Shipping   decimal.Decimal   `json:"shipping"`
	Total      decimal.Decimal   `json:"total"`
	Info       DeliveryInfo      `json:"info"`
	Status     enums.OrderStatus `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// SellerSubOrder is the part of an order that belongs to one seller.
type SellerSubOrder struct {
	OrderID   string          `json:"orderId"`
	Items     []OrderItem     `json:"items"`
	Buyer     DeliveryInfo    `json:"buyer"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// SellerIndex maps seller id to that seller's sub-orders in commit order.
type SellerIndex map[string][]SellerSubOrder

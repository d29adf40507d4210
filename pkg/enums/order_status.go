package enums

// OrderStatus tracks the settlement state of an order.
type OrderStatus string

// OrderStatusPaidSimulated marks an order whose payment was simulated at checkout.
const OrderStatusPaidSimulated OrderStatus = "paid_simulated"

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

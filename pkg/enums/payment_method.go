package enums

import "fmt"

// PaymentMethod describes how a buyer says they will settle an order.
// Checkout stores whatever non-empty label the buyer supplied; the known
// values are offered to presentation layers.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCard,
	PaymentMethodCash,
	PaymentMethodTransfer,
}

// PaymentMethods returns the known payment methods.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(validPaymentMethods))
	copy(out, validPaymentMethods)
	return out
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}

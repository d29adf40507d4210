package types

import "github.com/shopspring/decimal"

// FormatMoney renders an amount with two decimal places. Arithmetic stays at
// full precision; rounding happens only here.
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Money is a presentation-ready amount with its currency.
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: FormatMoney(amount), Currency: currency}
}

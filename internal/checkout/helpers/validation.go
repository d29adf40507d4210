package helpers

import (
	"github.com/angelmondragon/novastore/internal/orders"
	"github.com/angelmondragon/novastore/pkg/enums"
	"github.com/angelmondragon/novastore/pkg/validators"
)

// ValidateDeliveryInfo trims every field and requires all of them.
func ValidateDeliveryInfo(info orders.DeliveryInfo) (orders.DeliveryInfo, error) {
	info.FullName = validators.SanitizeString(info.FullName)
	info.Address = validators.SanitizeString(info.Address)
	info.Phone = validators.SanitizeString(info.Phone)
	info.PaymentMethod = enums.PaymentMethod(validators.SanitizeString(info.PaymentMethod.String()))
	if err := validators.Struct(info); err != nil {
		return orders.DeliveryInfo{}, err
	}
	return info, nil
}

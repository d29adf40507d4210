package enums

import "fmt"

// ProductFilter selects which catalog entries a listing returns.
type ProductFilter string

const (
	ProductFilterAll  ProductFilter = "all"
	ProductFilterMine ProductFilter = "mine"
)

var validProductFilters = []ProductFilter{
	ProductFilterAll,
	ProductFilterMine,
}

// String implements fmt.Stringer.
func (f ProductFilter) String() string {
	return string(f)
}

// IsValid reports whether the value is a known ProductFilter.
func (f ProductFilter) IsValid() bool {
	for _, candidate := range validProductFilters {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseProductFilter converts raw input into a ProductFilter. Empty input means all.
func ParseProductFilter(value string) (ProductFilter, error) {
	if value == "" {
		return ProductFilterAll, nil
	}
	for _, candidate := range validProductFilters {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product filter %q", value)
}

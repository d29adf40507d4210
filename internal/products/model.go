package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemSellerID owns the seeded catalog and receives order items whose
// seller could not be resolved.
const SystemSellerID = "system"

// Product is a catalog listing owned by one seller.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"img,omitempty"`
	Description string          `json:"desc,omitempty"`
	SellerID    string          `json:"sellerId"`
	CreatedAt   time.Time       `json:"createdAt,omitzero"`
}

// Catalog is a point-in-time index of products by id.
type Catalog map[string]Product

// NewCatalog indexes list by product id.
func NewCatalog(list []Product) Catalog {
	c := make(Catalog, len(list))
	for _, p := range list {
		c[p.ID] = p
	}
	return c
}

// Find resolves a product id. A false result means the product was deleted or never existed.
func (c Catalog) Find(id string) (Product, bool) {
	p, ok := c[id]
	return p, ok
}

// CreateProductInput holds the seller-supplied listing fields.
type CreateProductInput struct {
	Title       string          `json:"title" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Image       string          `json:"img"`
	Description string          `json:"desc"`
}

func seedProducts() []Product {
	return []Product{
		{ID: "p1", Title: "Cámara Full HD 1080p", Price: decimal.NewFromInt(1200), Image: "https://picsum.photos/600?1", Description: "1080p, visión nocturna", SellerID: SystemSellerID},
		{ID: "p2", Title: "Sensor Inteligente XT", Price: decimal.NewFromInt(450), Image: "https://picsum.photos/600?2", Description: "Alarma y notificaciones", SellerID: SystemSellerID},
		{ID: "p3", Title: "Router Mesh Ultra", Price: decimal.NewFromInt(900), Image: "https://picsum.photos/600?3", Description: "Cobertura amplia", SellerID: SystemSellerID},
	}
}

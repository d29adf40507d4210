package cart

import (
	"context"
	"fmt"

	product "github.com/angelmondragon/novastore/internal/products"
	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/shopspring/decimal"
)

type catalogReader interface {
	Snapshot(ctx context.Context) (product.Catalog, error)
}

// Service exposes cart mutation and pricing. Every mutation persists immediately.
type Service interface {
	AddItem(ctx context.Context, productID string) ([]Line, error)
	ChangeQuantity(ctx context.Context, productID string, delta int) ([]Line, error)
	Clear(ctx context.Context) error
	Lines(ctx context.Context) ([]Line, error)
	Totals(ctx context.Context) (Totals, error)
	View(ctx context.Context) (*View, error)
}

type service struct {
	repo        CartRepository
	catalog     catalogReader
	shippingFee decimal.Decimal
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, catalog catalogReader, shippingFee decimal.Decimal) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if shippingFee.IsNegative() {
		return nil, fmt.Errorf("shipping fee must be non-negative")
	}
	return &service{repo: repo, catalog: catalog, shippingFee: shippingFee}, nil
}

// AddItem adds one unit of productID, which must exist in the catalog.
func (s *service) AddItem(ctx context.Context, productID string) ([]Line, error) {
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := catalog.Find(productID); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	lines, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Qty++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, Line{ProductID: productID, Qty: 1})
	}

	if err := s.repo.Save(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// ChangeQuantity adds delta to an existing line and removes the line when the
// result drops to zero or below. Unknown lines are left alone.
func (s *service) ChangeQuantity(ctx context.Context, productID string, delta int) ([]Line, error) {
	lines, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range lines {
		if lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 || delta == 0 {
		return lines, nil
	}

	if qty := lines[idx].Qty + delta; qty > 0 {
		lines[idx].Qty = qty
	} else {
		lines = append(lines[:idx], lines[idx+1:]...)
	}

	if err := s.repo.Save(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *service) Clear(ctx context.Context) error {
	return s.repo.Save(ctx, []Line{})
}

func (s *service) Lines(ctx context.Context) ([]Line, error) {
	return s.repo.Load(ctx)
}

func (s *service) Totals(ctx context.Context) (Totals, error) {
	lines, err := s.repo.Load(ctx)
	if err != nil {
		return Totals{}, err
	}
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return Totals{}, err
	}
	return ComputeTotals(lines, catalog, s.shippingFee), nil
}

func (s *service) View(ctx context.Context) (*View, error) {
	lines, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	view := &View{
		Lines:  make([]ViewLine, 0, len(lines)),
		Totals: ComputeTotals(lines, catalog, s.shippingFee),
	}
	for _, line := range lines {
		p, ok := catalog.Find(line.ProductID)
		if !ok {
			view.Orphaned++
			continue
		}
		view.Lines = append(view.Lines, ViewLine{
			Product:   p,
			Qty:       line.Qty,
			LineTotal: p.Price.Mul(decimal.NewFromInt(int64(line.Qty))),
		})
	}
	return view, nil
}

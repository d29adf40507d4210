package product

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/novastore/pkg/auth/session"
	"github.com/angelmondragon/novastore/pkg/enums"
	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/angelmondragon/novastore/pkg/logger"
	"github.com/angelmondragon/novastore/pkg/validators"
	"github.com/google/uuid"
)

// Service exposes catalog management and lookup.
type Service interface {
	AddProduct(ctx context.Context, seller *session.Principal, input CreateProductInput) (*Product, error)
	RemoveProduct(ctx context.Context, seller *session.Principal, productID string) error
	List(ctx context.Context, filter enums.ProductFilter, principal *session.Principal) ([]Product, error)
	Get(ctx context.Context, productID string) (*Product, error)
	Snapshot(ctx context.Context) (Catalog, error)
	EnsureSeeded(ctx context.Context) (bool, error)
}

type service struct {
	repo ProductRepository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds a catalog service over the provided repository.
func NewService(repo ProductRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) AddProduct(ctx context.Context, seller *session.Principal, input CreateProductInput) (*Product, error) {
	if err := requireSeller(seller); err != nil {
		return nil, err
	}
	input.Title = validators.SanitizeString(input.Title)
	input.Image = validators.SanitizeString(input.Image)
	input.Description = validators.SanitizeString(input.Description)
	if err := validators.Struct(input); err != nil {
		return nil, err
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate product id")
	}
	p := Product{
		ID:          id.String(),
		Title:       input.Title,
		Price:       input.Price,
		Image:       input.Image,
		Description: input.Description,
		SellerID:    seller.UserID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Replace(ctx, append(list, p)); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithField(s.logg.WithSellerID(ctx, p.SellerID), "product_id", p.ID), "product added")
	return &p, nil
}

// RemoveProduct deletes a listing owned by seller. Orders keep their own
// snapshot of the product and are not touched.
func (s *service) RemoveProduct(ctx context.Context, seller *session.Principal, productID string) error {
	if seller == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	list, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range list {
		if list[i].ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if list[idx].SellerID != seller.UserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another seller")
	}

	next := make([]Product, 0, len(list)-1)
	next = append(next, list[:idx]...)
	next = append(next, list[idx+1:]...)
	if err := s.repo.Replace(ctx, next); err != nil {
		return err
	}

	s.logg.Info(s.logg.WithField(s.logg.WithSellerID(ctx, seller.UserID), "product_id", productID), "product removed")
	return nil
}

// List returns products newest first. The mine filter requires a seller session.
func (s *service) List(ctx context.Context, filter enums.ProductFilter, principal *session.Principal) ([]Product, error) {
	if filter == "" {
		filter = enums.ProductFilterAll
	}
	if !filter.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product filter").WithDetails(map[string]string{"filter": filter.String()})
	}
	if filter == enums.ProductFilterMine {
		if err := requireSeller(principal); err != nil {
			return nil, err
		}
	}

	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		if filter == enums.ProductFilterMine && list[i].SellerID != principal.UserID {
			continue
		}
		out = append(out, list[i])
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, productID string) (*Product, error) {
	catalog, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	p, ok := catalog.Find(productID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

// Snapshot loads the catalog once for callers that resolve many ids.
func (s *service) Snapshot(ctx context.Context) (Catalog, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(list), nil
}

// EnsureSeeded stores the starter catalog when the collection is empty.
func (s *service) EnsureSeeded(ctx context.Context) (bool, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return false, err
	}
	if len(list) > 0 {
		return false, nil
	}
	seeds := seedProducts()
	now := s.now().UTC()
	for i := range seeds {
		seeds[i].CreatedAt = now
	}
	if err := s.repo.Replace(ctx, seeds); err != nil {
		return false, err
	}
	s.logg.Info(s.logg.WithField(ctx, "count", len(seeds)), "catalog seeded")
	return true, nil
}

func requireSeller(p *session.Principal) error {
	if p == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	if !p.IsSeller() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "seller role required")
	}
	return nil
}

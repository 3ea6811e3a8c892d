package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/media"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

type ProductService struct {
	Store store.Store
	Media media.Storage
}

// ProductInput carries a create or update request. Nil fields are left
// unchanged on update; Images replace the existing ones only when non-empty.
type ProductInput struct {
	Name         *string
	Description  *string
	Price        *float64
	Quantity     *int
	CategoryID   *string
	CategoryName *string
	Features     *[]string
	Images       []media.Upload
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.Store.Products().ListProducts(ctx)
}

// ListByCategory returns the products filed under categoryID. An unknown or
// malformed id yields an empty list.
func (s *ProductService) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	if !idx.Valid(categoryID) {
		return []domain.Product{}, nil
	}
	return s.Store.Products().ListProductsByCategory(ctx, categoryID)
}

func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	if !idx.Valid(id) {
		return domain.Product{}, ErrProductNotFound
	}
	p, err := s.Store.Products().GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (domain.Product, error) {
	if in.Name == nil {
		return domain.Product{}, invalid("name", "is required")
	}
	if in.Description == nil {
		return domain.Product{}, invalid("description", "is required")
	}
	if in.Price == nil {
		return domain.Product{}, invalid("price", "is required")
	}
	if in.Quantity == nil {
		return domain.Product{}, invalid("quantity", "is required")
	}
	if in.CategoryID == nil {
		return domain.Product{}, invalid("category", "is required")
	}

	now := time.Now().UTC()
	p := domain.Product{
		ID:        idx.NewAt(now).String(),
		ImageURLs: []string{},
		Features:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.apply(ctx, &p, in); err != nil {
		return domain.Product{}, err
	}

	urls, err := s.storeImages(ctx, in.Images)
	if err != nil {
		return domain.Product{}, err
	}
	if urls != nil {
		p.ImageURLs = urls
	}

	if err := s.Store.Products().CreateProduct(ctx, p); err != nil {
		media.DeleteAll(ctx, s.Media, urls)
		return domain.Product{}, err
	}

	slogx.FromContext(ctx).Info("product created", "product_id", p.ID, "category_id", p.CategoryID)
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (domain.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if err := s.apply(ctx, &p, in); err != nil {
		return domain.Product{}, err
	}

	urls, err := s.storeImages(ctx, in.Images)
	if err != nil {
		return domain.Product{}, err
	}
	oldImages := p.ImageURLs
	if urls != nil {
		p.ImageURLs = urls
	}

	if err := s.Store.Products().UpdateProduct(ctx, p); err != nil {
		media.DeleteAll(ctx, s.Media, urls)
		if errors.Is(err, store.ErrNotFound) {
			return domain.Product{}, ErrProductNotFound
		}
		return domain.Product{}, err
	}
	if urls != nil {
		media.DeleteAll(ctx, s.Media, oldImages)
	}

	return s.Get(ctx, id)
}

// Delete removes the product and its images.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.Products().DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	media.DeleteAll(ctx, s.Media, p.ImageURLs)

	slogx.FromContext(ctx).Info("product deleted", "product_id", id)
	return nil
}

// apply validates the set fields of in and copies them onto p. When the
// category changes without an explicit name, the name is taken from the
// category if it exists.
func (s *ProductService) apply(ctx context.Context, p *domain.Product, in ProductInput) error {
	if len(in.Images) > domain.MaxProductImages {
		return ErrTooManyImages
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return invalid("name", "is required")
		}
		p.Name = name
	}
	if in.Description != nil {
		if *in.Description == "" {
			return invalid("description", "is required")
		}
		p.Description = *in.Description
	}
	if in.Price != nil {
		price := *in.Price
		if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
			return invalid("price", "must be a number >= 0")
		}
		p.Price = price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return invalid("quantity", "must be >= 0")
		}
		p.Quantity = *in.Quantity
	}
	if in.Features != nil {
		features := make([]string, 0, len(*in.Features))
		features = append(features, *in.Features...)
		p.Features = features
	}

	if in.CategoryName != nil {
		p.CategoryName = strings.TrimSpace(*in.CategoryName)
	}
	if in.CategoryID != nil {
		if !idx.Valid(*in.CategoryID) {
			return invalid("category", "is not a valid id")
		}
		p.CategoryID = *in.CategoryID
		if in.CategoryName == nil || p.CategoryName == "" {
			c, err := s.Store.Categories().GetCategoryByID(ctx, p.CategoryID)
			switch {
			case err == nil:
				p.CategoryName = c.Name
			case !errors.Is(err, store.ErrNotFound):
				return err
			}
		}
	}
	if p.CategoryName == "" {
		return invalid("categoryName", "is required")
	}
	return nil
}

// storeImages returns nil when there is nothing to store.
func (s *ProductService) storeImages(ctx context.Context, uploads []media.Upload) ([]string, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	urls, err := media.PutAll(ctx, s.Media, uploads)
	if err != nil {
		return nil, fmt.Errorf("store product images: %w", err)
	}
	return urls, nil
}

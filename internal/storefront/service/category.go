package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/media"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

type CategoryService struct {
	Store store.Store
	Media media.Storage
}

// CategoryInput carries a create or update request. Nil fields are left
// unchanged on update.
type CategoryInput struct {
	Name        *string
	Description *string
	Icon        *string
	Emoji       *string
	Image       *media.Upload
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.Store.Categories().ListCategories(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (domain.Category, error) {
	if !idx.Valid(id) {
		return domain.Category{}, ErrCategoryNotFound
	}
	c, err := s.Store.Categories().GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Category{}, ErrCategoryNotFound
		}
		return domain.Category{}, err
	}
	return c, nil
}

// Create adds a category. The name is trimmed and must be unique; the slug
// is derived from it. The uniqueness check and the insert share a
// transaction.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (domain.Category, error) {
	name := trimmed(in.Name)
	if name == "" {
		return domain.Category{}, ErrCategoryNameRequired
	}

	now := time.Now().UTC()
	c := domain.Category{
		ID:          idx.NewAt(now).String(),
		Name:        name,
		Description: trimmed(in.Description),
		Icon:        trimmed(in.Icon),
		Emoji:       trimmed(in.Emoji),
		Slug:        domain.Slugify(name),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if in.Image != nil {
		url, err := s.Media.Put(ctx, *in.Image)
		if err != nil {
			return domain.Category{}, fmt.Errorf("store category image: %w", err)
		}
		c.Image = url
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := ensureNameFree(ctx, tx.Categories(), name); err != nil {
			return err
		}
		return tx.Categories().CreateCategory(ctx, c)
	})
	if err != nil {
		media.DeleteAll(ctx, s.Media, []string{c.Image})
		if errors.Is(err, ErrCategoryExists) || errors.Is(err, store.ErrAlreadyExists) {
			return domain.Category{}, ErrCategoryExists
		}
		return domain.Category{}, err
	}

	slogx.FromContext(ctx).Info("category created", "category_id", c.ID)
	return c, nil
}

// ensureNameFree reports ErrCategoryExists when name is already taken.
func ensureNameFree(ctx context.Context, cats store.Categories, name string) error {
	_, err := cats.GetCategoryByName(ctx, name)
	switch {
	case err == nil:
		return ErrCategoryExists
	case errors.Is(err, store.ErrNotFound):
		return nil
	}
	return err
}

// Update applies the non-nil fields of in. The image is replaced only when
// a new one is uploaded, and the old file is removed afterwards. A rename is
// checked for collisions in the same transaction as the write.
func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (domain.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return domain.Category{}, err
	}

	renamed := false
	if in.Name != nil {
		name := trimmed(in.Name)
		if name == "" {
			return domain.Category{}, ErrCategoryNameRequired
		}
		if name != c.Name {
			c.Name = name
			c.Slug = domain.Slugify(name)
			renamed = true
		}
	}
	if in.Description != nil {
		c.Description = trimmed(in.Description)
	}
	if in.Icon != nil {
		c.Icon = trimmed(in.Icon)
	}
	if in.Emoji != nil {
		c.Emoji = trimmed(in.Emoji)
	}

	oldImage := c.Image
	if in.Image != nil {
		url, err := s.Media.Put(ctx, *in.Image)
		if err != nil {
			return domain.Category{}, fmt.Errorf("store category image: %w", err)
		}
		c.Image = url
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if renamed {
			if err := ensureNameFree(ctx, tx.Categories(), c.Name); err != nil {
				return err
			}
		}
		return tx.Categories().UpdateCategory(ctx, c)
	})
	if err != nil {
		if c.Image != oldImage {
			media.DeleteAll(ctx, s.Media, []string{c.Image})
		}
		switch {
		case errors.Is(err, ErrCategoryExists), errors.Is(err, store.ErrAlreadyExists):
			return domain.Category{}, ErrCategoryExists
		case errors.Is(err, store.ErrNotFound):
			return domain.Category{}, ErrCategoryNotFound
		}
		return domain.Category{}, err
	}

	if c.Image != oldImage {
		media.DeleteAll(ctx, s.Media, []string{oldImage})
	}
	return s.Get(ctx, id)
}

// Delete removes the category and its image. Products that reference it are
// left alone.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.Categories().DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	media.DeleteAll(ctx, s.Media, []string{c.Image})

	slogx.FromContext(ctx).Info("category deleted", "category_id", id)
	return nil
}

// AdjustProductCount adds increment (which may be negative) to the
// category's product count and returns the updated category.
func (s *CategoryService) AdjustProductCount(ctx context.Context, id string, increment int) (domain.Category, error) {
	if !idx.Valid(id) {
		return domain.Category{}, ErrCategoryNotFound
	}
	if err := s.Store.Categories().AddProductCount(ctx, id, increment); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Category{}, ErrCategoryNotFound
		}
		return domain.Category{}, err
	}
	return s.Get(ctx, id)
}

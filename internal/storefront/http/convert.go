package http

import (
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
)

func toProfile(u domain.User) shopsdk.UserProfile {
	return shopsdk.UserProfile{ID: u.ID, Email: u.Email, Mobile: u.MobileOrEmpty()}
}

func toCategory(c domain.Category) shopsdk.Category {
	return shopsdk.Category{
		ID:           c.ID,
		CategoryName: c.Name,
		Description:  c.Description,
		Image:        c.Image,
		Icon:         c.Icon,
		Emoji:        c.Emoji,
		Slug:         c.Slug,
		ProductCount: c.ProductCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toCategories(cs []domain.Category) []shopsdk.Category {
	out := make([]shopsdk.Category, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCategory(c))
	}
	return out
}

func toProduct(p domain.Product) shopsdk.Product {
	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return shopsdk.Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Quantity:     p.Quantity,
		Category:     p.CategoryID,
		CategoryName: p.CategoryName,
		ImageURLs:    images,
		Features:     features,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toProducts(ps []domain.Product) []shopsdk.Product {
	out := make([]shopsdk.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

package sqlstore

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

const productColumns = `id, name, description, price, quantity, category_id, category_name, image_urls, features, created_at, updated_at`

type productsRepo struct {
	db DBTX
	d  Dialect
}

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var (
		p         domain.Product
		imageURLs string
		features  string
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Quantity,
		&p.CategoryID,
		&p.CategoryName,
		&imageURLs,
		&features,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}

	if p.ImageURLs, err = decodeList(imageURLs); err != nil {
		return domain.Product{}, fmt.Errorf("decode image_urls of %s: %w", p.ID, err)
	}
	if p.Features, err = decodeList(features); err != nil {
		return domain.Product{}, fmt.Errorf("decode features of %s: %w", p.ID, err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *productsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, r.d.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *productsRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
}

func (r *productsRepo) ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return r.list(ctx,
		`SELECT `+productColumns+` FROM products WHERE category_id = ? ORDER BY created_at, id`,
		categoryID)
}

func (r *productsRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	row := r.db.QueryRowContext(ctx,
		r.d.rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	imageURLs, features, err := encodeProductLists(p)
	if err != nil {
		return err
	}

	ts := now()
	_, err = r.db.ExecContext(ctx, r.d.rebind(`
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.Quantity,
		p.CategoryID,
		p.CategoryName,
		imageURLs,
		features,
		ts,
		ts,
	)
	return r.d.mapWriteErr(err)
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	imageURLs, features, err := encodeProductLists(p)
	if err != nil {
		return err
	}

	return requireRow(r.db.ExecContext(ctx, r.d.rebind(`
		UPDATE products
		SET name = ?, description = ?, price = ?, quantity = ?, category_id = ?, category_name = ?,
		    image_urls = ?, features = ?, updated_at = ?
		WHERE id = ?`),
		p.Name,
		p.Description,
		p.Price,
		p.Quantity,
		p.CategoryID,
		p.CategoryName,
		imageURLs,
		features,
		now(),
		p.ID,
	))
}

func (r *productsRepo) DeleteProduct(ctx context.Context, id string) error {
	return requireRow(r.db.ExecContext(ctx,
		r.d.rebind(`DELETE FROM products WHERE id = ?`), id))
}

func encodeProductLists(p domain.Product) (string, string, error) {
	imageURLs, err := encodeList(p.ImageURLs)
	if err != nil {
		return "", "", fmt.Errorf("encode image_urls: %w", err)
	}
	features, err := encodeList(p.Features)
	if err != nil {
		return "", "", fmt.Errorf("encode features: %w", err)
	}
	return imageURLs, features, nil
}

package sqlstore

import (
	"context"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

const categoryColumns = `id, name, description, image, icon, emoji, slug, product_count, created_at, updated_at`

type categoriesRepo struct {
	db DBTX
	d  Dialect
}

func scanCategory(row interface{ Scan(...any) error }) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Image,
		&c.Icon,
		&c.Emoji,
		&c.Slug,
		&c.ProductCount,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Category{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

func (r *categoriesRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	// id is a ULID, so it breaks ties between rows created in the same instant.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoriesRepo) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	row := r.db.QueryRowContext(ctx,
		r.d.rebind(`SELECT `+categoryColumns+` FROM categories WHERE id = ?`), id)
	c, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) GetCategoryByName(ctx context.Context, name string) (domain.Category, error) {
	row := r.db.QueryRowContext(ctx,
		r.d.rebind(`SELECT `+categoryColumns+` FROM categories WHERE name = ?`), name)
	c, err := scanCategory(row)
	if err != nil {
		return domain.Category{}, mapNotFound(err)
	}
	return c, nil
}

func (r *categoriesRepo) CreateCategory(ctx context.Context, c domain.Category) error {
	ts := now()
	_, err := r.db.ExecContext(ctx, r.d.rebind(`
		INSERT INTO categories (`+categoryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		c.ID,
		c.Name,
		c.Description,
		c.Image,
		c.Icon,
		c.Emoji,
		c.Slug,
		c.ProductCount,
		ts,
		ts,
	)
	return r.d.mapWriteErr(err)
}

func (r *categoriesRepo) UpdateCategory(ctx context.Context, c domain.Category) error {
	res, err := r.db.ExecContext(ctx, r.d.rebind(`
		UPDATE categories
		SET name = ?, description = ?, image = ?, icon = ?, emoji = ?, slug = ?, product_count = ?, updated_at = ?
		WHERE id = ?`),
		c.Name,
		c.Description,
		c.Image,
		c.Icon,
		c.Emoji,
		c.Slug,
		c.ProductCount,
		now(),
		c.ID,
	)
	if err != nil {
		return r.d.mapWriteErr(err)
	}
	return requireRow(res, nil)
}

func (r *categoriesRepo) DeleteCategory(ctx context.Context, id string) error {
	return requireRow(r.db.ExecContext(ctx,
		r.d.rebind(`DELETE FROM categories WHERE id = ?`), id))
}

func (r *categoriesRepo) AddProductCount(ctx context.Context, id string, delta int) error {
	return requireRow(r.db.ExecContext(ctx, r.d.rebind(`
		UPDATE categories
		SET product_count = product_count + ?, updated_at = ?
		WHERE id = ?`),
		delta, now(), id))
}

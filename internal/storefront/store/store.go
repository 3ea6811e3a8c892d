package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a Tx can't open another transaction by accident.
type Store interface {
	Users() Users
	Categories() Categories
	Products() Products

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the email exactly, no case folding.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new record. Returns ErrAlreadyExists when the
	// email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// SaveUser overwrites the mutable fields (otp, otp expiry, verified flag,
	// password hash, mobile) and bumps updated_at. Last write wins.
	SaveUser(ctx context.Context, u domain.User) error

	// ClearExpiredOTPs nulls every code whose expiry is at or before now and
	// returns how many records changed.
	ClearExpiredOTPs(ctx context.Context, now time.Time) (int64, error)
}

type Categories interface {
	// ListCategories returns all categories, newest first.
	ListCategories(ctx context.Context) ([]domain.Category, error)

	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)
	GetCategoryByName(ctx context.Context, name string) (domain.Category, error)

	// CreateCategory returns ErrAlreadyExists on a duplicate name.
	CreateCategory(ctx context.Context, c domain.Category) error

	// UpdateCategory overwrites every editable column of c.ID.
	UpdateCategory(ctx context.Context, c domain.Category) error

	DeleteCategory(ctx context.Context, id string) error

	// AddProductCount adds delta to product_count atomically.
	AddProductCount(ctx context.Context, id string, delta int) error
}

type Products interface {
	// ListProducts returns all products in creation order.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// ListProductsByCategory returns the products referencing categoryID.
	ListProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)

	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

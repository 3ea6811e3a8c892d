// Package storetest is a conformance suite run against every store driver.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty, migrated store. Run calls it once per group.
type Factory func(t *testing.T) store.Store

// Run exercises the store contract against newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("ClearExpiredOTPs", func(t *testing.T) { testClearExpiredOTPs(t, newStore(t)) })
	t.Run("Categories", func(t *testing.T) { testCategories(t, newStore(t)) })
	t.Run("Products", func(t *testing.T) { testProducts(t, newStore(t)) })
	t.Run("WithTx", func(t *testing.T) { testWithTx(t, newStore(t)) })
}

func ptr[T any](v T) *T { return &v }

func testUsers(t *testing.T, st store.Store) {
	ctx := context.Background()
	users := st.Users()

	u := domain.User{ID: idx.New().String(), Email: "a@x.com", OTP: ptr("123456")}
	require.NoError(t, users.CreateUser(ctx, u))

	t.Run("duplicate email", func(t *testing.T) {
		dup := domain.User{ID: idx.New().String(), Email: "a@x.com"}
		require.ErrorIs(t, users.CreateUser(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("email match is exact", func(t *testing.T) {
		_, err := users.GetUserByEmail(ctx, "A@X.COM")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		got, err := users.GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, "123456", *got.OTP)
		require.Nil(t, got.OTPExpiresAt)
		require.False(t, got.IsVerified)
		require.Nil(t, got.PasswordHash)
		require.False(t, got.CreatedAt.IsZero())
	})

	t.Run("save overwrites mutable fields", func(t *testing.T) {
		got, err := users.GetUserByID(ctx, u.ID)
		require.NoError(t, err)

		got.OTP = nil
		got.IsVerified = true
		got.PasswordHash = ptr("$2a$10$hash")
		got.Mobile = ptr("0400000000")
		require.NoError(t, users.SaveUser(ctx, got))

		again, err := users.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Nil(t, again.OTP)
		require.True(t, again.IsVerified)
		require.Equal(t, "$2a$10$hash", *again.PasswordHash)
		require.Equal(t, "0400000000", *again.Mobile)
	})

	t.Run("save unknown user", func(t *testing.T) {
		err := users.SaveUser(ctx, domain.User{ID: idx.New().String(), Email: "ghost@x.com"})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("get unknown user", func(t *testing.T) {
		_, err := users.GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func testClearExpiredOTPs(t *testing.T, st store.Store) {
	ctx := context.Background()
	users := st.Users()
	now := time.Now().UTC()

	expired := domain.User{ID: idx.New().String(), Email: "old@x.com", OTP: ptr("111111"), OTPExpiresAt: ptr(now.Add(-time.Minute))}
	fresh := domain.User{ID: idx.New().String(), Email: "new@x.com", OTP: ptr("222222"), OTPExpiresAt: ptr(now.Add(time.Minute))}
	forever := domain.User{ID: idx.New().String(), Email: "forever@x.com", OTP: ptr("333333")}
	for _, u := range []domain.User{expired, fresh, forever} {
		require.NoError(t, users.CreateUser(ctx, u))
	}

	n, err := users.ClearExpiredOTPs(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	got, err := users.GetUserByID(ctx, expired.ID)
	require.NoError(t, err)
	require.Nil(t, got.OTP)
	require.Nil(t, got.OTPExpiresAt)

	got, err = users.GetUserByID(ctx, fresh.ID)
	require.NoError(t, err)
	require.Equal(t, "222222", *got.OTP)
	require.WithinDuration(t, now.Add(time.Minute), *got.OTPExpiresAt, time.Millisecond)

	got, err = users.GetUserByID(ctx, forever.ID)
	require.NoError(t, err)
	require.Equal(t, "333333", *got.OTP)
}

func testCategories(t *testing.T, st store.Store) {
	ctx := context.Background()
	cats := st.Categories()

	first := domain.Category{ID: idx.New().String(), Name: "Books", Slug: "books"}
	require.NoError(t, cats.CreateCategory(ctx, first))
	time.Sleep(2 * time.Millisecond)
	second := domain.Category{ID: idx.New().String(), Name: "Home & Garden", Slug: "home-garden", Emoji: "🌱"}
	require.NoError(t, cats.CreateCategory(ctx, second))

	t.Run("duplicate name", func(t *testing.T) {
		err := cats.CreateCategory(ctx, domain.Category{ID: idx.New().String(), Name: "Books"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("list newest first", func(t *testing.T) {
		list, err := cats.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, second.ID, list[0].ID)
		require.Equal(t, first.ID, list[1].ID)
		require.Equal(t, "🌱", list[0].Emoji)
	})

	t.Run("get by name", func(t *testing.T) {
		got, err := cats.GetCategoryByName(ctx, "Home & Garden")
		require.NoError(t, err)
		require.Equal(t, second.ID, got.ID)
	})

	t.Run("rename into existing name", func(t *testing.T) {
		c := second
		c.Name = "Books"
		require.ErrorIs(t, cats.UpdateCategory(ctx, c), store.ErrAlreadyExists)
	})

	t.Run("product count", func(t *testing.T) {
		require.NoError(t, cats.AddProductCount(ctx, first.ID, 3))
		require.NoError(t, cats.AddProductCount(ctx, first.ID, -1))

		got, err := cats.GetCategoryByID(ctx, first.ID)
		require.NoError(t, err)
		require.Equal(t, 2, got.ProductCount)

		require.ErrorIs(t, cats.AddProductCount(ctx, idx.New().String(), 1), store.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, cats.DeleteCategory(ctx, first.ID))
		require.ErrorIs(t, cats.DeleteCategory(ctx, first.ID), store.ErrNotFound)

		_, err := cats.GetCategoryByID(ctx, first.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func testProducts(t *testing.T, st store.Store) {
	ctx := context.Background()
	products := st.Products()

	catA, catB := idx.New().String(), idx.New().String()

	p1 := domain.Product{
		ID: idx.New().String(), Name: "Lamp", Description: "Bright", Price: 19.95, Quantity: 3,
		CategoryID: catA, CategoryName: "Home",
		ImageURLs: []string{"/uploads/a.png", "/uploads/b.png"},
		Features:  []string{"LED", "Dimmable"},
	}
	p2 := domain.Product{
		ID: idx.New().String(), Name: "Novel", Description: "Long", Price: 0, Quantity: 0,
		CategoryID: catB, CategoryName: "Books",
	}
	require.NoError(t, products.CreateProduct(ctx, p1))
	require.NoError(t, products.CreateProduct(ctx, p2))

	t.Run("lists round trip", func(t *testing.T) {
		got, err := products.GetProductByID(ctx, p1.ID)
		require.NoError(t, err)
		require.Equal(t, p1.ImageURLs, got.ImageURLs)
		require.Equal(t, p1.Features, got.Features)
		require.InDelta(t, 19.95, got.Price, 1e-9)

		got, err = products.GetProductByID(ctx, p2.ID)
		require.NoError(t, err)
		require.Empty(t, got.ImageURLs)
		require.NotNil(t, got.Features)
	})

	t.Run("list and filter", func(t *testing.T) {
		all, err := products.ListProducts(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)

		byCat, err := products.ListProductsByCategory(ctx, catA)
		require.NoError(t, err)
		require.Len(t, byCat, 1)
		require.Equal(t, p1.ID, byCat[0].ID)

		none, err := products.ListProductsByCategory(ctx, idx.New().String())
		require.NoError(t, err)
		require.Empty(t, none)
	})

	t.Run("update", func(t *testing.T) {
		p := p1
		p.Quantity = 10
		p.Features = []string{"LED"}
		require.NoError(t, products.UpdateProduct(ctx, p))

		got, err := products.GetProductByID(ctx, p1.ID)
		require.NoError(t, err)
		require.Equal(t, 10, got.Quantity)
		require.Equal(t, []string{"LED"}, got.Features)
	})

	t.Run("negative price rejected by schema", func(t *testing.T) {
		bad := p2
		bad.ID = idx.New().String()
		bad.Price = -1
		require.Error(t, products.CreateProduct(ctx, bad))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, products.DeleteProduct(ctx, p2.ID))
		require.ErrorIs(t, products.DeleteProduct(ctx, p2.ID), store.ErrNotFound)
	})
}

func testWithTx(t *testing.T, st store.Store) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		id := idx.New().String()
		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().CreateUser(ctx, domain.User{ID: id, Email: "tx@x.com"})
		})
		require.NoError(t, err)

		_, err = st.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		id := idx.New().String()
		err := st.WithTx(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Users().CreateUser(ctx, domain.User{ID: id, Email: "rollback@x.com"}))
			return store.ErrAlreadyExists
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		_, err = st.Users().GetUserByID(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("no nested transactions", func(t *testing.T) {
		err := st.WithTx(ctx, func(tx store.Tx) error {
			_, err := tx.Tx(ctx)
			return err
		})
		require.Error(t, err)
	})
}

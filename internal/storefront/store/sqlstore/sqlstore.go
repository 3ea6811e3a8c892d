// Package sqlstore implements the store repositories over database/sql. The
// sqlite and postgres drivers share it and differ only in connection setup,
// migrations and the Dialect they pass in.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect captures the few places the SQL backends disagree.
type Dialect struct {
	Name string

	// Dollar placeholders ($1, $2, ...) instead of "?".
	Dollar bool

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation func(err error) bool
}

// rebind rewrites "?" placeholders for dollar-style dialects. Queries in
// this package never contain a literal "?".
func (d Dialect) rebind(q string) string {
	if !d.Dollar {
		return q
	}

	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

// mapWriteErr turns unique violations into store.ErrAlreadyExists.
func (d Dialect) mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if d.IsUniqueViolation != nil && d.IsUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// DB is the non-transactional half of a driver. Drivers embed it and add
// ApplyMigrations.
type DB struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, d Dialect) *DB {
	return &DB{db: db, dialect: d}
}

// SQL exposes the pool to drivers for migrations.
func (s *DB) SQL() *sql.DB { return s.db }

func (s *DB) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *DB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *DB) Users() store.Users { return &usersRepo{db: s.db, d: s.dialect} }
func (s *DB) Categories() store.Categories {
	return &categoriesRepo{db: s.db, d: s.dialect}
}
func (s *DB) Products() store.Products { return &productsRepo{db: s.db, d: s.dialect} }

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *DB) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, d: s.dialect}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *DB) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// requireRow maps a zero-row write to store.ErrNotFound.
func requireRow(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time.UTC()
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// encodeList stores string slices as JSON text so both backends can use a
// plain TEXT column.
func encodeList(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	if s == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// now is the timestamp written to created_at/updated_at. Truncated so
// values round-trip identically through both backends.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

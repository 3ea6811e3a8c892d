// Package idx generates and validates the ULID identifiers used for users,
// categories, products and request ids.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

// Zero is the empty ID. Stores never hand it out.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

var (
	once sync.Once
	src  *source
)

// source serialises access to the monotonic entropy reader, which is not
// safe for concurrent use on its own.
type source struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func (s *source) at(t time.Time) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t), s.entropy).String())
}

func get() *source {
	once.Do(func() {
		src = &source{entropy: ulid.Monotonic(rand.Reader, 0)}
	})
	return src
}

// New returns a lexicographically sortable ID stamped with the current UTC
// time. IDs created within the same millisecond still sort in creation order.
func New() ID {
	return get().at(time.Now().UTC())
}

// NewAt returns an ID stamped with t, so a record's ID and its created_at
// agree.
func NewAt(t time.Time) ID {
	return get().at(t.UTC())
}

// Parse validates s as a canonical ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}

	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}

	return ID(s), nil
}

// Valid reports whether s parses as an ID.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func (id ID) String() string { return string(id) }

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

// outbox captures delivered codes instead of sending them.
type outbox struct {
	mu    sync.Mutex
	codes map[string][]string
	err   error
}

func (o *outbox) SendOTP(_ context.Context, email, code string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	if o.codes == nil {
		o.codes = map[string][]string{}
	}
	o.codes[email] = append(o.codes[email], code)
	return nil
}

func (o *outbox) last(t *testing.T, email string) string {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	codes := o.codes[email]
	require.NotEmpty(t, codes, "no code delivered to %s", email)
	return codes[len(codes)-1]
}

// clock is a settable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type authFixture struct {
	svc   *AuthService
	store store.Store
	box   *outbox
	clock *clock
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	st := newTestStore(t)

	hasher, err := cryptox.NewHasher(4)
	require.NoError(t, err)

	tokens, err := NewTokenService([]byte(testSecret), "storefront-test", 0)
	require.NoError(t, err)

	box := &outbox{}
	clk := &clock{now: time.Now().UTC().Truncate(time.Second)}

	return &authFixture{
		svc: &AuthService{
			Store:    st,
			Notifier: box,
			Tokens:   tokens,
			Hasher:   hasher,
			Now:      clk.Now,
		},
		store: st,
		box:   box,
		clock: clk,
	}
}

// verified walks email through send-otp and verify-otp.
func (f *authFixture) verified(t *testing.T, email string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.SendOTP(ctx, email)
	require.NoError(t, err)
	require.NoError(t, f.svc.VerifyOTP(ctx, email, f.box.last(t, email)))
}

func ptr[T any](v T) *T { return &v }

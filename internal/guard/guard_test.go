package guard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/ratelimit"
	"github.com/go-petr/edupay/pkg/passpkg"
)

type brokenLimiter struct{}

func (brokenLimiter) Blocked(context.Context, string) (bool, error) {
	return false, errors.New("connection refused")
}

func (brokenLimiter) Fail(context.Context, string) error {
	return errors.New("connection refused")
}

func TestGuardVerify(t *testing.T) {
	ctx := context.Background()
	hasher := passpkg.NewBcrypt(bcrypt.MinCost)

	hashed, err := hasher.Hash("1234")
	require.NoError(t, err)

	g := New(hasher, ratelimit.NewWindow(5, 300*time.Second))
	key := Key(ScopePasscode, "student1", "10.0.0.1")

	require.NoError(t, g.Verify(ctx, key, "1234", hashed, domain.ErrWrongPasscode))

	for i := 0; i < 5; i++ {
		err = g.Verify(ctx, key, "0000", hashed, domain.ErrWrongPasscode)
		require.ErrorIs(t, err, domain.ErrWrongPasscode)
	}

	// Blocked even with the right passcode.
	err = g.Verify(ctx, key, "1234", hashed, domain.ErrWrongPasscode)
	require.ErrorIs(t, err, domain.ErrRateLimited)
	require.ErrorIs(t, g.Allow(ctx, key), domain.ErrRateLimited)

	// The login scope is not affected.
	loginKey := Key(ScopeLogin, "student1", "10.0.0.1")
	require.NoError(t, g.Allow(ctx, loginKey))
}

func TestGuardEmptyHashNeverMatches(t *testing.T) {
	g := New(passpkg.NewBcrypt(bcrypt.MinCost), ratelimit.NewWindow(5, time.Minute))

	err := g.Verify(context.Background(), Key(ScopePasscode, "parent1", "ip"), "", "", domain.ErrWrongPasscode)
	require.ErrorIs(t, err, domain.ErrWrongPasscode)
}

func TestGuardLimiterDown(t *testing.T) {
	ctx := context.Background()
	hasher := passpkg.NewBcrypt(bcrypt.MinCost)

	hashed, err := hasher.Hash("secret1")
	require.NoError(t, err)

	g := New(hasher, brokenLimiter{})
	key := Key(ScopeLogin, "admin", "ip")

	require.NoError(t, g.Verify(ctx, key, "secret1", hashed, domain.ErrWrongPassword))
	require.ErrorIs(t, g.Verify(ctx, key, "nope", hashed, domain.ErrWrongPassword), domain.ErrWrongPassword)
}

func TestKey(t *testing.T) {
	require.Equal(t, "login:student1@127.0.0.1", Key(ScopeLogin, "student1", "127.0.0.1"))
	require.Equal(t, ScopeLogin, scopeOf("login:student1@127.0.0.1"))
}

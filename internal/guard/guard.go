// Package guard verifies secrets under a failed-attempt rate limit.
package guard

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/internal/metrics"
	"github.com/go-petr/edupay/pkg/passpkg"
)

// Guard scopes.
const (
	ScopeLogin    = "login"
	ScopePasscode = "passcode"
)

// Limiter counts failures per key.
type Limiter interface {
	Blocked(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
}

// Guard checks plain secrets against stored hashes and throttles repeated failures.
type Guard struct {
	hasher  passpkg.Hasher
	limiter Limiter
}

// New creates a Guard.
func New(h passpkg.Hasher, l Limiter) *Guard {
	return &Guard{
		hasher:  h,
		limiter: l,
	}
}

// Key builds a limiter key for scope from the identity and the client origin.
func Key(scope, identity, origin string) string {
	return scope + ":" + identity + "@" + origin
}

func scopeOf(key string) string {
	scope, _, _ := strings.Cut(key, ":")
	return scope
}

// Allow returns domain.ErrRateLimited when key is blocked.
// Limiter failures are logged and let the attempt through.
func (g *Guard) Allow(ctx context.Context, key string) error {
	blocked, err := g.limiter.Blocked(ctx, key)
	if err != nil {
		l := zerolog.Ctx(ctx)
		l.Warn().Err(err).Str("scope", scopeOf(key)).Msg("rate limiter unavailable")

		return nil
	}

	if blocked {
		metrics.GuardBlocks.WithLabelValues(scopeOf(key)).Inc()
		return domain.ErrRateLimited
	}

	return nil
}

// Verify checks plain against hashed. A blocked key fails with
// domain.ErrRateLimited before the secret is looked at. A mismatch is counted
// against key and reported as mismatchErr.
func (g *Guard) Verify(ctx context.Context, key, plain, hashed string, mismatchErr error) error {
	if err := g.Allow(ctx, key); err != nil {
		return err
	}

	if hashed != "" && g.hasher.Check(plain, hashed) == nil {
		return nil
	}

	if err := g.limiter.Fail(ctx, key); err != nil {
		l := zerolog.Ctx(ctx)
		l.Warn().Err(err).Str("scope", scopeOf(key)).Msg("cannot record failed attempt")
	}

	return mismatchErr
}

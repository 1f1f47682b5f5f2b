// Package middleware provides the gin middleware shared by all routes.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/go-petr/edupay/internal/domain"
	"github.com/go-petr/edupay/pkg/tokenpkg"
	"github.com/go-petr/edupay/pkg/web"
)

// Authorization header and context keys.
const (
	AuthHeaderKey  = "authorization"
	AuthTypeBearer = "bearer"
	AuthPayloadKey = "authorization_payload"
)

var (
	// ErrAuthHeaderNotFound indicates the request has no authorization header.
	ErrAuthHeaderNotFound = errors.New("authorization header is not provided")
	// ErrBadAuthHeaderFormat indicates a header that is not "<type> <token>".
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	// ErrUnsupportedAuthType indicates an authorization type other than bearer.
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
	// ErrForbidden indicates the authenticated role may not use the route.
	ErrForbidden = errors.New("access denied")
)

// AddAuthorization creates a token for username and role and sets it on r.
func AddAuthorization(r *http.Request, maker tokenpkg.Maker, authType, username, role string, d time.Duration) error {
	token, _, err := maker.CreateToken(username, role, d)
	if err != nil {
		return fmt.Errorf("maker.CreateToken(%v, %v, %v): %w", username, role, d, err)
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware verifies the bearer token and stores its payload in the context.
func AuthMiddleware(maker tokenpkg.Maker) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrBadAuthHeaderFormat))
			return
		}

		if strings.ToLower(fields[0]) != AuthTypeBearer {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUnsupportedAuthType))
			return
		}

		payload, err := maker.VerifyToken(fields[1])
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		ctx.Set(AuthPayloadKey, payload)
		ctx.Next()
	}
}

// Payload returns the token payload AuthMiddleware stored in the context.
func Payload(ctx *gin.Context) *tokenpkg.Payload {
	p, _ := ctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload)
	return p
}

// RequireRole lets through only tokens carrying one of roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p := Payload(ctx)

		for _, r := range roles {
			if p != nil && domain.Role(p.Role) == r {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusForbidden, web.Error(ErrForbidden))
	}
}

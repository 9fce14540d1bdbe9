package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/saecheverry/stefanini-go-tickets/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SubjectID string
	Role      string
}

// Middleware validates bearer tokens and stores the principal on the
// request context. A nil middleware (no secret configured) disables
// authentication.
type Middleware struct {
	tokens *TokenVerifier
}

// NewMiddleware constructs middleware; returns nil when no secret is set.
func NewMiddleware(secret string) *Middleware {
	if secret == "" {
		return nil
	}
	return &Middleware{tokens: NewTokenVerifier(secret)}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if m == nil {
		return c.Next()
	}

	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, &Principal{SubjectID: claims.SubjectID, Role: claims.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

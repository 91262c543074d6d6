package userservice

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

const authScheme = "Bearer"

// AuthorizerConfig configures the request authorizer middleware
type AuthorizerConfig struct {
	Tokens *TokenService
	Users  Users
	// Optional lets requests without a usable bearer token continue
	// without a principal instead of being rejected.
	Optional bool
	Logger   Logger
}

// RequestAuthorizer returns the middleware that guards protected routes.
// It extracts the bearer token, validates it, resolves the subject email
// back to a user record, and binds the resulting Principal to the request
// context for the rest of the handler chain. Every failure is translated
// by the boundary error handler into a structured 401 response; the chain
// is not continued. Public routes simply never mount this middleware.
func RequestAuthorizer(cfg AuthorizerConfig) fiber.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx) error {
		raw, ok := tokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			if cfg.Optional {
				return c.Next()
			}
			return ErrInvalidToken
		}

		if !cfg.Tokens.Validate(raw) {
			if cfg.Optional {
				return c.Next()
			}
			return ErrInvalidToken
		}

		email, err := cfg.Tokens.Subject(raw)
		if err != nil {
			if cfg.Optional {
				return c.Next()
			}
			return err
		}

		user, err := cfg.Users.GetByEmail(c.UserContext(), email)
		if err != nil {
			if errors.IsNotFound(err) {
				// Valid signature for a subject the store no longer knows;
				// treat the request as unauthenticated.
				logger.Warn("Authorizer token subject %s has no user record", email)
				if cfg.Optional {
					return c.Next()
				}
				return ErrInvalidToken
			}
			return err
		}

		c.SetUserContext(WithPrincipal(c.UserContext(), NewPrincipal(user)))

		return c.Next()
	}
}

// RequireRole guards a route behind a minimum role. It must run after
// RequestAuthorizer; a request without a bound principal is rejected as
// unauthenticated rather than forbidden.
func RequireRole(minRole UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c.UserContext())
		if !ok {
			return ErrInvalidToken
		}

		if !principal.Role.IsAtLeast(minRole) {
			return errors.New("insufficient role for this resource", errors.CategoryAuthz).
				WithMetadata(map[string]any{
					"role":     string(principal.Role),
					"required": string(minRole),
				})
		}

		return c.Next()
	}
}

// tokenFromHeader strips the bearer scheme marker and returns the candidate
// token, or false when the header is absent or carries another scheme. The
// scheme must be followed by a space; "BearerX..." is not a bearer header.
func tokenFromHeader(header string) (string, bool) {
	l := len(authScheme)
	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) && header[l] == ' ' {
		return strings.TrimSpace(header[l:]), true
	}
	return "", false
}

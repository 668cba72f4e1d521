package middleware

import (
	"context"
	"errors"
	"strings"

	"travel-portal/httpServices/gateway"
	"travel-portal/logger"
	"travel-portal/types"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// AccessCookie carries the bearer token for browser clients.
const AccessCookie = "access"

const principalKey = "principal"

var ErrMissingToken = errors.New("authorization token missing")

// TokenResolver identifies the caller behind a bearer token.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (types.Principal, error)
}

// ExtractToken reads the bearer token from the Authorization header,
// falling back to the access cookie.
func ExtractToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
			return "", errors.New("invalid authorization header format")
		}
		return utils.CopyString(tokenParts[1]), nil
	}

	if token := c.Cookies(AccessCookie); token != "" {
		return utils.CopyString(token), nil
	}
	return "", ErrMissingToken
}

// IsAuthenticated rejects requests without a valid token and stores the
// caller for GetPrincipal.
func IsAuthenticated(resolver TokenResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := ExtractToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: capitalize(err.Error()),
				Status:  fiber.StatusUnauthorized,
			})
		}

		principal, err := resolver.Resolve(c.UserContext(), token)
		if err != nil {
			logger.Warning("Token rejected: " + err.Error())
			status := fiber.StatusUnauthorized
			msg := "Session expired. Login again."
			var apiErr *gateway.APIError
			switch {
			case errors.Is(err, ErrInvalidToken):
			case errors.As(err, &apiErr) && apiErr.Status < fiber.StatusInternalServerError:
			default:
				status = fiber.StatusBadGateway
				msg = gateway.MessageOf(err)
			}
			return c.Status(status).JSON(types.ErrorResponse{Message: msg, Status: status})
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RequireRoles allows the request only when the caller has one of roles.
// It must run after IsAuthenticated.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetPrincipal(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Authorization token missing",
				Status:  fiber.StatusUnauthorized,
			})
		}
		for _, role := range roles {
			if principal.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: "Insufficient permissions",
			Status:  fiber.StatusForbidden,
		})
	}
}

// GetPrincipal returns the caller stored by IsAuthenticated.
func GetPrincipal(c *fiber.Ctx) (types.Principal, bool) {
	principal, ok := c.Locals(principalKey).(types.Principal)
	return principal, ok
}

// SetPrincipal stores p as the caller. Used by tests and internal routes.
func SetPrincipal(c *fiber.Ctx, p types.Principal) {
	c.Locals(principalKey, p)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

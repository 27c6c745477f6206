package handlers

import (
	"errors"
	"strings"

	"spartanmarket/internal/auth"
	"spartanmarket/internal/domain"
	applog "spartanmarket/internal/log"
	"spartanmarket/internal/services"

	"github.com/gofiber/fiber/v2"
)

// RequireUser validates the bearer token and resolves its subject to a live
// user record, stored in Locals for the handler. A valid token whose user no
// longer exists is a 404, not a 401.
func RequireUser(tokens *auth.TokenService, users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return jsonError(c, fiber.StatusUnauthorized, "missing authorization header")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return jsonError(c, fiber.StatusUnauthorized, "malformed authorization header")
		}
		username, err := tokens.ValidateToken(parts[1])
		if err != nil {
			applog.Security(c, "auth.token.invalid", map[string]any{"err": err.Error()})
			return jsonError(c, fiber.StatusUnauthorized, "invalid or expired token")
		}
		u, err := users.ByUsername(username)
		if errors.Is(err, domain.ErrUserNotFound) {
			applog.Security(c, "auth.token.orphan", map[string]any{"username": username})
			return jsonError(c, fiber.StatusNotFound, domain.ErrUserNotFound.Error())
		}
		if err != nil {
			return fail(c, "auth.token.resolve", err)
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

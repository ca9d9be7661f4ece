package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
)

const (
	localAdmin    = "admin"
	localCustomer = "customer"
)

func bearer(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "detail": "Unauthorized"})
}

// RequireAdmin gates catalog mutation and audit routes behind an admin token.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearer(c)
		if tok == "" {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "missing_token"})
			return unauthorized(c)
		}
		who, err := auth.VerifyAdminToken(tok)
		if err != nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "bad_token"})
			return unauthorized(c)
		}
		c.Locals(localAdmin, who)
		return c.Next()
	}
}

// RequireCustomer resolves a customer token into the caller's email.
func RequireCustomer(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email, ok := auth.VerifyCustomer(bearer(c))
		if !ok {
			applog.Security(c, "access.denied.customer", nil)
			return unauthorized(c)
		}
		c.Locals(localCustomer, email)
		return c.Next()
	}
}

// isAdmin reports whether the request carries a valid admin token without
// rejecting it otherwise.
func isAdmin(c *fiber.Ctx, auth *services.AuthService) bool {
	tok := bearer(c)
	if tok == "" || auth == nil {
		return false
	}
	_, err := auth.VerifyAdminToken(tok)
	return err == nil
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type OAuthHandler struct {
	OAuth *services.OAuthService
}

// GET /oauth/:provider/start
func (h *OAuthHandler) Start(c *fiber.Ctx) error {
	provider, ok := validate.Provider(c.Params("provider"))
	if !ok {
		return c.JSON(services.OAuthStart{Status: "disabled"})
	}
	return c.JSON(h.OAuth.Start(provider))
}

// GET /oauth/:provider/callback?code=&email=
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	provider, ok := validate.Provider(c.Params("provider"))
	if !ok {
		return c.JSON(services.OAuthResult{Status: "disabled"})
	}
	email := c.Query("email")
	if email != "" {
		if email, ok = validate.Email(email); !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "email"})
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation", "detail": "Invalid email"})
		}
	}
	res := h.OAuth.Callback(provider, c.Query("code"), email)
	if res.AccessToken != "" {
		applog.Audit(c, "auth.oauth.dev_login", map[string]any{"provider": provider})
	}
	return c.JSON(res)
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func issued(tok string) tokenResponse { return tokenResponse{AccessToken: tok, TokenType: "bearer"} }

// POST /auth/login
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var in domain.Credentials
	if err := bind(c, &in); err != nil {
		return invalid(c, err)
	}
	tok, err := h.Auth.IssueAdminToken(in.Email, in.Password)
	if err != nil {
		applog.Security(c, "auth.admin.login.fail", map[string]any{"email": in.Email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.admin.login.success", map[string]any{"email": in.Email})
	return c.JSON(issued(tok))
}

// POST /auth/customer/signup
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var in domain.CustomerSignup
	if err := bind(c, &in); err != nil {
		return invalid(c, err)
	}
	tok, err := h.Auth.Signup(in)
	if err != nil {
		applog.Security(c, "auth.customer.signup.fail", map[string]any{"email": in.Email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.customer.signup", map[string]any{"email": in.Email})
	return c.JSON(issued(tok))
}

// POST /auth/customer/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in domain.Credentials
	if err := bind(c, &in); err != nil {
		return invalid(c, err)
	}
	tok, err := h.Auth.Login(in.Email, in.Password)
	if err != nil {
		applog.Security(c, "auth.customer.login.fail", map[string]any{"email": in.Email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.customer.login.success", map[string]any{"email": in.Email})
	return c.JSON(issued(tok))
}

// GET /me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	email, _ := c.Locals(localCustomer).(string)
	return c.JSON(h.Auth.Profile(email))
}

// PUT /me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	email, _ := c.Locals(localCustomer).(string)
	var in domain.ProfileUpdate
	if err := bind(c, &in); err != nil {
		return invalid(c, err)
	}
	p, err := h.Auth.UpdateProfile(email, in)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "customer.profile.update", map[string]any{"email": email})
	return c.JSON(p)
}

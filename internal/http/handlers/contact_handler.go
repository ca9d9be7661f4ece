package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

type ContactHandler struct {
	Contact *services.ContactService
}

// POST /contact
func (h *ContactHandler) Send(c *fiber.Ctx) error {
	var in domain.ContactMessage
	if err := bind(c, &in); err != nil {
		return invalid(c, err)
	}
	if err := h.Contact.Send(c.UserContext(), in); err != nil {
		applog.Error(c, "contact.send.fail", err, map[string]any{"from": in.Email})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "upstream", "detail": "Could not send your message. Please try again later."})
	}
	applog.Info(c, "contact.send", map[string]any{"from": in.Email})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /contact/public
func (h *ContactHandler) ListPublic(c *fiber.Ctx) error {
	return c.JSON(h.Contact.ListPublic())
}

// POST /contact/public
func (h *ContactHandler) PostPublic(c *fiber.Ctx) error {
	var in domain.ContactMessage
	if err := bind(c, &in); err != nil {
		return invalid(c, err)
	}
	h.Contact.PostPublic(in)
	return c.JSON(fiber.Map{"ok": true})
}

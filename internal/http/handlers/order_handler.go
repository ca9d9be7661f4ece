package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// POST /orders
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var in domain.OrderInput
	if err := bind(c, &in); err != nil {
		return invalid(c, err)
	}
	o, err := h.Orders.Create(in)
	if err != nil {
		applog.Security(c, "order.place.fail", map[string]any{"error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id":    o.ID,
		"total_cents": o.TotalCents,
		"items":       len(o.Items),
	})
	return c.JSON(o)
}

// GET /orders/:id
func (h *OrderHandler) View(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "detail": "Order not found"})
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(o)
}

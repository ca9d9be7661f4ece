package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type AdminHandler struct {
	Catalog *services.CatalogService
}

func adminOf(c *fiber.Ctx) string {
	who, _ := c.Locals(localAdmin).(string)
	return who
}

func productNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "detail": "Product not found"})
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var in domain.ProductInput
	if err := bind(c, &in); err != nil {
		return invalid(c, err)
	}
	p, err := h.Catalog.Create(in)
	if err != nil && !errors.Is(err, services.ErrPersist) {
		return fail(c, err)
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": p.ID, "admin": adminOf(c)})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

// PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return productNotFound(c)
	}
	var patch domain.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return invalid(c, errors.Join(services.ErrValidation, err))
	}
	p, err := h.Catalog.Update(id, patch)
	if err != nil && !errors.Is(err, services.ErrPersist) {
		return fail(c, err)
	}
	applog.Audit(c, "admin.products.update", map[string]any{"product_id": id, "admin": adminOf(c)})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

// DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return productNotFound(c)
	}
	_, err := h.Catalog.Delete(id)
	if err != nil && !errors.Is(err, services.ErrPersist) {
		return fail(c, err)
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id, "admin": adminOf(c)})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// GET /admin/products/:id/history
func (h *AdminHandler) History(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.JSON([]domain.HistoryEntry{})
	}
	return c.JSON(h.Catalog.History(id))
}

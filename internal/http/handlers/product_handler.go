package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Auth    *services.AuthService
}

// GET /products?visible_only=true&q=&category=
// Hidden products are listed only when visible_only=false comes with an
// admin token.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	visibleOnly := c.QueryBool("visible_only", true)
	if !visibleOnly && !isAdmin(c, h.Auth) {
		visibleOnly = true
	}
	q, category := c.Query("q"), c.Query("category")
	if len(q) > 100 || len(category) > 100 {
		applog.Security(c, "validation.fail", map[string]any{"field": "q"})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation", "detail": "Query too long"})
	}
	if q == "" && category == "" {
		return c.JSON(h.Catalog.ListProducts(visibleOnly))
	}
	return c.JSON(h.Catalog.Search(q, category, visibleOnly))
}

// GET /products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "detail": "Product not found"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(p)
}

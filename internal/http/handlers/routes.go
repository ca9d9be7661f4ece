package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "storefront/internal/log"
)

type RouteOptions struct {
	// AuthLimit caps login/signup attempts per IP within AuthWindow; 0 disables it.
	AuthLimit  int
	AuthWindow time.Duration
}

func Register(app *fiber.App, d *Deps, opts RouteOptions) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	authLimit := func(c *fiber.Ctx) error { return c.Next() }
	if opts.AuthLimit > 0 {
		authLimit = limiter.New(limiter.Config{
			Max:        opts.AuthLimit,
			Expiration: opts.AuthWindow,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP() + "|auth"
			},
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.login.hit", nil)
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate_limited", "detail": "Too many attempts. Please try again later."})
			},
		})
	}

	// Auth
	app.Post("/auth/login", authLimit, d.AuthHandler.AdminLogin)
	app.Post("/auth/customer/signup", authLimit, d.AuthHandler.Signup)
	app.Post("/auth/customer/login", authLimit, d.AuthHandler.Login)
	app.Get("/me", RequireCustomer(d.Auth), d.AuthHandler.Me)
	app.Put("/me", RequireCustomer(d.Auth), d.AuthHandler.UpdateMe)

	// Contact
	app.Post("/contact", d.ContactHandler.Send)
	app.Get("/contact/public", d.ContactHandler.ListPublic)
	app.Post("/contact/public", d.ContactHandler.PostPublic)

	// OAuth
	app.Get("/oauth/:provider/start", d.OAuthHandler.Start)
	app.Get("/oauth/:provider/callback", d.OAuthHandler.Callback)

	// Catalog
	app.Get("/products", d.ProductHandler.List)
	app.Get("/products/:id", d.ProductHandler.Detail)

	admin := app.Group("/admin", RequireAdmin(d.Auth))
	admin.Post("/products", d.AdminHandler.CreateProduct)
	admin.Put("/products/:id", d.AdminHandler.UpdateProduct)
	admin.Delete("/products/:id", d.AdminHandler.DeleteProduct)
	admin.Get("/products/:id/history", d.AdminHandler.History)

	// Orders
	app.Post("/orders", d.OrderHandler.Place)
	app.Get("/orders/:id", d.OrderHandler.View)

	// Payments
	app.Post("/payments/payoneer/checkout-intent", d.PaymentHandler.CheckoutIntent)
	app.Post("/webhooks/payoneer", d.PaymentHandler.Webhook)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "detail": "Not found"})
	})
}

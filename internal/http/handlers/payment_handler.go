package handlers

import (
	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
)

const signatureHeader = "X-Payoneer-Signature"

type PaymentHandler struct {
	Payments *services.PaymentService
}

// POST /payments/payoneer/checkout-intent
func (h *PaymentHandler) CheckoutIntent(c *fiber.Ctx) error {
	var in domain.OrderInput
	if err := bind(c, &in); err != nil {
		return invalid(c, err)
	}
	intent, err := h.Payments.CheckoutIntent(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(intent)
}

// POST /webhooks/payoneer
// Receipt is acknowledged only; order status is not changed here.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	if err := h.Payments.VerifyWebhook(c.Body(), c.Get(signatureHeader)); err != nil {
		applog.Security(c, "payment.webhook.bad_signature", nil)
		return fail(c, err)
	}
	applog.Audit(c, "payment.webhook.received", map[string]any{"bytes": len(c.Body())})
	return c.JSON(fiber.Map{"ok": true})
}

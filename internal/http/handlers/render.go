package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"
)

const genericMessage = "Something went wrong. Please try again."

// fail maps a service error to its HTTP status and JSON body.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "detail": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "detail": err.Error()})
	case errors.Is(err, services.ErrInvalidCart):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_cart", "detail": err.Error()})
	case errors.Is(err, services.ErrAlreadyExists):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "already_exists", "detail": err.Error()})
	case errors.Is(err, services.ErrInvalidSignature):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_signature", "detail": "Invalid signature"})
	case errors.Is(err, services.ErrValidation):
		return invalid(c, err)
	default:
		applog.Error(c, "server.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal", "detail": genericMessage})
	}
}

func invalid(c *fiber.Ctx, err error) error {
	applog.Security(c, "validation.fail", map[string]any{"fields": validate.Errors(err)})
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"error":  "validation",
		"detail": "Request validation failed",
		"fields": validate.Errors(err),
	})
}

// bind parses the JSON body into dst and runs its validate tags.
func bind(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errors.Join(services.ErrValidation, err)
	}
	if err := validate.Struct(dst); err != nil {
		return errors.Join(services.ErrValidation, err)
	}
	return nil
}

// ErrorHandler is the app-wide fallback. Client errors raised by Fiber keep
// their message; anything else is logged and replaced by a generic one.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": "request", "detail": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal", "detail": genericMessage})
}

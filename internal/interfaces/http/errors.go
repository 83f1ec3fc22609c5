package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/pyme-finanzas/internal/application/dto"
	"github.com/jhoicas/pyme-finanzas/internal/domain"
)

// errorMapping traduce un error de dominio a código HTTP y código de negocio.
type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: ErrInvalidDiscount y ErrLedgerUnavailable se evalúan antes que ErrInvalidInput.
var errorMappings = []errorMapping{
	{domain.ErrInvalidPeriod, fiber.StatusBadRequest, "INVALID_PERIOD"},
	{domain.ErrOrganizationNotFound, fiber.StatusNotFound, "ORGANIZATION_NOT_FOUND"},
	{domain.ErrInvalidWindow, fiber.StatusBadRequest, "INVALID_WINDOW"},
	{domain.ErrInvalidFilter, fiber.StatusBadRequest, "INVALID_FILTER"},
	{domain.ErrInvalidDiscount, fiber.StatusUnprocessableEntity, "INVALID_DISCOUNT"},
	{domain.ErrLedgerUnavailable, fiber.StatusServiceUnavailable, "LEDGER_UNAVAILABLE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
}

// writeError responde {code,message} según el error. Los 5xx se registran; el resto es error del cliente.
func writeError(c *fiber.Ctx, log zerolog.Logger, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			status, code = m.status, m.code
			break
		}
	}
	if status == fiber.StatusInternalServerError && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		status, code = fiber.StatusServiceUnavailable, "REQUEST_CANCELLED"
	}

	message := err.Error()
	if status >= fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("path", c.Path()).
			Str("organization_id", GetCompanyID(c)).
			Int("status", status).
			Msg("error atendiendo solicitud")
		if status == fiber.StatusInternalServerError {
			message = "error interno"
		}
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Code: "UNAUTHORIZED", Message: "company_id no encontrado en el token",
	})
}

package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"clinic-concierge-be/pkg/rag/pipeline"
	"clinic-concierge-be/pkg/rag/response"
)

// ErrorHandlerMiddleware converts errors returned by handlers into the
// JSON envelope with a status the client can act on.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		var fiberErr *fiber.Error

		switch {
		case errors.Is(err, pipeline.ErrNotReady):
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(err.Error()))
		case errors.Is(err, pipeline.ErrInvalidSession):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(err.Error()))
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErr.Error()))
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		case errors.Is(err, response.ErrGeneration):
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse("upstream model error"))
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
		}
	}
}

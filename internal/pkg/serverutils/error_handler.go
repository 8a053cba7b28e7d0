package serverutils

import (
	"errors"

	"ai-quizforge-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts anything thrown by a controller into the
// structured failure envelope. Auth failures never reach here: the JWT
// middleware responds before the chain continues.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return ctx.Status(statusFor(err)).JSON(ErrorResponse(err.Error()))
	}
}

func statusFor(err error) int {
	var validationErr *apperror.ValidationError
	var unauthorizedErr *apperror.UnauthorizedError
	var notFoundErr *apperror.NotFoundError
	var upstreamErr *apperror.UpstreamGenerationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.As(err, &unauthorizedErr):
		return fiber.StatusForbidden
	case errors.As(err, &notFoundErr):
		return fiber.StatusNotFound
	case errors.As(err, &upstreamErr):
		return fiber.StatusBadGateway
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}

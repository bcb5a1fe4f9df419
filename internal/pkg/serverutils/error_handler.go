package serverutils

import (
	"errors"

	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors escaping a handler into the JSON
// envelope. Dependency outages map to 503; everything unclassified is a
// generic 500 so internals never leak to clients. The full error goes to the
// system logger since the client payload hides it.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if errors.Is(err, rag.ErrOracleUnavailable) ||
			errors.Is(err, rag.ErrIndexUnavailable) ||
			errors.Is(err, rag.ErrSessionStoreUnavailable) {
			log.Warn("ErrorHandler", "Dependency unavailable", map[string]interface{}{
				"error": err.Error(),
				"path":  ctx.Path(),
			})
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(ErrorResponse(fiber.StatusServiceUnavailable, "service temporarily unavailable"))
		}

		log.Error("ErrorHandler", "Unhandled error", map[string]interface{}{
			"error": err.Error(),
			"path":  ctx.Path(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "internal server error"))
	}
}

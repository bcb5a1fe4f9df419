package serverutils

import (
	"github.com/gofiber/fiber/v2"
)

const SessionHeader = "X-Session-Id"

// SessionMiddleware requires the session id header on conversation routes.
// The welcome endpoint mints ids; every later request must carry one back.
func SessionMiddleware(ctx *fiber.Ctx) error {
	sessionId := ctx.Get(SessionHeader)
	if sessionId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing "+SessionHeader+" header")
	}
	ctx.Locals("session_id", sessionId)
	return ctx.Next()
}

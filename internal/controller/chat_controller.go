package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Welcome(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Get("welcome", c.Welcome)
	h.Post("", serverutils.SessionMiddleware, c.Chat)
}

// Welcome mints a session id and returns the greeting. Clients echo the id
// back in the X-Session-Id header on every chat request.
func (c *chatController) Welcome(ctx *fiber.Ctx) error {
	res := c.chatService.GetWelcomeMessage()
	return ctx.JSON(serverutils.SuccessResponse("Success get welcome message", res))
}

// Chat runs one conversation turn and streams the reply as SSE. Validation,
// retrieval and relevance checks happen before the stream opens, so their
// failures still surface as plain JSON errors.
func (c *chatController) Chat(ctx *fiber.Ctx) error {
	sessionId := ctx.Locals("session_id").(string)

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// The stream writer outlives this handler, so the pipeline runs on its
	// own context cancelled when the writer exits.
	pipeCtx, cancel := context.WithCancel(context.Background())

	events, err := c.chatService.ProcessMessage(pipeCtx, sessionId, req.Message)
	if err != nil {
		cancel()
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for event := range events {
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				// Client gone; cancel tears down the pipeline goroutine.
				return
			}
		}
	}))

	return nil
}

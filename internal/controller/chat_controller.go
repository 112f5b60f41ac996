package controller

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"clinic-concierge-be/internal/dto"
	"clinic-concierge-be/internal/pkg/serverutils"
	"clinic-concierge-be/pkg/rag/pipeline"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
	SetApiKey(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Ready(ctx *fiber.Ctx) error
}

type chatController struct {
	pipeline       *pipeline.Pipeline
	requestTimeout time.Duration
}

func NewChatController(p *pipeline.Pipeline, requestTimeoutSeconds int) IChatController {
	if requestTimeoutSeconds <= 0 {
		requestTimeoutSeconds = 60
	}
	return &chatController{
		pipeline:       p,
		requestTimeout: time.Duration(requestTimeoutSeconds) * time.Second,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.Chat)
	h.Post("/reset-session", c.ResetSession)
	h.Post("/set-api-key", c.SetApiKey)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(ctx.Context(), c.requestTimeout)
	defer cancel()

	res, err := c.pipeline.Answer(reqCtx, req.Message, req.SessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", dto.ChatResponse{
		Reply:     res.Reply,
		Language:  res.Language,
		SessionId: req.SessionId,
	}))
}

func (c *chatController) ResetSession(ctx *fiber.Ctx) error {
	var req dto.ResetSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.pipeline.ResetSession(req.SessionId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Session reset", nil))
}

func (c *chatController) SetApiKey(ctx *fiber.Ctx) error {
	var req dto.SetApiKeyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	probeCtx, cancel := context.WithTimeout(ctx.Context(), 15*time.Second)
	defer cancel()

	if !c.pipeline.SetCredential(probeCtx, req.ApiKey) {
		return fiber.NewError(fiber.StatusBadRequest, "API key validation failed")
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("API key accepted", nil))
}

func (c *chatController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{"status": "healthy"}))
}

func (c *chatController) Ready(ctx *fiber.Ctx) error {
	if !c.pipeline.IsReady() {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(serverutils.ErrorResponse("no API credential configured"))
	}
	return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{"status": "ready"}))
}

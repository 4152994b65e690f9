package controller

import (
	"io"

	"clinivoice-be/internal/apperrors"
	"clinivoice-be/internal/dto"
	"clinivoice-be/internal/pkg/serverutils"
	"clinivoice-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Stop(ctx *fiber.Ctx) error
	SubmitVoice(ctx *fiber.Ctx) error
	GetConversation(ctx *fiber.Ctx) error
	ListActive(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService service.ISessionService
}

func NewSessionController(sessionService service.ISessionService) ISessionController {
	return &sessionController{
		sessionService: sessionService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("start", c.Start)
	h.Post("stop", c.Stop)
	h.Get("active", c.ListActive)
	h.Post(":id/voice", c.SubmitVoice)
	h.Get(":id/conversation", c.GetConversation)
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	// The body is optional: a bare POST starts an unnamed session.
	var req dto.StartSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.sessionService.Start(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session started successfully", res))
}

func (c *sessionController) Stop(ctx *fiber.Ctx) error {
	var req dto.StopSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.Stop(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Session stopped successfully", res))
}

func (c *sessionController) SubmitVoice(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.ErrSessionNotFound
	}

	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing audio upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable audio upload")
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unreadable audio upload")
	}

	result, err := c.sessionService.SubmitUtterance(ctx.Context(), sessionId, audio)
	if err != nil {
		return err
	}

	if result.NoSpeech {
		return ctx.JSON(serverutils.APIResponse[any]{
			Success: false,
			Message: "No speech detected in audio",
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Voice processed successfully", result.Message))
}

func (c *sessionController) GetConversation(ctx *fiber.Ctx) error {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.ErrSessionNotFound
	}

	res, err := c.sessionService.GetTranscript(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Conversation retrieved successfully", res))
}

func (c *sessionController) ListActive(ctx *fiber.Ctx) error {
	res, err := c.sessionService.ListActiveSessions(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Active sessions retrieved", res))
}

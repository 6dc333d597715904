package controller

import (
	"insightgpt-be/internal/dto"
	"insightgpt-be/internal/entity"
	"insightgpt-be/internal/pkg/serverutils"
	"insightgpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/sessions")
	h.Use(auth)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var req dto.SaveSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	id, err := c.service.Create(ctx.UserContext(), serverutils.UserId(ctx), toTurns(req.ChatHistory))
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", dto.CreateSessionResponse{SessionId: id}))
}

func (c *sessionController) GetAll(ctx *fiber.Ctx) error {
	summaries, err := c.service.List(ctx.UserContext(), serverutils.UserId(ctx))
	if err != nil {
		return toHTTPError(err)
	}

	res := make([]dto.SessionSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		res = append(res, dto.SessionSummaryResponse{Id: s.Id, Title: s.Title, UpdatedAt: s.UpdatedAt})
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all sessions", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	session, err := c.service.Get(ctx.UserContext(), serverutils.UserId(ctx), ctx.Params("id"))
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", dto.SessionResponse{
		Id:          session.Id,
		Title:       session.Title,
		ChatHistory: toTurnDTOs(session.Turns),
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}))
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	var req dto.SaveSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Replace(ctx.UserContext(), serverutils.UserId(ctx), ctx.Params("id"), toTurns(req.ChatHistory)); err != nil {
		return toHTTPError(err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func toTurns(in []dto.ChatTurnDTO) []entity.ConversationTurn {
	out := make([]entity.ConversationTurn, 0, len(in))
	for _, t := range in {
		out = append(out, entity.ConversationTurn{Role: t.Role, Content: t.Content, Chart: t.Chart})
	}
	return out
}

func toTurnDTOs(in []entity.ConversationTurn) []dto.ChatTurnDTO {
	out := make([]dto.ChatTurnDTO, 0, len(in))
	for _, t := range in {
		out = append(out, dto.ChatTurnDTO{Role: t.Role, Content: t.Content, Chart: t.Chart})
	}
	return out
}

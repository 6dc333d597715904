package controller

import (
	"insightgpt-be/internal/dto"
	"insightgpt-be/internal/pkg/serverutils"
	"insightgpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueryLogController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	List(ctx *fiber.Ctx) error
}

type queryLogController struct {
	service service.IQueryLogService
}

func NewQueryLogController(service service.IQueryLogService) IQueryLogController {
	return &queryLogController{service: service}
}

func (c *queryLogController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/query-logs")
	h.Use(auth)
	h.Get("", c.List)
}

func (c *queryLogController) List(ctx *fiber.Ctx) error {
	var req dto.QueryLogListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	logs, total, err := c.service.List(ctx.UserContext(), serverutils.UserId(ctx), service.QueryLogFilter{
		Route:      req.Route,
		FailedOnly: req.Failed,
		Limit:      req.Limit,
		Offset:     req.Offset,
	})
	if err != nil {
		return toHTTPError(err)
	}

	items := make([]dto.QueryLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, dto.QueryLogResponse{
			Id:          l.Id.String(),
			SessionId:   l.SessionId,
			Question:    l.Question,
			DisplayText: l.DisplayText,
			Route:       l.Route,
			Failure:     l.Failure,
			Chart:       l.Chart,
			DurationMs:  l.DurationMs,
			CreatedAt:   l.CreatedAt,
		})
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get query logs", dto.QueryLogListResponse{Items: items, Total: total}))
}

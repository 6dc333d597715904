package controller

import (
	"fmt"
	"io"

	"insightgpt-be/internal/dto"
	"insightgpt-be/internal/pkg/serverutils"
	"insightgpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IQueryController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Query(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	Document(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService  service.IQueryService
	ingestService service.IIngestService
	maxBytes      int64
}

func NewQueryController(queryService service.IQueryService, ingestService service.IIngestService, maxBytes int64) IQueryController {
	return &queryController{
		queryService:  queryService,
		ingestService: ingestService,
		maxBytes:      maxBytes,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Post("/query", auth, c.Query)
	r.Post("/upload", auth, c.Upload)
	r.Get("/document", auth, c.Document)
}

func (c *queryController) Query(ctx *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.queryService.Ask(ctx.UserContext(), serverutils.UserId(ctx), &req)
	if err != nil {
		return toHTTPError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer query", res))
}

func (c *queryController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File is required")
	}
	if c.maxBytes > 0 && fileHeader.Size > c.maxBytes {
		return toHTTPError(service.ErrUploadTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	res, err := c.ingestService.Ingest(ctx.UserContext(), serverutils.UserId(ctx), fileHeader.Filename, data)
	if err != nil {
		mapped := toHTTPError(err)
		if mapped == err {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Failed to process document: "+errorDetail(err))
		}
		return mapped
	}

	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *queryController) Document(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get document status", c.ingestService.Status()))
}

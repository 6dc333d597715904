package controller

import "github.com/gofiber/fiber/v2"

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (c *HealthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
}

func (c *HealthController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"status":  "ok",
		"message": "InsightGPT backend is running",
	})
}

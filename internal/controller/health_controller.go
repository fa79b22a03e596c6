package controller

import (
	"notes-app-be/internal/pkg/serverutils"
	"notes-app-be/pkg/database"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	mongo *database.Mongo
}

func NewHealthController(mongo *database.Mongo) IHealthController {
	return &healthController{mongo: mongo}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	status := map[string]interface{}{
		"server":   "up",
		"database": "up",
	}
	if err := c.mongo.Ping(ctx.Context()); err != nil {
		status["database"] = "down"
		return ctx.Status(fiber.StatusServiceUnavailable).
			JSON(serverutils.SuccessResponse("Service degraded", status))
	}
	return ctx.JSON(serverutils.SuccessResponse("Service healthy", status))
}

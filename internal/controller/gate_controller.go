package controller

import (
	"copygate-be/internal/dto"
	"copygate-be/internal/pkg/serverutils"
	"copygate-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGateController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
	CheckSection(ctx *fiber.Ctx) error
	ListRuns(ctx *fiber.Ctx) error
	ShowRun(ctx *fiber.Ctx) error
}

type gateController struct {
	service service.IGateService
}

func NewGateController(service service.IGateService) IGateController {
	return &gateController{service: service}
}

func (c *gateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/gate/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/check", c.Check)
	h.Post("/check-section", c.CheckSection)
	h.Get("/runs", c.ListRuns)
	h.Get("/runs/:id", c.ShowRun)
}

func (c *gateController) Check(ctx *fiber.Ctx) error {
	var req dto.CheckGateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Check(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check gate", res))
}

func (c *gateController) CheckSection(ctx *fiber.Ctx) error {
	var req dto.CheckSectionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CheckSection(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check section", res))
}

func (c *gateController) ListRuns(ctx *fiber.Ctx) error {
	jobID := ctx.Query("job_id")
	status := ctx.Query("status")
	limit := ctx.QueryInt("limit", 50)

	res, err := c.service.ListRuns(ctx.Context(), jobID, status, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list gate runs", res))
}

func (c *gateController) ShowRun(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid run id")
	}

	res, err := c.service.ShowRun(ctx.Context(), id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Gate run not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show gate run", res))
}

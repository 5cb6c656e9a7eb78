package controller

import (
	"copygate-be/internal/dto"
	"copygate-be/internal/pkg/serverutils"
	"copygate-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Extract(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	SetNegativeSpace(ctx *fiber.Ctx) error
	LockField(ctx *fiber.Ctx) error
	UnlockField(ctx *fiber.Ctx) error
}

type profileController struct {
	service service.IProfileService
}

func NewProfileController(service service.IProfileService) IProfileController {
	return &profileController{service: service}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/profile/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Extract)
	h.Get(":profile_id", c.Show)
	h.Put(":profile_id", c.Update)
	h.Delete(":profile_id", c.Delete)
	h.Put(":profile_id/negative-space", c.SetNegativeSpace)
	h.Put(":profile_id/lock", c.LockField)
	h.Put(":profile_id/unlock", c.UnlockField)
}

// editorIdentity resolves who made a curation edit. Explicit changed_by
// wins; otherwise the JWT subject is recorded.
func editorIdentity(ctx *fiber.Ctx, changedBy string) string {
	if changedBy != "" {
		return changedBy
	}
	if userID, ok := ctx.Locals("user_id").(string); ok {
		return userID
	}
	return ""
}

func (c *profileController) Extract(ctx *fiber.Ctx) error {
	var req dto.ExtractProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Extract(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract profile", res))
}

func (c *profileController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.ProfileID = ctx.Params("profile_id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update profile", res))
}

func (c *profileController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), ctx.Params("profile_id"))
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show profile", res))
}

func (c *profileController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.Context(), ctx.Query("client_slug"),
		ctx.QueryInt("limit", 50), ctx.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list profiles", res))
}

func (c *profileController) Delete(ctx *fiber.Ctx) error {
	err := c.service.Delete(ctx.Context(), ctx.Params("profile_id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete profile", nil))
}

func (c *profileController) SetNegativeSpace(ctx *fiber.Ctx) error {
	var req dto.SetNegativeSpaceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.ProfileID = ctx.Params("profile_id")
	req.ChangedBy = editorIdentity(ctx, req.ChangedBy)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetNegativeSpace(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set negative space", res))
}

func (c *profileController) LockField(ctx *fiber.Ctx) error {
	var req dto.LockFieldRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.ProfileID = ctx.Params("profile_id")
	req.ChangedBy = editorIdentity(ctx, req.ChangedBy)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.LockField(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success lock field", res))
}

func (c *profileController) UnlockField(ctx *fiber.Ctx) error {
	var req dto.LockFieldRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.ProfileID = ctx.Params("profile_id")
	req.ChangedBy = editorIdentity(ctx, req.ChangedBy)

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UnlockField(ctx.Context(), &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success unlock field", res))
}

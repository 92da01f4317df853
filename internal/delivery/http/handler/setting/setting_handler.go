package setting

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	settinguc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/setting"
)

type Handler struct {
	uc *settinguc.Usecase
}

func New(uc *settinguc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *Handler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("key"))
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var in settinguc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.Update(c.Context(), c.Params("key"), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, settinguc.ErrInvalidSettingValue):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, settinguc.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}

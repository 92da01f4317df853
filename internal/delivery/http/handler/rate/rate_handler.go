package rate

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	rateuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/rate"
)

type Handler struct {
	uc *rateuc.Usecase
}

func New(uc *rateuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *Handler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var in rateuc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

// Initialize installs any of the default rates that are missing.
func (h *Handler) Initialize(c *fiber.Ctx) error {
	out, err := h.uc.Initialize(c.Context())
	if err != nil {
		return mapErr(err)
	}
	status := fiber.StatusOK
	if out.Created > 0 {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, rateuc.ErrInvalidInput), errors.Is(err, rateuc.ErrInvalidPrice):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, rateuc.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}

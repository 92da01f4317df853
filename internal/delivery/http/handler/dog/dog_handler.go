package dog

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	doguc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/dog"
)

type Handler struct {
	uc *doguc.Usecase
}

func New(uc *doguc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in doguc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	out, err := h.uc.Create(c.Context(), in)
	return writeOne(c, out, err, fiber.StatusCreated)
}

func (h *Handler) List(c *fiber.Ctx) error {
	q := doguc.ListQuery{
		Limit:  c.QueryInt("limit", 100),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("customerId"); v != "" {
		q.CustomerID = &v
	}
	if v := c.Query("status"); v != "" {
		q.Status = &v
	}

	out, err := h.uc.List(c.Context(), q)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{"items": out})
}

func (h *Handler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	return writeOne(c, out, err, fiber.StatusOK)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var in doguc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.Update(c.Context(), id, in)
	return writeOne(c, out, err, fiber.StatusOK)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapErr(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func writeOne(c *fiber.Ctx, out *doguc.Dog, err error, okStatus int) error {
	if err != nil {
		return mapErr(err)
	}
	return c.Status(okStatus).JSON(out)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, doguc.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, doguc.ErrNotFound), errors.Is(err, doguc.ErrCustomerMissing):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, doguc.ErrHasDependents):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

package stay

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	stayuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/stay"
)

type Handler struct {
	uc *stayuc.Usecase
}

func New(uc *stayuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

// Quote prices a stay for the booking form without saving it.
func (h *Handler) Quote(c *fiber.Ctx) error {
	in, err := parseInput(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Quote(c.Context(), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	in, err := parseInput(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	return writeOne(c, out, err, fiber.StatusCreated)
}

func (h *Handler) List(c *fiber.Ctx) error {
	q := stayuc.ListQuery{
		Limit:  c.QueryInt("limit", 100),
		Offset: c.QueryInt("offset", 0),
	}
	if v := c.Query("dogId"); v != "" {
		q.DogID = &v
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
	in, err := parseInput(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	return writeOne(c, out, err, fiber.StatusOK)
}

func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var in stayuc.UpdateStatusInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	return writeOne(c, out, err, fiber.StatusOK)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapErr(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseInput(c *fiber.Ctx) (stayuc.Input, error) {
	var in stayuc.Input
	if err := c.BodyParser(&in); err != nil {
		if errors.Is(err, pricing.ErrInvalidTime) {
			return in, fiber.NewError(fiber.StatusBadRequest, pricing.ErrInvalidTime.Error())
		}
		return in, fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	return in, nil
}

func writeOne(c *fiber.Ctx, out *stayuc.Stay, err error, okStatus int) error {
	if err != nil {
		return mapErr(err)
	}
	return c.Status(okStatus).JSON(out)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, stayuc.ErrInvalidInput),
		errors.Is(err, stayuc.ErrInvalidStatus),
		errors.Is(err, stayuc.ErrDogDeceased),
		errors.Is(err, pricing.ErrInvalidDateRange),
		errors.Is(err, pricing.ErrInvalidAmount),
		errors.Is(err, pricing.ErrInvalidTime):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, stayuc.ErrNotFound),
		errors.Is(err, pricing.ErrDogNotFound),
		errors.Is(err, pricing.ErrRateNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, stayuc.ErrInvalidTransition), errors.Is(err, stayuc.ErrBilled):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

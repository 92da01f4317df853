package bill

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	billuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/bill"
)

type Handler struct {
	uc *billuc.Usecase
}

func New(uc *billuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in billuc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *Handler) List(c *fiber.Ctx) error {
	q := billuc.ListQuery{
		Limit:  c.QueryInt("limit", 50),
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

func (h *Handler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetView(c.Context(), c.Params("id"))
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

// GetByCode is the public guest view of a bill.
func (h *Handler) GetByCode(c *fiber.Ctx) error {
	out, err := h.uc.GetViewByCode(c.Context(), c.Params("code"))
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var in billuc.UpdateStatusInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return mapErr(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) UnbilledStays(c *fiber.Ctx) error {
	out, err := h.uc.UnbilledStays(c.Context())
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{"items": out})
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, billuc.ErrInvalidInput), errors.Is(err, billuc.ErrInvalidStatus):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, billuc.ErrNotFound), errors.Is(err, billuc.ErrCustomerMissing):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, billuc.ErrStayNotBillable),
		errors.Is(err, billuc.ErrInvalidTransition),
		errors.Is(err, billuc.ErrPaid):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

package payment

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	payuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/payment"
)

type Handler struct {
	uc *payuc.Usecase
}

func New(uc *payuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) CreateForBill(c *fiber.Ctx) error {
	var req payuc.CreateInput
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	req.BillID = c.Params("id")

	p, state, err := h.uc.Create(c.Context(), req)
	if err != nil {
		return mapErr(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"payment": p,
		"bill":    state,
	})
}

func (h *Handler) ListForBill(c *fiber.Ctx) error {
	items, err := h.uc.ListByBill(c.Context(), c.Params("id"))
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{"items": items})
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, payuc.ErrInvalidInput), errors.Is(err, payuc.ErrInvalidAmount):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, payuc.ErrBillMissing):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, payuc.ErrBillClosed):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return err
	}
}

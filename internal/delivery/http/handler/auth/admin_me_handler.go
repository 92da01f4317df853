package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/kosarinj/lilys-dogboarding-app/internal/delivery/middleware"
)

type AdminMeHandler struct{}

func NewAdminMeHandler() *AdminMeHandler {
	return &AdminMeHandler{}
}

func (h *AdminMeHandler) Handle(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"id":        c.Locals(middleware.LocalAdminID),
		"email":     c.Locals(middleware.LocalAdminEmail),
		"expiresAt": c.Locals(middleware.LocalTokenExp),
	})
}

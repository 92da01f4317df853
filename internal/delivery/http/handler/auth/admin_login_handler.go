package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kosarinj/lilys-dogboarding-app/internal/delivery/middleware"
	authuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/auth"
)

type AdminLoginHandler struct {
	uc *authuc.AdminLoginUsecase
}

func NewAdminLoginHandler(uc *authuc.AdminLoginUsecase) *AdminLoginHandler {
	return &AdminLoginHandler{uc: uc}
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminLoginHandler) Handle(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json body")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	res, err := h.uc.Execute(c.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, authuc.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, authuc.ErrInactiveAdmin):
		return fiber.NewError(fiber.StatusForbidden, "admin inactive")
	case err != nil:
		return err
	}

	return c.JSON(res)
}

// Logout revokes the token the request was authenticated with.
func (h *AdminLoginHandler) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals(middleware.LocalTokenID).(string)
	exp, _ := c.Locals(middleware.LocalTokenExp).(time.Time)

	err := h.uc.Logout(c.Context(), jti, exp)
	if errors.Is(err, authuc.ErrInvalidCredentials) {
		return fiber.NewError(fiber.StatusBadRequest, "token cannot be revoked")
	}
	if err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

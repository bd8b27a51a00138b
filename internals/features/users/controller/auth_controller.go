// file: internals/features/users/controller/auth_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/users/dto"
	"hadirku_backend/internals/features/users/service"
	helper "hadirku_backend/internals/helpers"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Service: service.NewAuthService(db)}
}

/* ===================== LOGIN ===================== */
// POST /auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	token, worker, err := ctrl.Service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal login")
	}

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		Worker:      dto.FromWorkerModel(*worker),
	})
}

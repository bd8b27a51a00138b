// internals/middlewares/auth/role_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"hadirku_backend/internals/constants"
	helper "hadirku_backend/internals/helpers"
)

// OnlyAdmin membatasi route untuk admin/owner company (manajemen site,
// assignment, dan import pekerja).
func OnlyAdmin(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch helper.GetRoleFromToken(c) {
		case constants.RoleAdmin, constants.RoleOwner:
			return c.Next()
		default:
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorAdmin(feature))
		}
	}
}

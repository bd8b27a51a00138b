// file: internals/helpers/token.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Ambil worker_id dari c.Locals("user_id") (diset auth middleware).
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetWorkerIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "user_id", "User belum login")
}

// Ambil company_id dari token (scope tenant).
func GetCompanyIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return localsUUID(c, "company_id", "Company tidak ditemukan pada token")
}

// Ambil role dari token. Kosong kalau tidak ada.
func GetRoleFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("role").(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func localsUUID(c *fiber.Ctx, key, emptyMsg string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, emptyMsg)
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, emptyMsg)
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, emptyMsg)
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID pada token tidak valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID pada token tidak valid")
	}
}

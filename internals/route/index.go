// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "hadirku_backend/internals/features/attendance/sessions/route"
	sessionService "hadirku_backend/internals/features/attendance/sessions/service"
	companyRoute "hadirku_backend/internals/features/company/route"
	userRoute "hadirku_backend/internals/features/users/route"
	authmw "hadirku_backend/internals/middlewares/auth"
)

// SetupRoutes memasang seluruh route:
//   - /api/auth/*        publik (login)
//   - /api/a/*           butuh token (attendance milik worker sendiri)
//   - /api/a/admin/*     butuh token + role admin/owner
func SetupRoutes(app *fiber.App, db *gorm.DB, engine *sessionService.SessionService) {
	BaseRoutes(app)

	api := app.Group("/api")

	// Publik
	userRoute.AuthRoutes(api, db)

	// Terproteksi token
	protected := api.Group("/a", authmw.AuthMiddleware())
	attendanceRoute.AttendanceRoutes(protected, engine)

	// Admin company
	admin := protected.Group("/admin", authmw.OnlyAdmin("manajemen company"))
	companyRoute.CompanyAdminRoutes(admin, db)
	userRoute.WorkerAdminRoutes(admin, db)
}

package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/users/controller"
	"hadirku_backend/internals/middlewares"
)

// AuthRoutes: endpoint publik (tanpa token)
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	authCtrl := controller.NewAuthController(db)

	auth := r.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), authCtrl.Login)
}

// WorkerAdminRoutes: manajemen worker (butuh role admin/owner)
func WorkerAdminRoutes(r fiber.Router, db *gorm.DB) {
	workerCtrl := controller.NewWorkerController(db)

	workers := r.Group("/workers")
	workers.Post("/", workerCtrl.CreateWorker)
	workers.Post("/import", workerCtrl.ImportWorkers)
	workers.Get("/", workerCtrl.ListWorkers)
}

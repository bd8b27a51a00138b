package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/company/controller"
)

func CompanyAdminRoutes(r fiber.Router, db *gorm.DB) {
	siteCtrl := controller.NewSiteController(db)
	assignCtrl := controller.NewSiteAssignmentController(db)

	// =====================
	// Sites (CRUD)
	// =====================
	sites := r.Group("/sites")
	sites.Post("/", siteCtrl.CreateSite)
	sites.Get("/", siteCtrl.ListSites)
	sites.Get("/:id", siteCtrl.GetSiteByID)
	sites.Patch("/:id", siteCtrl.UpdateSite)
	sites.Delete("/:id", siteCtrl.DeleteSite)

	// =====================
	// Site Assignments
	// =====================
	assignments := r.Group("/site-assignments")
	assignments.Post("/", assignCtrl.AssignWorker)
	assignments.Get("/", assignCtrl.ListBySite)
	assignments.Delete("/:id", assignCtrl.UnassignWorker)
}

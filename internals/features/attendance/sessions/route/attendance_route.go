package route

import (
	"github.com/gofiber/fiber/v2"

	"hadirku_backend/internals/features/attendance/sessions/controller"
	"hadirku_backend/internals/features/attendance/sessions/service"
)

func AttendanceRoutes(r fiber.Router, engine *service.SessionService) {
	ctrl := controller.NewAttendanceController(engine)

	// =====================
	// Attendance Sessions
	// =====================
	g := r.Group("/attendance")
	g.Post("/clock-in", ctrl.ClockIn)
	g.Post("/renew", ctrl.RenewLease)
	g.Post("/clock-out", ctrl.ClockOut)
	g.Post("/report-exit", ctrl.ReportExit)
	g.Get("/me", ctrl.MySessions)
}

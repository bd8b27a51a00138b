// file: internals/features/attendance/sessions/controller/attendance_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/sessions/dto"
	"hadirku_backend/internals/features/attendance/sessions/model"
	"hadirku_backend/internals/features/attendance/sessions/repository"
	"hadirku_backend/internals/features/attendance/sessions/service"
	geofence "hadirku_backend/internals/features/geofence/service"
	helper "hadirku_backend/internals/helpers"
)

type AttendanceController struct {
	Engine *service.SessionService
	Store  repository.SessionRepository
}

func NewAttendanceController(engine *service.SessionService) *AttendanceController {
	return &AttendanceController{Engine: engine, Store: engine.Store}
}

/* ===================== CLOCK-IN ===================== */
// POST /attendance/clock-in
func (ctrl *AttendanceController) ClockIn(c *fiber.Ctx) error {
	workerID, err := helper.GetWorkerIDFromToken(c)
	if err != nil {
		return err
	}
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ClockInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	session, err := ctrl.Engine.OpenSession(c.UserContext(), workerID, companyID, req.SiteID,
		geofence.Coordinate{Lat: *req.Lat, Lon: *req.Lon}, req.AccuracyM)
	if err != nil {
		return engineError(err)
	}

	return helper.JsonCreated(c, "Clock-in berhasil", dto.FromSessionModel(*session))
}

/* ===================== RENEW ===================== */
// POST /attendance/renew
func (ctrl *AttendanceController) RenewLease(c *fiber.Ctx) error {
	workerID, err := helper.GetWorkerIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.RenewLeaseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	updated, err := ctrl.Engine.RenewLease(c.UserContext(), req.SessionID, workerID,
		geofence.Coordinate{Lat: *req.Lat, Lon: *req.Lon})
	if err != nil {
		return engineError(err)
	}

	return helper.JsonOK(c, "Lease diperpanjang", dto.FromSessionModelToLease(*updated))
}

/* ===================== CLOCK-OUT ===================== */
// POST /attendance/clock-out
func (ctrl *AttendanceController) ClockOut(c *fiber.Ctx) error {
	workerID, err := helper.GetWorkerIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ClockOutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	coord := geofence.Coordinate{Lat: *req.Lat, Lon: *req.Lon}
	closed, err := ctrl.Engine.CloseSession(c.UserContext(), req.SessionID, workerID, &coord, model.CloseReasonManual)
	if err != nil {
		return engineError(err)
	}

	return helper.JsonOK(c, "Clock-out berhasil", dto.FromSessionModelToClockOut(*closed))
}

/* ===================== REPORT EXIT ===================== */
// POST /attendance/report-exit
func (ctrl *AttendanceController) ReportExit(c *fiber.Ctx) error {
	workerID, err := helper.GetWorkerIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ReportExitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	closedNow, err := ctrl.Engine.ReportExit(c.UserContext(), req.SessionID, workerID,
		geofence.Coordinate{Lat: *req.Lat, Lon: *req.Lon})
	if err != nil {
		return engineError(err)
	}

	return helper.JsonOK(c, "Laporan exit diterima", dto.ReportExitResponse{
		SessionID: req.SessionID,
		Closed:    closedNow,
	})
}

/* ===================== ME ===================== */
// GET /attendance/me — sesi open saat ini (kalau ada) + riwayat
func (ctrl *AttendanceController) MySessions(c *fiber.Ctx) error {
	workerID, err := helper.GetWorkerIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	rows, total, err := ctrl.Store.ListByWorker(c.UserContext(), workerID, paging.Limit, paging.Offset)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil riwayat sesi")
	}

	history := make([]dto.SessionResponse, 0, len(rows))
	for _, row := range rows {
		history = append(history, dto.FromSessionModel(row))
	}

	// sesi open saat ini; nil kalau worker sedang tidak clock-in
	var current *dto.SessionResponse
	open, err := ctrl.Store.FindOpenByWorker(c.UserContext(), workerID)
	switch {
	case err == nil:
		resp := dto.FromSessionModel(*open)
		current = &resp
	case errors.Is(err, gorm.ErrRecordNotFound):
		// tidak ada sesi open; bukan error
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil sesi aktif")
	}

	return helper.JsonList(c, "Riwayat sesi kehadiran", fiber.Map{
		"current_session": current,
		"history":         history,
	}, helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// engineError memetakan taksonomi error engine ke status HTTP.
// Conflict/precondition adalah outcome rutin di bawah race, bukan 5xx.
func engineError(err error) error {
	switch {
	case errors.Is(err, service.ErrAlreadyOpen):
		return fiber.NewError(fiber.StatusConflict, "Masih ada sesi open; clock-out dulu")
	case errors.Is(err, service.ErrNotAssigned):
		return fiber.NewError(fiber.StatusForbidden, "Anda tidak ditugaskan ke site ini")
	case errors.Is(err, service.ErrOutsideBoundary):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Koordinat di luar boundary site")
	case errors.Is(err, service.ErrNoActiveSession):
		return fiber.NewError(fiber.StatusNotFound, "Tidak ada sesi aktif")
	case errors.Is(err, service.ErrAlreadyClosed):
		return fiber.NewError(fiber.StatusConflict, "Sesi sudah ditutup")
	case errors.Is(err, geofence.ErrBoundaryLookupFailed):
		return fiber.NewError(fiber.StatusBadGateway, "Boundary site tidak bisa diperiksa, coba lagi")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "Terjadi kesalahan, coba lagi")
	}
}

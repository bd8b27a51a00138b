// file: internals/features/users/controller/worker_controller.go
package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"hadirku_backend/internals/constants"
	"hadirku_backend/internals/features/users/dto"
	"hadirku_backend/internals/features/users/model"
	"hadirku_backend/internals/features/users/service"
	helper "hadirku_backend/internals/helpers"
)

type WorkerController struct {
	DB      *gorm.DB
	Service *service.AuthService
}

func NewWorkerController(db *gorm.DB) *WorkerController {
	return &WorkerController{DB: db, Service: service.NewAuthService(db)}
}

/* ===================== CREATE ===================== */
// POST /admin/workers
func (ctrl *WorkerController) CreateWorker(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(req.WorkerEmail))

	var exists int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.WorkerModel{}).
		Where("worker_email = ?", email).
		Count(&exists).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if exists > 0 {
		return fiber.NewError(fiber.StatusConflict, "Email sudah terdaftar")
	}

	hash, err := service.HashPassword(req.WorkerPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses password")
	}

	role := req.WorkerRole
	if role == "" {
		role = constants.RoleWorker
	}

	worker := model.WorkerModel{
		WorkerCompanyID:    companyID,
		WorkerEmail:        email,
		WorkerPasswordHash: hash,
		WorkerFullName:     strings.TrimSpace(req.WorkerFullName),
		WorkerRole:         role,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&worker).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat worker")
	}

	return helper.JsonCreated(c, "Worker berhasil dibuat", dto.FromWorkerModel(worker))
}

/* ===================== IMPORT CSV ===================== */
// POST /admin/workers/import  (multipart, field "file")
func (ctrl *WorkerController) ImportWorkers(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File CSV wajib diunggah (field: file)")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "File tidak bisa dibaca")
	}
	defer f.Close()

	created, skipped, err := ctrl.Service.ImportWorkersCSV(c.UserContext(), companyID, f)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return helper.JsonCreated(c, "Import selesai", dto.ImportWorkersResult{
		Created: created,
		Skipped: skipped,
	})
}

/* ===================== LIST ===================== */
// GET /admin/workers
func (ctrl *WorkerController) ListWorkers(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.WorkerModel{}).
		Where("worker_company_id = ?", companyID).
		Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.WorkerModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("worker_company_id = ?", companyID).
		Order("worker_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.WorkerResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.FromWorkerModel(row))
	}

	return helper.JsonList(c, "Daftar worker", out, helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// file: internals/features/company/controller/assignment_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/company/dto"
	"hadirku_backend/internals/features/company/model"
	"hadirku_backend/internals/features/company/service"
	helper "hadirku_backend/internals/helpers"
)

type SiteAssignmentController struct {
	DB *gorm.DB
}

func NewSiteAssignmentController(db *gorm.DB) *SiteAssignmentController {
	return &SiteAssignmentController{DB: db}
}

/* ===================== ASSIGN ===================== */
// POST /admin/site-assignments
func (ctrl *SiteAssignmentController) AssignWorker(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateSiteAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	// site harus milik company yang sama
	var siteCount int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.SiteModel{}).
		Where("site_id = ? AND site_company_id = ?", req.SiteAssignmentSiteID, companyID).
		Count(&siteCount).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if siteCount == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Site tidak ditemukan di company ini")
	}

	// worker juga harus milik company yang sama
	workerCompany, err := service.NewDirectoryService(ctrl.DB).WorkerCompany(c.UserContext(), req.SiteAssignmentWorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Worker tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if workerCompany != companyID {
		return fiber.NewError(fiber.StatusForbidden, "Worker bukan milik company ini")
	}

	m := req.ToModel(companyID)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Worker sudah ditugaskan ke site ini")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat assignment")
	}

	return helper.JsonCreated(c, "Worker berhasil ditugaskan", dto.FromSiteAssignmentModel(m))
}

/* ===================== UNASSIGN ===================== */
// DELETE /admin/site-assignments/:id
func (ctrl *SiteAssignmentController) UnassignWorker(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	assignmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	tx := ctrl.DB.WithContext(c.UserContext()).
		Where("site_assignment_id = ? AND site_assignment_company_id = ?", assignmentID, companyID).
		Delete(&model.SiteAssignmentModel{})
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus assignment")
	}
	if tx.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Assignment tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Assignment berhasil dihapus", fiber.Map{"site_assignment_id": assignmentID})
}

/* ===================== LIST BY SITE ===================== */
// GET /admin/site-assignments?site_id=...
func (ctrl *SiteAssignmentController) ListBySite(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	siteID, err := uuid.Parse(strings.TrimSpace(c.Query("site_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "site_id wajib dan harus UUID")
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.SiteAssignmentModel{}).
		Where("site_assignment_company_id = ? AND site_assignment_site_id = ?", companyID, siteID).
		Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var rows []model.SiteAssignmentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("site_assignment_company_id = ? AND site_assignment_site_id = ?", companyID, siteID).
		Order("site_assignment_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	out := make([]dto.SiteAssignmentResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.FromSiteAssignmentModel(row))
	}

	return helper.JsonList(c, "Daftar assignment", out, helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

// isUniqueViolation: unique violation Postgres (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// file: internals/features/company/controller/site_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hadirku_backend/internals/features/company/dto"
	"hadirku_backend/internals/features/company/model"
	helper "hadirku_backend/internals/helpers"
)

type SiteController struct {
	DB *gorm.DB
}

func NewSiteController(db *gorm.DB) *SiteController {
	return &SiteController{DB: db}
}

/* ===================== CREATE ===================== */
// POST /admin/sites
func (ctrl *SiteController) CreateSite(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel(companyID)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat site")
	}

	return helper.JsonCreated(c, "Site berhasil dibuat", dto.FromSiteModel(m))
}

/* ===================== LIST ===================== */
// GET /admin/sites
func (ctrl *SiteController) ListSites(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.SiteModel{}).
		Where("site_company_id = ?", companyID).
		Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung site")
	}

	var rows []model.SiteModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("site_company_id = ?", companyID).
		Order("site_created_at DESC").
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil site")
	}

	out := make([]dto.SiteResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.FromSiteModel(row))
	}

	return helper.JsonList(c, "Daftar site", out, helper.BuildPaginationFromOffset(total, paging.Offset, paging.Limit))
}

/* ===================== DETAIL ===================== */
// GET /admin/sites/:id
func (ctrl *SiteController) GetSiteByID(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var row model.SiteModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("site_id = ? AND site_company_id = ?", siteID, companyID).
		Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Site tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "Detail site", dto.FromSiteModel(row))
}

/* ===================== UPDATE (patch eksplisit) ===================== */
// PATCH /admin/sites/:id
func (ctrl *SiteController) UpdateSite(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.UpdateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}

	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Tidak ada perubahan", dto.SiteResponse{SiteID: siteID})
	}

	var updated model.SiteModel
	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.SiteModel{}).
		Where("site_id = ? AND site_company_id = ?", siteID, companyID).
		Clauses(clause.Returning{}).
		Updates(updates).
		Scan(&updated)

	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengubah site")
	}
	if tx.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Site tidak ditemukan")
	}

	return helper.JsonUpdated(c, "Site berhasil diubah", dto.FromSiteModel(updated))
}

/* ===================== DELETE (soft) ===================== */
// DELETE /admin/sites/:id
func (ctrl *SiteController) DeleteSite(c *fiber.Ctx) error {
	companyID, err := helper.GetCompanyIDFromToken(c)
	if err != nil {
		return err
	}

	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	tx := ctrl.DB.WithContext(c.UserContext()).
		Where("site_id = ? AND site_company_id = ?", siteID, companyID).
		Delete(&model.SiteModel{})
	if tx.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus site")
	}
	if tx.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Site tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Site berhasil dihapus", fiber.Map{"site_id": siteID})
}

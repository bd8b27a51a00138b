// file: internals/features/company/dto/site_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "hadirku_backend/internals/features/company/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Create (JSON)
type CreateSiteRequest struct {
	SiteName    string  `json:"site_name" validate:"required,max=160"`
	SiteAddress *string `json:"site_address" validate:"omitempty,max=2000"`

	SiteCenterLat float64 `json:"site_center_lat" validate:"min=-90,max=90"`
	SiteCenterLon float64 `json:"site_center_lon" validate:"min=-180,max=180"`
	SiteRadiusM   float64 `json:"site_radius_m" validate:"required,gt=0,max=100000"`
}

// UpdateSiteRequest: patch eksplisit. Hanya field yang tercantum di sini yang
// boleh diubah; nil berarti "tidak disentuh". Tidak ada pembentukan kolom
// dinamis dari payload bebas.
type UpdateSiteRequest struct {
	SiteName      *string  `json:"site_name" validate:"omitempty,max=160"`
	SiteAddress   *string  `json:"site_address" validate:"omitempty,max=2000"`
	SiteCenterLat *float64 `json:"site_center_lat" validate:"omitempty,min=-90,max=90"`
	SiteCenterLon *float64 `json:"site_center_lon" validate:"omitempty,min=-180,max=180"`
	SiteRadiusM   *float64 `json:"site_radius_m" validate:"omitempty,gt=0,max=100000"`
}

// Updates membangun map kolom → nilai, field per field, setelah request
// lolos validasi. Map kosong berarti tidak ada perubahan.
func (r UpdateSiteRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.SiteName != nil {
		updates["site_name"] = *r.SiteName
	}
	if r.SiteAddress != nil {
		updates["site_address"] = *r.SiteAddress
	}
	if r.SiteCenterLat != nil {
		updates["site_center_lat"] = *r.SiteCenterLat
	}
	if r.SiteCenterLon != nil {
		updates["site_center_lon"] = *r.SiteCenterLon
	}
	if r.SiteRadiusM != nil {
		updates["site_radius_m"] = *r.SiteRadiusM
	}
	return updates
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type SiteResponse struct {
	SiteID        uuid.UUID `json:"site_id"`
	SiteCompanyID uuid.UUID `json:"site_company_id"`

	SiteName    string  `json:"site_name"`
	SiteAddress *string `json:"site_address,omitempty"`

	SiteCenterLat float64 `json:"site_center_lat"`
	SiteCenterLon float64 `json:"site_center_lon"`
	SiteRadiusM   float64 `json:"site_radius_m"`

	SiteCreatedAt time.Time  `json:"site_created_at"`
	SiteUpdatedAt *time.Time `json:"site_updated_at,omitempty"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateSiteRequest) ToModel(companyID uuid.UUID) m.SiteModel {
	return m.SiteModel{
		SiteCompanyID: companyID,
		SiteName:      r.SiteName,
		SiteAddress:   r.SiteAddress,
		SiteCenterLat: r.SiteCenterLat,
		SiteCenterLon: r.SiteCenterLon,
		SiteRadiusM:   r.SiteRadiusM,
	}
}

func FromSiteModel(mdl m.SiteModel) SiteResponse {
	return SiteResponse{
		SiteID:        mdl.SiteID,
		SiteCompanyID: mdl.SiteCompanyID,
		SiteName:      mdl.SiteName,
		SiteAddress:   mdl.SiteAddress,
		SiteCenterLat: mdl.SiteCenterLat,
		SiteCenterLon: mdl.SiteCenterLon,
		SiteRadiusM:   mdl.SiteRadiusM,
		SiteCreatedAt: mdl.SiteCreatedAt,
		SiteUpdatedAt: mdl.SiteUpdatedAt,
	}
}

// file: internals/features/company/dto/assignment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "hadirku_backend/internals/features/company/model"
)

// Create (JSON)
type CreateSiteAssignmentRequest struct {
	SiteAssignmentWorkerID uuid.UUID `json:"site_assignment_worker_id" validate:"required"`
	SiteAssignmentSiteID   uuid.UUID `json:"site_assignment_site_id" validate:"required"`
}

type SiteAssignmentResponse struct {
	SiteAssignmentID        uuid.UUID `json:"site_assignment_id"`
	SiteAssignmentCompanyID uuid.UUID `json:"site_assignment_company_id"`
	SiteAssignmentWorkerID  uuid.UUID `json:"site_assignment_worker_id"`
	SiteAssignmentSiteID    uuid.UUID `json:"site_assignment_site_id"`
	SiteAssignmentCreatedAt time.Time `json:"site_assignment_created_at"`
}

func (r CreateSiteAssignmentRequest) ToModel(companyID uuid.UUID) m.SiteAssignmentModel {
	return m.SiteAssignmentModel{
		SiteAssignmentCompanyID: companyID,
		SiteAssignmentWorkerID:  r.SiteAssignmentWorkerID,
		SiteAssignmentSiteID:    r.SiteAssignmentSiteID,
	}
}

func FromSiteAssignmentModel(mdl m.SiteAssignmentModel) SiteAssignmentResponse {
	return SiteAssignmentResponse{
		SiteAssignmentID:        mdl.SiteAssignmentID,
		SiteAssignmentCompanyID: mdl.SiteAssignmentCompanyID,
		SiteAssignmentWorkerID:  mdl.SiteAssignmentWorkerID,
		SiteAssignmentSiteID:    mdl.SiteAssignmentSiteID,
		SiteAssignmentCreatedAt: mdl.SiteAssignmentCreatedAt,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteAssignmentModel: penugasan worker ke site. Engine hanya membaca tabel
// ini (lewat Directory) untuk otorisasi "boleh nggak worker ini clock-in
// di site ini"; tidak pernah menulis.
type SiteAssignmentModel struct {
	SiteAssignmentID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:site_assignment_id" json:"site_assignment_id"`

	SiteAssignmentCompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_site_assignments_company;column:site_assignment_company_id" json:"site_assignment_company_id"`
	SiteAssignmentWorkerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_site_assignments_worker;column:site_assignment_worker_id" json:"site_assignment_worker_id"`
	SiteAssignmentSiteID    uuid.UUID `gorm:"type:uuid;not null;index:idx_site_assignments_site;column:site_assignment_site_id" json:"site_assignment_site_id"`

	SiteAssignmentCreatedAt time.Time      `gorm:"column:site_assignment_created_at;autoCreateTime" json:"site_assignment_created_at"`
	SiteAssignmentDeletedAt gorm.DeletedAt `gorm:"column:site_assignment_deleted_at;index" json:"site_assignment_deleted_at,omitempty"`
}

func (SiteAssignmentModel) TableName() string { return "site_assignments" }

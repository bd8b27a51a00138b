package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkerModel struct {
	WorkerID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:worker_id" json:"worker_id"`

	WorkerCompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_workers_company;column:worker_company_id" json:"worker_company_id"`

	WorkerEmail        string `gorm:"type:varchar(255);not null;index:idx_workers_email;column:worker_email" json:"worker_email"`
	WorkerPasswordHash string `gorm:"type:varchar(255);not null;column:worker_password_hash" json:"-"`
	WorkerFullName     string `gorm:"type:varchar(160);not null;column:worker_full_name" json:"worker_full_name"`

	// worker | admin | owner
	WorkerRole string `gorm:"type:varchar(20);not null;default:'worker';column:worker_role" json:"worker_role"`

	WorkerIsActive bool `gorm:"not null;default:true;column:worker_is_active" json:"worker_is_active"`

	WorkerCreatedAt time.Time      `gorm:"column:worker_created_at;autoCreateTime" json:"worker_created_at"`
	WorkerUpdatedAt *time.Time     `gorm:"column:worker_updated_at;autoUpdateTime" json:"worker_updated_at,omitempty"`
	WorkerDeletedAt gorm.DeletedAt `gorm:"column:worker_deleted_at;index" json:"worker_deleted_at,omitempty"`
}

func (WorkerModel) TableName() string { return "workers" }

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyModel struct {
	CompanyID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:company_id" json:"company_id"`

	CompanyName string `gorm:"type:varchar(160);not null;column:company_name" json:"company_name"`

	CompanyCreatedAt time.Time      `gorm:"column:company_created_at;autoCreateTime" json:"company_created_at"`
	CompanyUpdatedAt *time.Time     `gorm:"column:company_updated_at;autoUpdateTime" json:"company_updated_at,omitempty"`
	CompanyDeletedAt gorm.DeletedAt `gorm:"column:company_deleted_at;index" json:"company_deleted_at,omitempty"`
}

func (CompanyModel) TableName() string { return "companies" }

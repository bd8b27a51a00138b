package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteModel: lokasi kerja dengan boundary geofence lingkaran
// (titik pusat + radius meter). Geometri poligon/PostGIS sengaja tidak
// dipakai; containment dihitung oleh geofence oracle dari tiga kolom ini.
type SiteModel struct {
	SiteID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:site_id" json:"site_id"`

	SiteCompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_sites_company;column:site_company_id" json:"site_company_id"`

	SiteName    string  `gorm:"type:varchar(160);not null;column:site_name" json:"site_name"`
	SiteAddress *string `gorm:"type:text;column:site_address" json:"site_address,omitempty"`

	SiteCenterLat float64 `gorm:"not null;column:site_center_lat" json:"site_center_lat"`
	SiteCenterLon float64 `gorm:"not null;column:site_center_lon" json:"site_center_lon"`
	SiteRadiusM   float64 `gorm:"not null;column:site_radius_m" json:"site_radius_m"`

	SiteCreatedAt time.Time      `gorm:"column:site_created_at;autoCreateTime" json:"site_created_at"`
	SiteUpdatedAt *time.Time     `gorm:"column:site_updated_at;autoUpdateTime" json:"site_updated_at,omitempty"`
	SiteDeletedAt gorm.DeletedAt `gorm:"column:site_deleted_at;index" json:"site_deleted_at,omitempty"`
}

func (SiteModel) TableName() string { return "sites" }

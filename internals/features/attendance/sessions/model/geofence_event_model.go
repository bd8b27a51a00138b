package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const GeofenceEventTypeExit = "exit"

// GeofenceEventModel: audit trail append-only untuk sinyal boundary dari
// luar (mis. aplikasi mobile melaporkan worker keluar boundary).
// Write-once: engine tidak pernah meng-update atau menghapus baris ini.
type GeofenceEventModel struct {
	GeofenceEventID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:geofence_event_id" json:"geofence_event_id"`

	GeofenceEventCompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_geofence_events_company;column:geofence_event_company_id" json:"geofence_event_company_id"`
	GeofenceEventWorkerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_geofence_events_worker;column:geofence_event_worker_id" json:"geofence_event_worker_id"`
	GeofenceEventSiteID    uuid.UUID `gorm:"type:uuid;not null;column:geofence_event_site_id" json:"geofence_event_site_id"`
	GeofenceEventSessionID uuid.UUID `gorm:"type:uuid;not null;index:idx_geofence_events_session;column:geofence_event_session_id" json:"geofence_event_session_id"`

	GeofenceEventType string `gorm:"type:varchar(20);not null;column:geofence_event_type" json:"geofence_event_type"`

	GeofenceEventLat float64 `gorm:"not null;column:geofence_event_lat" json:"geofence_event_lat"`
	GeofenceEventLon float64 `gorm:"not null;column:geofence_event_lon" json:"geofence_event_lon"`

	// payload mentah dari device, untuk rekonsiliasi manual
	GeofenceEventPayload datatypes.JSON `gorm:"column:geofence_event_payload" json:"geofence_event_payload,omitempty"`

	GeofenceEventRecordedAt time.Time `gorm:"not null;column:geofence_event_recorded_at" json:"geofence_event_recorded_at"`
}

func (GeofenceEventModel) TableName() string { return "geofence_events" }

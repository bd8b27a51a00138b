package model

import (
	"time"

	"github.com/google/uuid"
)

// Alasan sebuah sesi ditutup. Tiga jalur close yang berbeda konvergen ke
// satu conditional update; alasan yang terekam adalah milik penutup yang
// menang race.
const (
	CloseReasonManual           = "manual"
	CloseReasonGeofenceExit     = "auto_geofence_exit"
	CloseReasonHeartbeatExpired = "auto_heartbeat_expired"
)

// AttendanceSessionModel: satu baris per clock-in.
//
// Aturan mutasi (dijaga lewat conditional write di repository):
//   - worker/site/company/clock-in: immutable setelah create
//   - lease_expires_at & renewal_count: hanya maju, hanya selama is_open
//   - clock_out_*: diisi tepat sekali saat close; is_open hanya pernah
//     transisi true → false, tidak ada reopen
//
// Sesi tidak pernah dihapus oleh engine; retensi urusan kolaborator.
type AttendanceSessionModel struct {
	AttendanceSessionID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_session_id" json:"attendance_session_id"`

	AttendanceSessionWorkerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_sessions_worker;column:attendance_session_worker_id" json:"attendance_session_worker_id"`
	AttendanceSessionSiteID    uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_sessions_site;column:attendance_session_site_id" json:"attendance_session_site_id"`
	AttendanceSessionCompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_sessions_company;column:attendance_session_company_id" json:"attendance_session_company_id"`

	AttendanceSessionClockInAt        time.Time `gorm:"not null;column:attendance_session_clock_in_at" json:"attendance_session_clock_in_at"`
	AttendanceSessionClockInLat       float64   `gorm:"not null;column:attendance_session_clock_in_lat" json:"attendance_session_clock_in_lat"`
	AttendanceSessionClockInLon       float64   `gorm:"not null;column:attendance_session_clock_in_lon" json:"attendance_session_clock_in_lon"`
	AttendanceSessionClockInAccuracyM float64   `gorm:"not null;default:0;column:attendance_session_clock_in_accuracy_m" json:"attendance_session_clock_in_accuracy_m"`

	AttendanceSessionClockOutAt     *time.Time `gorm:"column:attendance_session_clock_out_at" json:"attendance_session_clock_out_at,omitempty"`
	AttendanceSessionClockOutLat    *float64   `gorm:"column:attendance_session_clock_out_lat" json:"attendance_session_clock_out_lat,omitempty"`
	AttendanceSessionClockOutLon    *float64   `gorm:"column:attendance_session_clock_out_lon" json:"attendance_session_clock_out_lon,omitempty"`
	AttendanceSessionClockOutReason *string    `gorm:"type:varchar(30);column:attendance_session_clock_out_reason" json:"attendance_session_clock_out_reason,omitempty"`

	AttendanceSessionLeaseExpiresAt time.Time `gorm:"not null;index:idx_attendance_sessions_lease;column:attendance_session_lease_expires_at" json:"attendance_session_lease_expires_at"`
	AttendanceSessionRenewalCount   int       `gorm:"not null;default:0;column:attendance_session_renewal_count" json:"attendance_session_renewal_count"`

	AttendanceSessionIsOpen bool `gorm:"not null;default:true;column:attendance_session_is_open" json:"attendance_session_is_open"`

	AttendanceSessionCreatedAt time.Time  `gorm:"column:attendance_session_created_at;autoCreateTime" json:"attendance_session_created_at"`
	AttendanceSessionUpdatedAt *time.Time `gorm:"column:attendance_session_updated_at;autoUpdateTime" json:"attendance_session_updated_at,omitempty"`
}

func (AttendanceSessionModel) TableName() string { return "attendance_sessions" }

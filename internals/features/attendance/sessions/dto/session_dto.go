// file: internals/features/attendance/sessions/dto/session_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "hadirku_backend/internals/features/attendance/sessions/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Koordinat pakai pointer + required: payload yang tidak membawa lat/lon
// ditolak di boundary, bukan diam-diam jadi (0,0).

// Clock-in (JSON)
type ClockInRequest struct {
	SiteID    uuid.UUID `json:"site_id" validate:"required"`
	Lat       *float64  `json:"lat" validate:"required,min=-90,max=90"`
	Lon       *float64  `json:"lon" validate:"required,min=-180,max=180"`
	AccuracyM float64   `json:"accuracy_m" validate:"omitempty,min=0,max=10000"`
}

// Renew lease (JSON)
type RenewLeaseRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	Lat       *float64  `json:"lat" validate:"required,min=-90,max=90"`
	Lon       *float64  `json:"lon" validate:"required,min=-180,max=180"`
}

// Clock-out manual (JSON)
type ClockOutRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	Lat       *float64  `json:"lat" validate:"required,min=-90,max=90"`
	Lon       *float64  `json:"lon" validate:"required,min=-180,max=180"`
}

// Laporan keluar boundary dari device (JSON)
type ReportExitRequest struct {
	SessionID uuid.UUID `json:"session_id" validate:"required"`
	Lat       *float64  `json:"lat" validate:"required,min=-90,max=90"`
	Lon       *float64  `json:"lon" validate:"required,min=-180,max=180"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type SessionResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	WorkerID  uuid.UUID `json:"worker_id"`
	SiteID    uuid.UUID `json:"site_id"`
	CompanyID uuid.UUID `json:"company_id"`

	ClockInAt        time.Time `json:"clock_in_at"`
	ClockInLat       float64   `json:"clock_in_lat"`
	ClockInLon       float64   `json:"clock_in_lon"`
	ClockInAccuracyM float64   `json:"clock_in_accuracy_m"`

	ClockOutAt     *time.Time `json:"clock_out_at,omitempty"`
	ClockOutLat    *float64   `json:"clock_out_lat,omitempty"`
	ClockOutLon    *float64   `json:"clock_out_lon,omitempty"`
	ClockOutReason *string    `json:"clock_out_reason,omitempty"`

	LeaseExpiresAt time.Time `json:"lease_expires_at"`
	RenewalCount   int       `json:"renewal_count"`
	IsOpen         bool      `json:"is_open"`
}

type LeaseResponse struct {
	SessionID      uuid.UUID `json:"session_id"`
	LeaseExpiresAt time.Time `json:"lease_expires_at"`
	RenewalCount   int       `json:"renewal_count"`
}

type ClockOutResponse struct {
	SessionID      uuid.UUID  `json:"session_id"`
	ClockInAt      time.Time  `json:"clock_in_at"`
	ClockOutAt     *time.Time `json:"clock_out_at"`
	ClockOutReason *string    `json:"clock_out_reason"`
}

type ReportExitResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	Closed    bool      `json:"closed"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func FromSessionModel(mdl m.AttendanceSessionModel) SessionResponse {
	return SessionResponse{
		SessionID:        mdl.AttendanceSessionID,
		WorkerID:         mdl.AttendanceSessionWorkerID,
		SiteID:           mdl.AttendanceSessionSiteID,
		CompanyID:        mdl.AttendanceSessionCompanyID,
		ClockInAt:        mdl.AttendanceSessionClockInAt,
		ClockInLat:       mdl.AttendanceSessionClockInLat,
		ClockInLon:       mdl.AttendanceSessionClockInLon,
		ClockInAccuracyM: mdl.AttendanceSessionClockInAccuracyM,
		ClockOutAt:       mdl.AttendanceSessionClockOutAt,
		ClockOutLat:      mdl.AttendanceSessionClockOutLat,
		ClockOutLon:      mdl.AttendanceSessionClockOutLon,
		ClockOutReason:   mdl.AttendanceSessionClockOutReason,
		LeaseExpiresAt:   mdl.AttendanceSessionLeaseExpiresAt,
		RenewalCount:     mdl.AttendanceSessionRenewalCount,
		IsOpen:           mdl.AttendanceSessionIsOpen,
	}
}

func FromSessionModelToLease(mdl m.AttendanceSessionModel) LeaseResponse {
	return LeaseResponse{
		SessionID:      mdl.AttendanceSessionID,
		LeaseExpiresAt: mdl.AttendanceSessionLeaseExpiresAt,
		RenewalCount:   mdl.AttendanceSessionRenewalCount,
	}
}

func FromSessionModelToClockOut(mdl m.AttendanceSessionModel) ClockOutResponse {
	return ClockOutResponse{
		SessionID:      mdl.AttendanceSessionID,
		ClockInAt:      mdl.AttendanceSessionClockInAt,
		ClockOutAt:     mdl.AttendanceSessionClockOutAt,
		ClockOutReason: mdl.AttendanceSessionClockOutReason,
	}
}

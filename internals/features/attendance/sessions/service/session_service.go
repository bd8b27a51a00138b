// file: internals/features/attendance/sessions/service/session_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/configs"
	"hadirku_backend/internals/features/attendance/sessions/model"
	"hadirku_backend/internals/features/attendance/sessions/repository"
	geofence "hadirku_backend/internals/features/geofence/service"
)

// Directory menjawab otorisasi penempatan. Engine hanya membaca; mutasi
// assignment ada di fitur company.
type Directory interface {
	IsWorkerAssigned(ctx context.Context, workerID, siteID uuid.UUID) (bool, error)
}

// SessionService adalah engine sesi kehadiran: state machine
// open → renew* → close, dengan tiga jalur close (manual, geofence exit,
// lease kadaluarsa) yang semuanya lewat conditional write yang sama.
//
// Engine tidak meng-cache state sesi antar panggilan; store adalah satu-
// satunya sumber kebenaran.
type SessionService struct {
	Store     repository.SessionRepository
	Oracle    geofence.Oracle
	Directory Directory

	// Now dan LeaseDuration bisa di-inject supaya test bisa memajukan
	// waktu secara deterministik.
	Now           func() time.Time
	LeaseDuration time.Duration
}

func NewSessionService(store repository.SessionRepository, oracle geofence.Oracle, directory Directory) *SessionService {
	return &SessionService{
		Store:         store,
		Oracle:        oracle,
		Directory:     directory,
		Now:           time.Now,
		LeaseDuration: configs.LeaseDuration,
	}
}

/* ===================== OPEN ===================== */

// OpenSession: clock-in. Precondition dicek berurutan (assignment,
// containment), tapi keunikan "satu sesi open per worker" tidak dicek
// lewat read — satu-satunya titik serialisasi adalah insert bersyarat di
// store, supaya dua clock-in bersamaan tidak dua-duanya lolos.
func (s *SessionService) OpenSession(ctx context.Context, workerID, companyID, siteID uuid.UUID, coord geofence.Coordinate, accuracyM float64) (*model.AttendanceSessionModel, error) {
	assigned, err := s.Directory.IsWorkerAssigned(ctx, workerID, siteID)
	if err != nil {
		return nil, fmt.Errorf("cek assignment gagal: %w", err)
	}
	if !assigned {
		return nil, ErrNotAssigned
	}

	inside, err := s.Oracle.IsInside(ctx, coord, siteID)
	if err != nil {
		// fail-closed: kalau boundary tidak bisa di-resolve, tolak masuk
		return nil, err
	}
	if !inside {
		return nil, ErrOutsideBoundary
	}

	now := s.Now()
	session := &model.AttendanceSessionModel{
		AttendanceSessionWorkerID:         workerID,
		AttendanceSessionSiteID:           siteID,
		AttendanceSessionCompanyID:        companyID,
		AttendanceSessionClockInAt:        now,
		AttendanceSessionClockInLat:       coord.Lat,
		AttendanceSessionClockInLon:       coord.Lon,
		AttendanceSessionClockInAccuracyM: accuracyM,
		AttendanceSessionLeaseExpiresAt:   now.Add(s.LeaseDuration),
		AttendanceSessionIsOpen:           true,
	}

	if err := s.Store.InsertIfNoneOpen(ctx, session); err != nil {
		if errors.Is(err, repository.ErrWorkerHasOpenSession) {
			return nil, ErrAlreadyOpen
		}
		return nil, err
	}
	return session, nil
}

/* ===================== RENEW ===================== */

// RenewLease: heartbeat kehadiran. Kalau koordinat masih di dalam boundary,
// lease maju sebesar LeaseDuration dalam satu update bersyarat. Kalau di
// luar, sesi langsung ditutup auto_geofence_exit — kegagalan renew dan
// auto-close adalah satu transisi, bukan dua.
//
// Renew yang kalah race dengan close mana pun mengamati nol baris kena dan
// berakhir ErrNoActiveSession; tidak pernah ada unconditional write yang
// bisa menghidupkan kembali sesi yang sudah ditutup.
func (s *SessionService) RenewLease(ctx context.Context, sessionID, workerID uuid.UUID, coord geofence.Coordinate) (*model.AttendanceSessionModel, error) {
	session, err := s.Store.FindByIDForWorker(ctx, sessionID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}
	if !session.AttendanceSessionIsOpen {
		return nil, ErrNoActiveSession
	}

	inside, err := s.Oracle.IsInside(ctx, coord, session.AttendanceSessionSiteID)
	if err != nil {
		// dependency error: jangan tutup sesi, biarkan pemanggil retry
		return nil, err
	}

	if !inside {
		if _, err := s.Store.CloseIfOpen(ctx, sessionID, workerID, s.Now(), &coord, model.CloseReasonGeofenceExit); err != nil {
			if errors.Is(err, repository.ErrSessionNotOpen) {
				// aktor lain sudah menutup duluan; sama-sama benar
				return nil, ErrNoActiveSession
			}
			return nil, err
		}
		return nil, ErrOutsideBoundary
	}

	updated, err := s.Store.RenewIfOpen(ctx, sessionID, workerID, s.Now().Add(s.LeaseDuration))
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotOpen) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}
	return updated, nil
}

/* ===================== CLOSE ===================== */

// CloseSession: transisi close tunggal untuk ketiga alasan. Siapa pun yang
// sampai ke store duluan menang dan menentukan clock_out_reason; yang
// kalah mendapat ErrAlreadyClosed, bukan fault.
func (s *SessionService) CloseSession(ctx context.Context, sessionID, workerID uuid.UUID, coord *geofence.Coordinate, reason string) (*model.AttendanceSessionModel, error) {
	closed, err := s.Store.CloseIfOpen(ctx, sessionID, workerID, s.Now(), coord, reason)
	if err == nil {
		return closed, nil
	}
	if !errors.Is(err, repository.ErrSessionNotOpen) {
		return nil, err
	}

	// nol baris: bedakan "sesi tidak ada / bukan milik worker" dari
	// "sudah ditutup aktor lain"
	existing, findErr := s.Store.FindByIDForWorker(ctx, sessionID, workerID)
	if findErr != nil {
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, findErr
	}
	if !existing.AttendanceSessionIsOpen {
		return nil, ErrAlreadyClosed
	}
	return nil, ErrNoActiveSession
}

/* ===================== REPORT EXIT ===================== */

// ReportExit: sinyal "keluar boundary" dari luar (aplikasi mobile).
// Event audit selalu ditulis (append-only), lalu sesi ditutup
// auto_geofence_exit. Sesi yang sudah keburu ditutup aktor lain bukan
// error: pelapor tetap dijawab sukses.
func (s *SessionService) ReportExit(ctx context.Context, sessionID, workerID uuid.UUID, coord geofence.Coordinate) (bool, error) {
	session, err := s.Store.FindByIDForWorker(ctx, sessionID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNoActiveSession
		}
		return false, err
	}

	event := &model.GeofenceEventModel{
		GeofenceEventCompanyID:  session.AttendanceSessionCompanyID,
		GeofenceEventWorkerID:   workerID,
		GeofenceEventSiteID:     session.AttendanceSessionSiteID,
		GeofenceEventSessionID:  sessionID,
		GeofenceEventType:       model.GeofenceEventTypeExit,
		GeofenceEventLat:        coord.Lat,
		GeofenceEventLon:        coord.Lon,
		GeofenceEventRecordedAt: s.Now(),
	}
	if err := s.Store.AppendGeofenceEvent(ctx, event); err != nil {
		return false, err
	}

	_, err = s.CloseSession(ctx, sessionID, workerID, &coord, model.CloseReasonGeofenceExit)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrAlreadyClosed):
		return false, nil
	default:
		return false, err
	}
}

/* ===================== SWEEP ===================== */

const sweepBatchSize = 100

// CloseExpired menutup semua sesi open yang lease-nya sudah lewat.
// Scan-lalu-close sengaja bukan satu transaksi: tiap close atomik dan
// idempotent sendiri, jadi tick sweep yang tumpang tindih dengan close
// manual paling banter "double-attempt" yang tidak berbahaya.
func (s *SessionService) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	closed := 0
	for {
		expired, err := s.Store.FindExpired(ctx, now, sweepBatchSize)
		if err != nil {
			return closed, err
		}
		if len(expired) == 0 {
			return closed, nil
		}

		for _, session := range expired {
			// tanpa koordinat: lokasi terakhir yang terekam yang berlaku
			_, err := s.Store.CloseIfOpen(ctx,
				session.AttendanceSessionID,
				session.AttendanceSessionWorkerID,
				now, nil, model.CloseReasonHeartbeatExpired)
			if err != nil {
				if errors.Is(err, repository.ErrSessionNotOpen) {
					// keburu ditutup manual/exit; no-op
					log.Printf("[SWEEPER] sesi %s sudah ditutup aktor lain, skip", session.AttendanceSessionID)
					continue
				}
				return closed, err
			}
			closed++
		}

		if len(expired) < sweepBatchSize {
			return closed, nil
		}
	}
}

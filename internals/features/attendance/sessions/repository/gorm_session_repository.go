// file: internals/features/attendance/sessions/repository/gorm_session_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hadirku_backend/internals/features/attendance/sessions/model"
	geofence "hadirku_backend/internals/features/geofence/service"
)

const storeTimeout = 3 * time.Second

type GormSessionRepository struct {
	DB *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{DB: db}
}

// InsertIfNoneOpen mengandalkan partial unique index
// uq_attendance_sessions_one_open_per_worker (worker_id WHERE is_open):
// dua clock-in bersamaan untuk worker yang sama diserialisasi oleh store,
// yang kalah kena unique violation.
func (r *GormSessionRepository) InsertIfNoneOpen(ctx context.Context, session *model.AttendanceSessionModel) error {
	qctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := r.DB.WithContext(qctx).Create(session).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrWorkerHasOpenSession
		}
		return err
	}
	return nil
}

func (r *GormSessionRepository) FindByIDForWorker(ctx context.Context, sessionID, workerID uuid.UUID) (*model.AttendanceSessionModel, error) {
	qctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var row model.AttendanceSessionModel
	err := r.DB.WithContext(qctx).
		Where("attendance_session_id = ? AND attendance_session_worker_id = ?", sessionID, workerID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormSessionRepository) FindOpenByWorker(ctx context.Context, workerID uuid.UUID) (*model.AttendanceSessionModel, error) {
	qctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var row model.AttendanceSessionModel
	err := r.DB.WithContext(qctx).
		Where("attendance_session_worker_id = ? AND attendance_session_is_open = TRUE", workerID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *GormSessionRepository) RenewIfOpen(ctx context.Context, sessionID, workerID uuid.UUID, newExpiry time.Time) (*model.AttendanceSessionModel, error) {
	qctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	// RETURNING mengisi updated langsung dari UPDATE-nya; jangan tambah
	// query kedua (Scan) karena WHERE-nya mereferensi kolom yang baru
	// saja diubah.
	var updated model.AttendanceSessionModel
	tx := r.DB.WithContext(qctx).
		Model(&updated).
		Where("attendance_session_id = ?", sessionID).
		Where("attendance_session_worker_id = ?", workerID).
		Where("attendance_session_is_open = TRUE").
		// lease hanya boleh maju
		Where("attendance_session_lease_expires_at <= ?", newExpiry).
		Clauses(clause.Returning{}).
		Updates(map[string]interface{}{
			"attendance_session_lease_expires_at": newExpiry,
			"attendance_session_renewal_count":    gorm.Expr("attendance_session_renewal_count + 1"),
		})

	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrSessionNotOpen
	}
	return &updated, nil
}

func (r *GormSessionRepository) CloseIfOpen(ctx context.Context, sessionID, workerID uuid.UUID, closedAt time.Time, coordinate *geofence.Coordinate, reason string) (*model.AttendanceSessionModel, error) {
	qctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	updates := map[string]interface{}{
		"attendance_session_is_open":          false,
		"attendance_session_clock_out_at":     closedAt,
		"attendance_session_clock_out_reason": reason,
	}
	if coordinate != nil {
		updates["attendance_session_clock_out_lat"] = coordinate.Lat
		updates["attendance_session_clock_out_lon"] = coordinate.Lon
	}

	// Sama dengan RenewIfOpen: hasil close dibaca lewat RETURNING, bukan
	// query susulan — query susulan dengan filter is_open = TRUE tidak
	// akan pernah menemukan baris yang barusan ditutup.
	var updated model.AttendanceSessionModel
	tx := r.DB.WithContext(qctx).
		Model(&updated).
		Where("attendance_session_id = ?", sessionID).
		Where("attendance_session_worker_id = ?", workerID).
		Where("attendance_session_is_open = TRUE").
		Clauses(clause.Returning{}).
		Updates(updates)

	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrSessionNotOpen
	}
	return &updated, nil
}

func (r *GormSessionRepository) FindExpired(ctx context.Context, now time.Time, limit int) ([]model.AttendanceSessionModel, error) {
	qctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var rows []model.AttendanceSessionModel
	err := r.DB.WithContext(qctx).
		Where("attendance_session_is_open = TRUE").
		Where("attendance_session_lease_expires_at < ?", now).
		Order("attendance_session_lease_expires_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormSessionRepository) ListByWorker(ctx context.Context, workerID uuid.UUID, limit, offset int) ([]model.AttendanceSessionModel, int64, error) {
	qctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var total int64
	if err := r.DB.WithContext(qctx).
		Model(&model.AttendanceSessionModel{}).
		Where("attendance_session_worker_id = ?", workerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AttendanceSessionModel
	if err := r.DB.WithContext(qctx).
		Where("attendance_session_worker_id = ?", workerID).
		Order("attendance_session_clock_in_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *GormSessionRepository) AppendGeofenceEvent(ctx context.Context, event *model.GeofenceEventModel) error {
	qctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return r.DB.WithContext(qctx).Create(event).Error
}

// isUniqueViolation: unique violation Postgres (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

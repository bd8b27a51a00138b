// file: internals/features/attendance/sessions/repository/session_repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"hadirku_backend/internals/features/attendance/sessions/model"
	geofence "hadirku_backend/internals/features/geofence/service"
)

var (
	// ErrWorkerHasOpenSession: insert ditolak karena worker masih punya sesi
	// open (partial unique index di store).
	ErrWorkerHasOpenSession = errors.New("worker masih punya sesi open")

	// ErrSessionNotOpen: conditional update tidak mengenai baris apa pun —
	// sesi tidak ada, bukan milik worker, atau sudah ditutup aktor lain.
	ErrSessionNotOpen = errors.New("sesi tidak dalam keadaan open")
)

// SessionRepository adalah kontrak Session Store. Semua mutasi adalah
// conditional write tunggal: kondisinya meng-encode precondition
// (is_open = TRUE dsb.), bukan read-then-write dua round trip. Itu yang
// membuat close idempotent dan race renew-vs-close tidak bisa
// membangkitkan sesi yang sudah ditutup.
type SessionRepository interface {
	// InsertIfNoneOpen menyisipkan sesi baru, atomik terhadap open lain
	// untuk worker yang sama. ErrWorkerHasOpenSession kalau sudah ada.
	InsertIfNoneOpen(ctx context.Context, session *model.AttendanceSessionModel) error

	// FindByIDForWorker mengambil sesi milik worker, open maupun closed.
	// gorm.ErrRecordNotFound kalau tidak ada.
	FindByIDForWorker(ctx context.Context, sessionID, workerID uuid.UUID) (*model.AttendanceSessionModel, error)

	// FindOpenByWorker mengambil sesi open milik worker (maksimal satu).
	FindOpenByWorker(ctx context.Context, workerID uuid.UUID) (*model.AttendanceSessionModel, error)

	// RenewIfOpen memajukan lease dan menaikkan renewal_count dalam satu
	// update bersyarat (is_open = TRUE dan lease hanya maju).
	// ErrSessionNotOpen kalau tidak ada baris yang kena.
	RenewIfOpen(ctx context.Context, sessionID, workerID uuid.UUID, newExpiry time.Time) (*model.AttendanceSessionModel, error)

	// CloseIfOpen menutup sesi dalam satu update bersyarat. coordinate nil
	// berarti lokasi close tidak diketahui (jalur sweeper).
	// ErrSessionNotOpen kalau sudah ditutup aktor lain.
	CloseIfOpen(ctx context.Context, sessionID, workerID uuid.UUID, closedAt time.Time, coordinate *geofence.Coordinate, reason string) (*model.AttendanceSessionModel, error)

	// FindExpired mengambil sesi open yang lease-nya sudah lewat.
	FindExpired(ctx context.Context, now time.Time, limit int) ([]model.AttendanceSessionModel, error)

	// ListByWorker: riwayat sesi worker, terbaru dulu.
	ListByWorker(ctx context.Context, workerID uuid.UUID, limit, offset int) ([]model.AttendanceSessionModel, int64, error)

	// AppendGeofenceEvent menulis satu baris audit, write-once.
	AppendGeofenceEvent(ctx context.Context, event *model.GeofenceEventModel) error
}

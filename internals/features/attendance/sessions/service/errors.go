// file: internals/features/attendance/sessions/service/errors.go
package service

import "errors"

// Taksonomi error engine. Conflict (AlreadyOpen/AlreadyClosed) dan
// precondition (NoActiveSession/OutsideBoundary) adalah hasil rutin dari
// aktor yang balapan — dilaporkan ke pemanggil, tidak pernah dicatat
// sebagai fault sistem. BoundaryLookupFailed (di package geofence) adalah
// error dependency: retryable, fail-closed untuk clock-in.
var (
	// worker masih punya sesi open; insert kedua ditolak store
	ErrAlreadyOpen = errors.New("masih ada sesi kehadiran yang open")

	// worker tidak ditugaskan ke site tersebut
	ErrNotAssigned = errors.New("worker tidak ditugaskan ke site ini")

	// koordinat berada di luar boundary site
	ErrOutsideBoundary = errors.New("koordinat di luar boundary site")

	// sesi tidak ada, bukan milik worker, atau sudah tidak open
	ErrNoActiveSession = errors.New("tidak ada sesi aktif")

	// sesi sudah ditutup aktor lain; outcome jinak di bawah race
	ErrAlreadyClosed = errors.New("sesi sudah ditutup")
)

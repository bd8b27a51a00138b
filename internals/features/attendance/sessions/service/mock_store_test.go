package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hadirku_backend/internals/features/attendance/sessions/model"
	"hadirku_backend/internals/features/attendance/sessions/repository"
	geofence "hadirku_backend/internals/features/geofence/service"
)

// ── Mock SessionRepository ──
//
// In-memory store yang meniru semantik conditional write Postgres:
// tiap mutasi mengecek precondition-nya di bawah satu lock, persis seperti
// satu statement UPDATE ... WHERE / insert dengan partial unique index.

type mockSessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*model.AttendanceSessionModel
	events   []model.GeofenceEventModel
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[uuid.UUID]*model.AttendanceSessionModel)}
}

func (m *mockSessionStore) InsertIfNoneOpen(_ context.Context, session *model.AttendanceSessionModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		if s.AttendanceSessionWorkerID == session.AttendanceSessionWorkerID && s.AttendanceSessionIsOpen {
			return repository.ErrWorkerHasOpenSession
		}
	}
	if session.AttendanceSessionID == uuid.Nil {
		session.AttendanceSessionID = uuid.New()
	}
	cp := *session
	m.sessions[session.AttendanceSessionID] = &cp
	return nil
}

func (m *mockSessionStore) FindByIDForWorker(_ context.Context, sessionID, workerID uuid.UUID) (*model.AttendanceSessionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || s.AttendanceSessionWorkerID != workerID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *mockSessionStore) FindOpenByWorker(_ context.Context, workerID uuid.UUID) (*model.AttendanceSessionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.sessions {
		if s.AttendanceSessionWorkerID == workerID && s.AttendanceSessionIsOpen {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionStore) RenewIfOpen(_ context.Context, sessionID, workerID uuid.UUID, newExpiry time.Time) (*model.AttendanceSessionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || s.AttendanceSessionWorkerID != workerID || !s.AttendanceSessionIsOpen {
		return nil, repository.ErrSessionNotOpen
	}
	// lease hanya maju
	if newExpiry.Before(s.AttendanceSessionLeaseExpiresAt) {
		return nil, repository.ErrSessionNotOpen
	}
	s.AttendanceSessionLeaseExpiresAt = newExpiry
	s.AttendanceSessionRenewalCount++
	cp := *s
	return &cp, nil
}

func (m *mockSessionStore) CloseIfOpen(_ context.Context, sessionID, workerID uuid.UUID, closedAt time.Time, coordinate *geofence.Coordinate, reason string) (*model.AttendanceSessionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok || s.AttendanceSessionWorkerID != workerID || !s.AttendanceSessionIsOpen {
		return nil, repository.ErrSessionNotOpen
	}
	s.AttendanceSessionIsOpen = false
	s.AttendanceSessionClockOutAt = &closedAt
	r := reason
	s.AttendanceSessionClockOutReason = &r
	if coordinate != nil {
		lat, lon := coordinate.Lat, coordinate.Lon
		s.AttendanceSessionClockOutLat = &lat
		s.AttendanceSessionClockOutLon = &lon
	}
	cp := *s
	return &cp, nil
}

func (m *mockSessionStore) FindExpired(_ context.Context, now time.Time, limit int) ([]model.AttendanceSessionModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.AttendanceSessionModel
	for _, s := range m.sessions {
		if s.AttendanceSessionIsOpen && s.AttendanceSessionLeaseExpiresAt.Before(now) {
			out = append(out, *s)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (m *mockSessionStore) ListByWorker(_ context.Context, workerID uuid.UUID, limit, offset int) ([]model.AttendanceSessionModel, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.AttendanceSessionModel
	for _, s := range m.sessions {
		if s.AttendanceSessionWorkerID == workerID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockSessionStore) AppendGeofenceEvent(_ context.Context, event *model.GeofenceEventModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if event.GeofenceEventID == uuid.Nil {
		event.GeofenceEventID = uuid.New()
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *mockSessionStore) rowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *mockSessionStore) eventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

// ── Mock Oracle ──

type mockOracle struct {
	mu     sync.Mutex
	inside bool
	err    error
	calls  int
}

func (o *mockOracle) IsInside(_ context.Context, _ geofence.Coordinate, _ uuid.UUID) (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls++
	if o.err != nil {
		return false, o.err
	}
	return o.inside, nil
}

// ── Mock Directory ──

type mockDirectory struct {
	assigned bool
	err      error
}

func (d *mockDirectory) IsWorkerAssigned(_ context.Context, _, _ uuid.UUID) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.assigned, nil
}

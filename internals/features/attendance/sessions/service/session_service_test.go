package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"hadirku_backend/internals/features/attendance/sessions/model"
	geofence "hadirku_backend/internals/features/geofence/service"
)

// ── Helper ──

const testLease = 2 * time.Hour

// fakeClock: waktu yang bisa dimajukan manual, tanpa tidur nyata.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupTestEngine() (*SessionService, *mockSessionStore, *mockOracle, *mockDirectory, *fakeClock) {
	store := newMockSessionStore()
	oracle := &mockOracle{inside: true}
	directory := &mockDirectory{assigned: true}
	clock := newFakeClock()

	svc := NewSessionService(store, oracle, directory)
	svc.Now = clock.Now
	svc.LeaseDuration = testLease
	return svc, store, oracle, directory, clock
}

var testCoord = geofence.Coordinate{Lat: -6.2, Lon: 106.8}

/* ===================== OPEN ===================== */

func TestOpenSession_Success(t *testing.T) {
	svc, _, _, _, clock := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	session, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 12.5)
	if err != nil {
		t.Fatalf("OpenSession harus sukses: %v", err)
	}
	if session.AttendanceSessionID == uuid.Nil {
		t.Error("session harus dapat ID")
	}
	if !session.AttendanceSessionIsOpen {
		t.Error("sesi baru harus open")
	}
	if session.AttendanceSessionRenewalCount != 0 {
		t.Errorf("renewal_count awal harus 0, dapat %d", session.AttendanceSessionRenewalCount)
	}
	wantExpiry := clock.Now().Add(testLease)
	if !session.AttendanceSessionLeaseExpiresAt.Equal(wantExpiry) {
		t.Errorf("lease harus %v, dapat %v", wantExpiry, session.AttendanceSessionLeaseExpiresAt)
	}
	if session.AttendanceSessionClockInAccuracyM != 12.5 {
		t.Errorf("accuracy harus tersimpan, dapat %v", session.AttendanceSessionClockInAccuracyM)
	}
}

func TestOpenSession_NotAssigned(t *testing.T) {
	svc, store, _, directory, _ := setupTestEngine()
	directory.assigned = false

	_, err := svc.OpenSession(context.Background(), uuid.New(), uuid.New(), uuid.New(), testCoord, 0)
	if !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("harus ErrNotAssigned, dapat %v", err)
	}
	if store.rowCount() != 0 {
		t.Error("tidak boleh ada baris tertulis saat precondition gagal")
	}
}

func TestOpenSession_OutsideBoundary(t *testing.T) {
	svc, store, oracle, _, _ := setupTestEngine()
	oracle.inside = false

	_, err := svc.OpenSession(context.Background(), uuid.New(), uuid.New(), uuid.New(), testCoord, 0)
	if !errors.Is(err, ErrOutsideBoundary) {
		t.Fatalf("harus ErrOutsideBoundary, dapat %v", err)
	}
	if store.rowCount() != 0 {
		t.Error("containment gate: row count harus tetap 0")
	}
}

func TestOpenSession_BoundaryLookupFailed_FailClosed(t *testing.T) {
	svc, store, oracle, _, _ := setupTestEngine()
	oracle.err = geofence.ErrBoundaryLookupFailed

	_, err := svc.OpenSession(context.Background(), uuid.New(), uuid.New(), uuid.New(), testCoord, 0)
	if !errors.Is(err, geofence.ErrBoundaryLookupFailed) {
		t.Fatalf("harus fail-closed dengan ErrBoundaryLookupFailed, dapat %v", err)
	}
	if store.rowCount() != 0 {
		t.Error("lookup gagal tidak boleh menulis baris")
	}
}

func TestOpenSession_AlreadyOpen(t *testing.T) {
	svc, _, _, _, _ := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	if _, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0); err != nil {
		t.Fatalf("clock-in pertama harus sukses: %v", err)
	}
	_, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0)
	if !errors.Is(err, ErrAlreadyOpen) {
		t.Fatalf("clock-in kedua harus ErrAlreadyOpen, dapat %v", err)
	}
}

func TestOpenSession_ConcurrentOpens_OnlyOneWins(t *testing.T) {
	svc, store, _, _, _ := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	success, conflict := 0, 0
	for err := range results {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrAlreadyOpen):
			conflict++
		default:
			t.Errorf("error tak terduga: %v", err)
		}
	}
	if success != 1 {
		t.Errorf("tepat satu clock-in harus menang, dapat %d", success)
	}
	if conflict != attempts-1 {
		t.Errorf("sisanya harus ErrAlreadyOpen, dapat %d", conflict)
	}
	if store.rowCount() != 1 {
		t.Errorf("hanya satu baris boleh tertulis, dapat %d", store.rowCount())
	}
}

/* ===================== RENEW ===================== */

func TestRenewLease_AdvancesLeaseMonotonically(t *testing.T) {
	svc, _, _, _, clock := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	session, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}
	firstExpiry := session.AttendanceSessionLeaseExpiresAt

	clock.Advance(1 * time.Hour)
	renewed, err := svc.RenewLease(context.Background(), session.AttendanceSessionID, workerID, testCoord)
	if err != nil {
		t.Fatalf("renew harus sukses: %v", err)
	}
	if !renewed.AttendanceSessionLeaseExpiresAt.After(firstExpiry) {
		t.Errorf("lease harus maju: %v → %v", firstExpiry, renewed.AttendanceSessionLeaseExpiresAt)
	}
	wantExpiry := clock.Now().Add(testLease)
	if !renewed.AttendanceSessionLeaseExpiresAt.Equal(wantExpiry) {
		t.Errorf("lease baru harus now+lease (%v), dapat %v", wantExpiry, renewed.AttendanceSessionLeaseExpiresAt)
	}
	if renewed.AttendanceSessionRenewalCount != 1 {
		t.Errorf("renewal_count harus 1, dapat %d", renewed.AttendanceSessionRenewalCount)
	}
}

func TestRenewLease_OutsideBoundary_AutoCloses(t *testing.T) {
	svc, store, oracle, _, _ := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	session, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}

	oracle.inside = false
	_, err = svc.RenewLease(context.Background(), session.AttendanceSessionID, workerID, testCoord)
	if !errors.Is(err, ErrOutsideBoundary) {
		t.Fatalf("harus ErrOutsideBoundary, dapat %v", err)
	}

	closed, _ := store.FindByIDForWorker(context.Background(), session.AttendanceSessionID, workerID)
	if closed.AttendanceSessionIsOpen {
		t.Error("renew di luar boundary harus sekaligus menutup sesi")
	}
	if closed.AttendanceSessionClockOutReason == nil || *closed.AttendanceSessionClockOutReason != model.CloseReasonGeofenceExit {
		t.Errorf("reason harus auto_geofence_exit, dapat %v", closed.AttendanceSessionClockOutReason)
	}
}

func TestRenewLease_ClosedSession_NoResurrect(t *testing.T) {
	svc, store, _, _, _ := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	session, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}
	if _, err := svc.CloseSession(context.Background(), session.AttendanceSessionID, workerID, &testCoord, model.CloseReasonManual); err != nil {
		t.Fatalf("close: %v", err)
	}
	before, _ := store.FindByIDForWorker(context.Background(), session.AttendanceSessionID, workerID)

	_, err = svc.RenewLease(context.Background(), session.AttendanceSessionID, workerID, testCoord)
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("renew sesi closed harus ErrNoActiveSession, dapat %v", err)
	}

	after, _ := store.FindByIDForWorker(context.Background(), session.AttendanceSessionID, workerID)
	if after.AttendanceSessionIsOpen {
		t.Error("renew tidak boleh menghidupkan kembali sesi closed")
	}
	if !after.AttendanceSessionClockOutAt.Equal(*before.AttendanceSessionClockOutAt) {
		t.Error("clock_out_at tidak boleh berubah setelah close")
	}
	if after.AttendanceSessionRenewalCount != before.AttendanceSessionRenewalCount {
		t.Error("renewal_count tidak boleh bergerak pada sesi closed")
	}
}

func TestRenewLease_OracleError_LeavesSessionOpen(t *testing.T) {
	svc, store, oracle, _, _ := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	session, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}

	oracle.err = geofence.ErrBoundaryLookupFailed
	_, err = svc.RenewLease(context.Background(), session.AttendanceSessionID, workerID, testCoord)
	if !errors.Is(err, geofence.ErrBoundaryLookupFailed) {
		t.Fatalf("harus ErrBoundaryLookupFailed, dapat %v", err)
	}

	still, _ := store.FindByIDForWorker(context.Background(), session.AttendanceSessionID, workerID)
	if !still.AttendanceSessionIsOpen {
		t.Error("error dependency tidak boleh menutup sesi")
	}
}

func TestRenewLease_UnknownSession(t *testing.T) {
	svc, _, _, _, _ := setupTestEngine()

	_, err := svc.RenewLease(context.Background(), uuid.New(), uuid.New(), testCoord)
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("harus ErrNoActiveSession, dapat %v", err)
	}
}

/* ===================== CLOSE ===================== */

func TestCloseSession_Idempotent(t *testing.T) {
	svc, store, _, _, _ := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	session, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}

	first, err := svc.CloseSession(context.Background(), session.AttendanceSessionID, workerID, &testCoord, model.CloseReasonManual)
	if err != nil {
		t.Fatalf("close pertama harus sukses: %v", err)
	}
	if first.AttendanceSessionClockOutReason == nil || *first.AttendanceSessionClockOutReason != model.CloseReasonManual {
		t.Errorf("reason harus manual, dapat %v", first.AttendanceSessionClockOutReason)
	}

	// close kedua dengan reason berbeda: harus AlreadyClosed dan tidak
	// mengubah hasil close pertama
	_, err = svc.CloseSession(context.Background(), session.AttendanceSessionID, workerID, nil, model.CloseReasonHeartbeatExpired)
	if !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("close kedua harus ErrAlreadyClosed, dapat %v", err)
	}

	after, _ := store.FindByIDForWorker(context.Background(), session.AttendanceSessionID, workerID)
	if *after.AttendanceSessionClockOutReason != model.CloseReasonManual {
		t.Errorf("reason pemenang pertama tidak boleh ditimpa, dapat %s", *after.AttendanceSessionClockOutReason)
	}
	if !after.AttendanceSessionClockOutAt.Equal(*first.AttendanceSessionClockOutAt) {
		t.Error("clock_out_at close pertama tidak boleh berubah")
	}
}

func TestCloseSession_Unknown(t *testing.T) {
	svc, _, _, _, _ := setupTestEngine()

	_, err := svc.CloseSession(context.Background(), uuid.New(), uuid.New(), nil, model.CloseReasonManual)
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("harus ErrNoActiveSession, dapat %v", err)
	}
}

func TestCloseSession_ConcurrentClosers_ExactlyOneWins(t *testing.T) {
	svc, _, _, _, _ := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	session, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}

	reasons := []string{model.CloseReasonManual, model.CloseReasonGeofenceExit, model.CloseReasonHeartbeatExpired}
	var wg sync.WaitGroup
	results := make(chan error, len(reasons))

	for _, reason := range reasons {
		wg.Add(1)
		go func(r string) {
			defer wg.Done()
			_, err := svc.CloseSession(context.Background(), session.AttendanceSessionID, workerID, nil, r)
			results <- err
		}(reason)
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyClosed):
			losses++
		default:
			t.Errorf("error tak terduga: %v", err)
		}
	}
	if wins != 1 || losses != len(reasons)-1 {
		t.Errorf("tepat satu penutup harus menang (wins=%d losses=%d)", wins, losses)
	}
}

/* ===================== REPORT EXIT ===================== */

func TestReportExit_ClosesAndAppendsEvent(t *testing.T) {
	svc, store, _, _, _ := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	session, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}

	outside := geofence.Coordinate{Lat: -6.5, Lon: 107.1}
	closedNow, err := svc.ReportExit(context.Background(), session.AttendanceSessionID, workerID, outside)
	if err != nil {
		t.Fatalf("report exit harus sukses: %v", err)
	}
	if !closedNow {
		t.Error("laporan pertama harus menutup sesi")
	}
	if store.eventCount() != 1 {
		t.Errorf("harus ada satu geofence event, dapat %d", store.eventCount())
	}

	closed, _ := store.FindByIDForWorker(context.Background(), session.AttendanceSessionID, workerID)
	if *closed.AttendanceSessionClockOutReason != model.CloseReasonGeofenceExit {
		t.Errorf("reason harus auto_geofence_exit, dapat %s", *closed.AttendanceSessionClockOutReason)
	}

	// clock-out manual setelahnya: AlreadyClosed
	_, err = svc.CloseSession(context.Background(), session.AttendanceSessionID, workerID, &testCoord, model.CloseReasonManual)
	if !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("clock-out setelah exit harus ErrAlreadyClosed, dapat %v", err)
	}
}

func TestReportExit_AlreadyClosed_IsBenign(t *testing.T) {
	svc, store, _, _, _ := setupTestEngine()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	session, err := svc.OpenSession(context.Background(), workerID, companyID, siteID, testCoord, 0)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}
	if _, err := svc.CloseSession(context.Background(), session.AttendanceSessionID, workerID, &testCoord, model.CloseReasonManual); err != nil {
		t.Fatalf("close: %v", err)
	}

	closedNow, err := svc.ReportExit(context.Background(), session.AttendanceSessionID, workerID, testCoord)
	if err != nil {
		t.Fatalf("laporan untuk sesi closed harus jinak: %v", err)
	}
	if closedNow {
		t.Error("sesi sudah ditutup aktor lain; closed harus false")
	}
	// event audit tetap tercatat
	if store.eventCount() != 1 {
		t.Errorf("event tetap harus ditulis, dapat %d", store.eventCount())
	}
}

/* ===================== SWEEP ===================== */

func TestCloseExpired_ClosesOnlyLapsedSessions(t *testing.T) {
	svc, store, _, _, clock := setupTestEngine()
	ctx := context.Background()

	lapsedWorker, freshWorker := uuid.New(), uuid.New()
	companyID, siteID := uuid.New(), uuid.New()

	lapsed, err := svc.OpenSession(ctx, lapsedWorker, companyID, siteID, testCoord, 0)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}

	// worker kedua clock-in satu jam kemudian; lease-nya belum lewat saat sweep
	clock.Advance(1 * time.Hour)
	fresh, err := svc.OpenSession(ctx, freshWorker, companyID, siteID, testCoord, 0)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}

	// maju melewati lease sesi pertama saja
	clock.Advance(testLease - 30*time.Minute)

	closed, err := svc.CloseExpired(ctx, clock.Now())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if closed != 1 {
		t.Errorf("harus tepat satu sesi tertutup, dapat %d", closed)
	}

	lapsedAfter, _ := store.FindByIDForWorker(ctx, lapsed.AttendanceSessionID, lapsedWorker)
	if lapsedAfter.AttendanceSessionIsOpen {
		t.Error("sesi kadaluarsa harus tertutup")
	}
	if *lapsedAfter.AttendanceSessionClockOutReason != model.CloseReasonHeartbeatExpired {
		t.Errorf("reason harus auto_heartbeat_expired, dapat %s", *lapsedAfter.AttendanceSessionClockOutReason)
	}
	if lapsedAfter.AttendanceSessionClockOutLat != nil {
		t.Error("sweeper tidak membawa koordinat; clock_out_lat harus nil")
	}

	freshAfter, _ := store.FindByIDForWorker(ctx, fresh.AttendanceSessionID, freshWorker)
	if !freshAfter.AttendanceSessionIsOpen {
		t.Error("sesi yang lease-nya masih hidup tidak boleh disentuh")
	}
}

/* ===================== SKENARIO ===================== */

// Skenario lengkap: clock-in → renew di +1h (lease jadi +3h, count=1) →
// tidak pernah renew lagi → sweep di +3h+60s menutup auto_heartbeat_expired.
func TestScenario_RenewThenAbandonThenSweep(t *testing.T) {
	svc, store, _, _, clock := setupTestEngine()
	ctx := context.Background()
	workerID, companyID, siteID := uuid.New(), uuid.New(), uuid.New()

	t0 := clock.Now()
	session, err := svc.OpenSession(ctx, workerID, companyID, siteID, testCoord, 8)
	if err != nil {
		t.Fatalf("clock-in: %v", err)
	}
	if !session.AttendanceSessionLeaseExpiresAt.Equal(t0.Add(2 * time.Hour)) {
		t.Errorf("lease awal harus t0+2h, dapat %v", session.AttendanceSessionLeaseExpiresAt)
	}

	clock.Advance(1 * time.Hour)
	renewed, err := svc.RenewLease(ctx, session.AttendanceSessionID, workerID, testCoord)
	if err != nil {
		t.Fatalf("renew: %v", err)
	}
	if !renewed.AttendanceSessionLeaseExpiresAt.Equal(t0.Add(3 * time.Hour)) {
		t.Errorf("lease setelah renew harus t0+3h, dapat %v", renewed.AttendanceSessionLeaseExpiresAt)
	}
	if renewed.AttendanceSessionRenewalCount != 1 {
		t.Errorf("renewal_count harus 1, dapat %d", renewed.AttendanceSessionRenewalCount)
	}

	// tidak ada renew lagi; tick sweeper di t0+3h+60s
	clock.Advance(2*time.Hour + 60*time.Second)
	closed, err := svc.CloseExpired(ctx, clock.Now())
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if closed != 1 {
		t.Errorf("sweep harus menutup satu sesi, dapat %d", closed)
	}

	final, _ := store.FindByIDForWorker(ctx, session.AttendanceSessionID, workerID)
	if final.AttendanceSessionIsOpen {
		t.Error("sesi harus closed")
	}
	if *final.AttendanceSessionClockOutReason != model.CloseReasonHeartbeatExpired {
		t.Errorf("reason harus auto_heartbeat_expired, dapat %s", *final.AttendanceSessionClockOutReason)
	}
}

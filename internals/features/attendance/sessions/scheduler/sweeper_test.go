// file: internals/features/attendance/sessions/scheduler/sweeper_test.go
package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// stubCloser merekam setiap panggilan CloseExpired dari sweeper.
type stubCloser struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (s *stubCloser) CloseExpired(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, now)
	if s.err != nil {
		return 0, s.err
	}
	return 2, nil
}

func (s *stubCloser) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func TestTick_PassesInjectedClock(t *testing.T) {
	closer := &stubCloser{}
	frozen := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	sweeper := NewSweeper(closer, time.Minute)
	sweeper.Now = func() time.Time { return frozen }

	sweeper.Tick(context.Background())

	if closer.callCount() != 1 {
		t.Fatalf("satu tick harus satu panggilan, dapat %d", closer.callCount())
	}
	if !closer.calls[0].Equal(frozen) {
		t.Errorf("sweeper harus mengoper clock ter-inject, dapat %v", closer.calls[0])
	}
}

func TestTick_DependencyErrorDoesNotPanic(t *testing.T) {
	closer := &stubCloser{err: errors.New("db mati")}
	sweeper := NewSweeper(closer, time.Minute)

	// error hanya dicatat; tick berikutnya tetap jalan
	sweeper.Tick(context.Background())
	sweeper.Tick(context.Background())

	if closer.callCount() != 2 {
		t.Errorf("error tidak boleh menghentikan tick berikutnya, dapat %d panggilan", closer.callCount())
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	closer := &stubCloser{}
	sweeper := NewSweeper(closer, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	// biarkan beberapa tick lewat, lalu matikan
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run harus berhenti setelah ctx dibatalkan")
	}
	if closer.callCount() == 0 {
		t.Error("sweeper harus sempat sweep minimal sekali sebelum berhenti")
	}
}

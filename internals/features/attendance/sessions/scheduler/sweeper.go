// file: internals/features/attendance/sessions/scheduler/sweeper.go
package scheduler

import (
	"context"
	"log"
	"time"

	"hadirku_backend/internals/configs"
)

// ExpiredCloser: satu-satunya hal yang sweeper butuhkan dari engine.
// Sweeper tidak pernah menyentuh store langsung; semua close lewat
// transisi engine yang sama dengan jalur manual/exit.
type ExpiredCloser interface {
	CloseExpired(ctx context.Context, now time.Time) (int, error)
}

// Sweeper: task berkala yang menutup sesi dengan lease lewat waktu.
// Interval dan clock bisa di-inject supaya test tidak perlu tidur nyata.
type Sweeper struct {
	Engine   ExpiredCloser
	Interval time.Duration
	Now      func() time.Time
}

func NewSweeper(engine ExpiredCloser, interval time.Duration) *Sweeper {
	return &Sweeper{
		Engine:   engine,
		Interval: interval,
		Now:      time.Now,
	}
}

// Tick menjalankan satu putaran sweep. Error dependency cuma dicatat;
// tick berikutnya akan mencoba lagi.
func (s *Sweeper) Tick(ctx context.Context) {
	closed, err := s.Engine.CloseExpired(ctx, s.Now())
	if err != nil {
		log.Printf("[SWEEPER] sweep gagal: %v", err)
		return
	}
	if closed > 0 {
		log.Printf("[SWEEPER] %d sesi ditutup (lease kadaluarsa)", closed)
	}
}

// Run memutar sweeper sampai ctx selesai.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[SWEEPER] berhenti.")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// StartLeaseSweeper menyalakan sweeper di goroutine sendiri dengan
// interval dari env (default 60 detik).
func StartLeaseSweeper(ctx context.Context, engine ExpiredCloser) *Sweeper {
	sweeper := NewSweeper(engine, configs.SweepInterval)
	log.Printf("[SWEEPER] start, interval=%s", sweeper.Interval)
	go sweeper.Run(ctx)
	return sweeper
}

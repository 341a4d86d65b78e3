package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled maintenance: blacklist approval reconciliation
// (finishing approvals whose status update was lost) and refresh token
// cleanup.
type CronService struct {
	cron      *cron.Cron
	blacklist *BlacklistService
	cleanup   func(ctx context.Context) error
}

// NewCronService creates a new cron service. cleanup may be nil.
func NewCronService(blacklist *BlacklistService, cleanup func(ctx context.Context) error) *CronService {
	return &CronService{
		cron:      cron.New(),
		blacklist: blacklist,
		cleanup:   cleanup,
	}
}

// Start registers and launches the schedules
func (s *CronService) Start() {
	// Reconciliation every 15 minutes: half-approved reports should never
	// stay stuck longer than one cycle.
	s.cron.AddFunc("*/15 * * * *", s.runReconcile)

	// Expired refresh token cleanup daily at 03:00
	if s.cleanup != nil {
		s.cron.AddFunc("0 3 * * *", s.runCleanup)
	}

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	fixed, err := s.blacklist.Reconcile(ctx)
	if err != nil {
		log.Printf("⚠️ Blacklist reconciliation failed: %v", err)
		return
	}
	if fixed > 0 {
		log.Printf("✅ Blacklist reconciliation finished %d stuck approval(s)", fixed)
	}
}

func (s *CronService) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.cleanup(ctx); err != nil {
		log.Printf("⚠️ Refresh token cleanup failed: %v", err)
	}
}

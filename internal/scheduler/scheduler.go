package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MickeyTee/BankOfCanada/internal/recorder"
	"github.com/MickeyTee/BankOfCanada/internal/report"
)

// Scheduler runs the periodic snapshot task: a comparison over a trailing
// window ending today, logged and recorded.
type Scheduler struct {
	Cron       *cron.Cron
	Service    *report.Service
	Recorder   recorder.Recorder
	WindowDays int
	Ctx        context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, svc *report.Service, rec recorder.Recorder, windowDays int) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Service:    svc,
		Recorder:   rec,
		WindowDays: windowDays,
		Ctx:        ctx,
	}
}

// Register registers the snapshot task with the given cron expression.
func (s *Scheduler) Register(snapshotCron string) error {
	if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunSnapshotNow executes the snapshot task immediately (manual trigger).
func (s *Scheduler) RunSnapshotNow() {
	s.snapshotTask()
}

func (s *Scheduler) snapshotTask() {
	end := time.Now()
	start := end.AddDate(0, 0, -s.WindowDays)
	log.Printf("[INFO] running snapshot over trailing %d days", s.WindowDays)

	cmp, err := s.Service.Compare(s.Ctx, start, end)
	if err != nil {
		log.Printf("[ERROR] snapshot compare: %v", err)
		return
	}

	if cmp.Correlation.Defined {
		log.Printf("[INFO] snapshot: rho=%.4f over %d points (%s)",
			cmp.Correlation.Rho, cmp.Correlation.SampleSize, cmp.Message)
	} else {
		log.Printf("[INFO] snapshot: %s", cmp.Message)
	}

	if err := s.Recorder.Record(recorder.FromComparison(cmp)); err != nil {
		log.Printf("[WARN] record snapshot: %v", err)
	}
}

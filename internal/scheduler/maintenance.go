// Package scheduler runs periodic housekeeping against the SQLite store.
package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"booktracker/internal/database"
)

// MaintenanceScheduler periodically runs ANALYZE and an incremental vacuum
// so a long-running single-file deployment keeps its query planner
// statistics fresh and its file size bounded.
type MaintenanceScheduler struct {
	db   *database.Database
	cron *cron.Cron

	mu            sync.Mutex
	entryID       cron.EntryID
	isRunning     bool
	isMaintaining bool
}

// NewMaintenanceScheduler creates a new scheduler instance.
func NewMaintenanceScheduler(db *database.Database) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		db:   db,
		cron: cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start schedules the maintenance job. Safe to call once; subsequent calls
// are no-ops until Stop.
func (s *MaintenanceScheduler) Start(schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(schedule, s.runMaintenance)
	if err != nil {
		return fmt.Errorf("failed to schedule maintenance job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Store maintenance scheduler: started with schedule '%s'", schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to complete.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false

	log.Printf("Store maintenance scheduler: stopped")
}

// IsRunning returns whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// RunNow triggers an immediate maintenance pass.
func (s *MaintenanceScheduler) RunNow() {
	s.runMaintenance()
}

// NextRunTime returns when the next maintenance pass will occur.
func (s *MaintenanceScheduler) NextRunTime() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *MaintenanceScheduler) runMaintenance() {
	s.mu.Lock()
	if s.isMaintaining {
		s.mu.Unlock()
		log.Printf("Store maintenance: skipped (already running)")
		return
	}
	s.isMaintaining = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.isMaintaining = false
		s.mu.Unlock()
	}()

	startTime := time.Now()

	if err := s.db.DB.Exec("ANALYZE").Error; err != nil {
		log.Printf("Store maintenance: ANALYZE failed: %v", err)
		return
	}
	if err := s.db.DB.Exec("PRAGMA incremental_vacuum").Error; err != nil {
		log.Printf("Store maintenance: incremental vacuum failed: %v", err)
		return
	}

	log.Printf("Store maintenance: completed in %v", time.Since(startTime).Round(time.Millisecond))
}

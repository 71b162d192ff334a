package backup

import (
	"time"

	"github.com/kebairia/dmsave/internal/logger"
)

// Scheduler runs periodic backups in the background. Each tick calls
// Manager.Create; a failed cycle is logged and never propagated, so
// one bad run cannot stall the timer or crash the host process.
//
// Ticks are not serialized against manually triggered operations on
// the same backups root.
type Scheduler struct {
	manager  *Manager
	interval time.Duration
	log      logger.Logger

	stop chan struct{}
	done chan struct{}
}

// NewScheduler builds a scheduler around manager. Start must be called
// to begin ticking.
func NewScheduler(manager *Manager, interval time.Duration, log logger.Logger) *Scheduler {
	return &Scheduler{
		manager:  manager,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the timer goroutine and returns immediately.
func (s *Scheduler) Start() {
	s.log.Info("backup scheduler started", "interval", s.interval.String())
	go s.run()
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.manager.Create(); err != nil {
				s.log.Error("scheduled backup failed", "error", err.Error())
			}
		case <-s.stop:
			return
		}
	}
}

// Stop signals the timer goroutine and waits for it to exit. A backup
// already in progress runs to completion first; there is no
// mid-operation cancellation.
func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
	s.log.Info("backup scheduler stopped")
}

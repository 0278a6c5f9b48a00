package storage

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/speechsuite/domain/repositories"
)

// CleanupService periodically removes artifacts older than maxAge
type CleanupService struct {
	store    repositories.ArtifactStore
	maxAge   time.Duration
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time

	stopChan  chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewCleanupService creates a new cleanup service. A zero maxAge disables it.
func NewCleanupService(store repositories.ArtifactStore, maxAge, interval time.Duration, logger *zap.Logger) *CleanupService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &CleanupService{
		store:    store,
		maxAge:   maxAge,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the background cleanup process
func (s *CleanupService) Start() {
	s.startOnce.Do(func() {
		if s.maxAge <= 0 {
			close(s.done)
			s.logger.Info("Artifact cleanup disabled")
			return
		}

		go s.cleanupLoop()
		s.logger.Info("Artifact cleanup service started",
			zap.Duration("maxAge", s.maxAge),
			zap.Duration("interval", s.interval))
	})
}

// Stop stops the loop and waits for a running pass to finish
func (s *CleanupService) Stop() {
	// a loop that never started has nothing to wait for
	s.startOnce.Do(func() { close(s.done) })

	s.stopOnce.Do(func() {
		close(s.stopChan)
		<-s.done
		s.logger.Info("Artifact cleanup service stopped")
	})
}

func (s *CleanupService) cleanupLoop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// leftovers from the previous run go right away
	s.RunOnce()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunOnce()
		}
	}
}

// RunOnce removes every artifact older than maxAge and returns the count
func (s *CleanupService) RunOnce() int {
	if s.maxAge <= 0 {
		return 0
	}

	removed := s.store.RemoveOlderThan(s.now().Add(-s.maxAge))
	s.logger.Debug("Artifact cleanup pass completed", zap.Int("removed", removed))
	return removed
}

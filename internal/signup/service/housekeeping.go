package service

import (
	"log/slog"
	"time"
)

// HousekeepingService periodically evicts idle flows so abandoned journeys
// don't pile up in memory.
type HousekeepingService struct {
	Flows    *FlowService
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults the interval to one minute.
func NewHousekeepingService(flows *FlowService, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &HousekeepingService{
		Flows:    flows,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweeper in the background until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop waits for an in-progress sweep to finish.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *HousekeepingService) sweep() {
	evicted := s.Flows.EvictIdle()
	if evicted > 0 {
		s.Logger.Info("evicted idle flows", "count", evicted, "remaining", s.Flows.Len())
		return
	}
	s.Logger.Debug("no idle flows to evict")
}

package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 2 * time.Minute

// CronService runs the nightly background jobs
type CronService struct {
	cron      *cron.Cron
	dashboard *DashboardService
	auth      *AuthService
	log       *zap.SugaredLogger
}

// NewCronService creates a cron service running in UTC
func NewCronService(dashboard *DashboardService, auth *AuthService, log *zap.SugaredLogger) *CronService {
	return &CronService{
		cron:      cron.New(cron.WithLocation(time.UTC), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		dashboard: dashboard,
		auth:      auth,
		log:       log,
	}
}

// Register schedules the occupancy snapshot and the refresh token purge
func (s *CronService) Register(snapshotSpec, purgeSpec string) error {
	if _, err := s.cron.AddFunc(snapshotSpec, s.SnapshotOccupancy); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(purgeSpec, s.PurgeExpiredTokens); err != nil {
		return err
	}
	s.log.Infow("startup", "status", "cron jobs registered", "snapshot", snapshotSpec, "purge", purgeSpec)
	return nil
}

// Start starts the scheduler in its own goroutine
func (s *CronService) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Infow("shutdown", "status", "cron stopped")
}

// SnapshotOccupancy records today's occupancy rate
func (s *CronService) SnapshotOccupancy() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.dashboard.RecordOccupancySnapshot(ctx); err != nil {
		s.log.Errorw("occupancy snapshot failed", "err", err)
	}
}

// PurgeExpiredTokens deletes expired refresh tokens
func (s *CronService) PurgeExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.auth.PurgeExpiredTokens(ctx)
	if err != nil {
		s.log.Errorw("refresh token purge failed", "err", err)
		return
	}
	s.log.Infow("refresh tokens purged", "deleted", n)
}

package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"todoapi/internal/repository"
)

// CleanupService prunes expired and used password-reset tokens on a
// fixed interval.
type CleanupService struct {
	tokenRepo *repository.TokenRepository
	cron      *cron.Cron
}

func NewCleanupService(tokenRepo *repository.TokenRepository) *CleanupService {
	return &CleanupService{
		tokenRepo: tokenRepo,
		cron:      cron.New(cron.WithSeconds()),
	}
}

// Start schedules the pruning job and runs it once immediately.
func (s *CleanupService) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	if _, err := s.cron.AddFunc(spec, s.prune); err != nil {
		return fmt.Errorf("schedule token cleanup: %w", err)
	}
	s.cron.Start()
	go s.prune()
	return nil
}

// Stop waits for a running job to finish.
func (s *CleanupService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *CleanupService) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	removed, err := s.tokenRepo.DeleteStale(ctx, time.Now())
	if err != nil {
		log.Printf("token cleanup: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("token cleanup: removed %d stale tokens", removed)
	}
}

package usecase

import (
	"context"
	"log"
	"time"

	authrepo "internmail-backend/internal/auth/repository"
)

// SyncScheduler periodically runs an ingestion cycle for every user with
// stored mailbox credentials. Disabled when the interval is zero.
type SyncScheduler struct {
	emailUc  EmailUsecase
	userRepo authrepo.UserRepository
	interval time.Duration
}

func NewSyncScheduler(emailUc EmailUsecase, userRepo authrepo.UserRepository, interval time.Duration) *SyncScheduler {
	return &SyncScheduler{
		emailUc:  emailUc,
		userRepo: userRepo,
		interval: interval,
	}
}

// Start launches the scheduler loop. It returns immediately; the loop stops
// when ctx is cancelled.
func (s *SyncScheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		log.Println("[SCHEDULER] Background sync disabled")
		return
	}

	log.Printf("[SCHEDULER] Background sync every %s", s.interval)
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[SCHEDULER] Background sync stopped")
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()
}

func (s *SyncScheduler) runOnce(ctx context.Context) {
	users, err := s.userRepo.FindAllWithTokens()
	if err != nil {
		log.Printf("[SCHEDULER] Failed to list users: %v", err)
		return
	}

	for _, user := range users {
		if ctx.Err() != nil {
			return
		}
		if _, err := s.emailUc.SyncInbox(ctx, user.ID); err != nil {
			log.Printf("[SCHEDULER] Sync failed for user %s: %v", user.ID, err)
		}
	}
}

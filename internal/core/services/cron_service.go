package services

import (
	"context"
	"log"
	"time"

	"clubhub-backend/internal/adapters/persistence/repositories"
	"clubhub-backend/internal/core/domain"

	"github.com/robfig/cron/v3"
)

// Recruitment windows are compared against a single reference timezone
// so every writer agrees on what "now" means.
const referenceTimezone = "America/Los_Angeles"

// CronService runs the periodic background jobs: club recruitment status
// recompute every minute, recommender retrain every 4 hours and a nightly
// token record sweep. Each job skips its next firing if the previous run
// is still going; the jobs are independent of each other.
type CronService struct {
	cron        *cron.Cron
	clubRepo    repositories.ClubRepository
	tokenRepo   repositories.TokenRecordRepository
	recommender *RecommenderService
	location    *time.Location
}

// NewCronService creates a new cron service
func NewCronService(clubRepo repositories.ClubRepository, tokenRepo repositories.TokenRecordRepository, recommender *RecommenderService) *CronService {
	location, err := time.LoadLocation(referenceTimezone)
	if err != nil {
		log.Printf("⚠️ Failed to load timezone %s, falling back to UTC: %v", referenceTimezone, err)
		location = time.UTC
	}

	logger := cron.VerbosePrintfLogger(log.Default())
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(logger),
		cron.Recover(logger),
	))

	return &CronService{
		cron:        c,
		clubRepo:    clubRepo,
		tokenRepo:   tokenRepo,
		recommender: recommender,
		location:    location,
	}
}

// Start registers the jobs and launches the scheduler
func (s *CronService) Start() {
	s.cron.AddFunc("* * * * *", func() {
		if err := s.RecomputeClubStatuses(context.Background()); err != nil {
			log.Printf("❌ Club status recompute failed: %v", err)
		}
	})

	s.cron.AddFunc("0 */4 * * *", func() {
		if err := s.recommender.Train(context.Background()); err != nil {
			log.Printf("❌ Recommender retrain failed: %v", err)
		}
	})

	// Revoked entries for tokens long past their cryptographic expiry
	// carry no information; sweep them nightly
	s.cron.AddFunc("0 3 * * *", func() {
		if err := s.tokenRepo.DeleteExpired(context.Background()); err != nil {
			log.Printf("❌ Token record cleanup failed: %v", err)
		}
	})

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler, waiting for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 CronService stopped")
}

// RecomputeClubStatuses recalculates the new-members flag for every
// officer-owned club. Application-based clubs open while "now" is inside
// the apply deadline window; the rest open during their recruiting
// period. Clubs missing either bound for their mode are left untouched.
// Per-club failures are logged and the pass continues.
func (s *CronService) RecomputeClubStatuses(ctx context.Context) error {
	now := time.Now().In(s.location)

	clubs, err := s.clubRepo.ListOfficerOwned(ctx)
	if err != nil {
		return err
	}

	updated := 0
	for _, club := range clubs {
		var window domain.RecruitmentWindow
		if club.AppRequired {
			window = domain.RecruitmentWindow{Start: club.ApplyDeadlineStart, End: club.ApplyDeadlineEnd}
		} else {
			window = domain.RecruitmentWindow{Start: club.RecruitingStart, End: club.RecruitingEnd}
		}
		if window.Start == nil || window.End == nil {
			continue
		}

		open := window.Contains(now)
		if club.NewMembers == open {
			continue
		}

		club.NewMembers = open
		if err := s.clubRepo.Update(ctx, club); err != nil {
			log.Printf("❌ Failed to update club %s status: %v", club.Slug, err)
			continue
		}
		updated++
	}

	if updated > 0 {
		log.Printf("🔄 Recomputed recruitment status for %d club(s)", updated)
	}
	return nil
}

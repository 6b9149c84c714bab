package services

import (
	"context"

	"clubhub-backend/internal/adapters/persistence/repositories"
)

// MonitorService aggregates counters for the admin overview
type MonitorService struct {
	userRepo  repositories.UserRepository
	clubRepo  repositories.ClubRepository
	tokenRepo repositories.TokenRecordRepository
}

// NewMonitorService creates a new monitor service
func NewMonitorService(
	userRepo repositories.UserRepository,
	clubRepo repositories.ClubRepository,
	tokenRepo repositories.TokenRecordRepository,
) *MonitorService {
	return &MonitorService{
		userRepo:  userRepo,
		clubRepo:  clubRepo,
		tokenRepo: tokenRepo,
	}
}

// Overview holds the admin dashboard counters
type Overview struct {
	TotalUsers     int64 `json:"total_users"`
	ConfirmedUsers int64 `json:"confirmed_users"`
	OpenClubs      int64 `json:"open_clubs"`
	ActiveSessions int64 `json:"active_sessions"`
}

// GetOverview gathers the current counters
func (s *MonitorService) GetOverview(ctx context.Context) (*Overview, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	confirmedUsers, err := s.userRepo.CountConfirmed(ctx)
	if err != nil {
		return nil, err
	}

	openClubs, err := s.clubRepo.CountOpenForMembers(ctx)
	if err != nil {
		return nil, err
	}

	activeSessions, err := s.tokenRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalUsers:     totalUsers,
		ConfirmedUsers: confirmedUsers,
		OpenClubs:      openClubs,
		ActiveSessions: activeSessions,
	}, nil
}

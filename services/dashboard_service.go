package services

import (
	"context"
	"fmt"

	"github.com/Ishan007-bot/Sports-Arena-Backend/live"
	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/repositories"
)

// ViewerCounter reports how many websocket clients follow a topic.
type ViewerCounter interface {
	Viewers(topic string) int
}

type DashboardService interface {
	GetStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	statsRepo repositories.StatsRepository
	viewers   ViewerCounter
}

func NewDashboardService(statsRepo repositories.StatsRepository, viewers ViewerCounter) DashboardService {
	return &dashboardService{statsRepo: statsRepo, viewers: viewers}
}

func (s *dashboardService) GetStats(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := s.statsRepo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard stats: %w", err)
	}
	if s.viewers != nil {
		stats.ScoreboardViewers = s.viewers.Viewers(live.LiveScoreboardTopic)
	}
	return stats, nil
}

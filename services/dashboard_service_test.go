package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Ishan007-bot/Sports-Arena-Backend/live"
	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) Summary(ctx context.Context) (*models.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

type fixedViewers map[string]int

func (v fixedViewers) Viewers(topic string) int { return v[topic] }

func TestDashboardGetStats(t *testing.T) {
	repo := new(mockStatsRepo)
	repo.On("Summary", mock.Anything).Return(&models.DashboardStats{UsersTotal: 4, LiveMatches: 2}, nil)

	svc := NewDashboardService(repo, fixedViewers{live.LiveScoreboardTopic: 9, "match-1": 3})
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.DashboardStats{UsersTotal: 4, LiveMatches: 2, ScoreboardViewers: 9}, stats)
}

func TestDashboardGetStats_RepoError(t *testing.T) {
	repo := new(mockStatsRepo)
	repo.On("Summary", mock.Anything).Return(nil, errors.New("timeout"))

	_, err := NewDashboardService(repo, nil).GetStats(context.Background())
	assert.ErrorContains(t, err, "timeout")
}

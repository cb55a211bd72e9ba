package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
)

type StatsRepository interface {
	Summary(ctx context.Context) (*models.DashboardStats, error)
}

type postgresStatsRepository struct {
	db *sql.DB
}

func NewPostgresStatsRepository(db *sql.DB) StatsRepository {
	return &postgresStatsRepository{db: db}
}

func (r *postgresStatsRepository) Summary(ctx context.Context) (*models.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM teams),
			(SELECT COUNT(*) FROM tournaments),
			(SELECT COUNT(*) FROM tournaments WHERE status = $1),
			(SELECT COUNT(*) FROM matches),
			(SELECT COUNT(*) FROM matches WHERE status = $2)`

	var s models.DashboardStats
	err := r.db.QueryRowContext(ctx, query, models.TournamentStatusOngoing, models.MatchStatusLive).Scan(
		&s.UsersTotal,
		&s.TeamsTotal,
		&s.TournamentsTotal,
		&s.ActiveTournaments,
		&s.MatchesTotal,
		&s.LiveMatches,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count dashboard totals: %w", err)
	}
	return &s, nil
}

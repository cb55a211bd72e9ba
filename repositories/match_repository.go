package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/scoring"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchBracketConflict   = errors.New("match bracket uid already exists")
	ErrMatchInvalidField      = errors.New("match has an invalid sport or status")
)

type MatchFilter struct {
	Status       *models.MatchStatus
	TournamentID *int
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter MatchFilter) ([]*models.Match, error)
	// Update writes the whole match document back.
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
	DeleteAll(ctx context.Context) (int64, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, sport, status, team_a, team_b, player_a, player_b,
	venue, start_time, end_time, round, bracket_uid, score, match_settings, score_history,
	winner, winning_reason, completed_at, created_by, created_at, updated_at`

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	args, err := matchDocumentArgs(m)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO matches
			(tournament_id, sport, status, team_a, team_b, player_a, player_b,
			 venue, start_time, end_time, round, bracket_uid, score, match_settings, score_history,
			 winner, winning_reason, completed_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, created_at, updated_at`

	err = r.getExecutor(exec).QueryRowContext(ctx, query, args...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	m, err := scanMatch(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}
	if filter.TournamentID != nil {
		query += fmt.Sprintf(" AND tournament_id = $%d", argID)
		args = append(args, *filter.TournamentID)
	}

	if filter.TournamentID != nil {
		query += " ORDER BY round ASC NULLS LAST, id ASC"
	} else {
		query += " ORDER BY created_at DESC, id DESC"
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, m *models.Match) error {
	args, err := matchDocumentArgs(m)
	if err != nil {
		return err
	}
	args = append(args, m.ID)

	query := `
		UPDATE matches SET
			tournament_id = $1, sport = $2, status = $3, team_a = $4, team_b = $5, player_a = $6, player_b = $7,
			venue = $8, start_time = $9, end_time = $10, round = $11, bracket_uid = $12, score = $13,
			match_settings = $14, score_history = $15, winner = $16, winning_reason = $17, completed_at = $18,
			created_by = $19, updated_at = NOW()
		WHERE id = $20
		RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrMatchNotFound
	}
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete matches: %w", err)
	}
	return result.RowsAffected()
}

func matchDocumentArgs(m *models.Match) ([]interface{}, error) {
	teamA, err := jsonArg(m.TeamA)
	if err != nil {
		return nil, fmt.Errorf("encode teamA: %w", err)
	}
	teamB, err := jsonArg(m.TeamB)
	if err != nil {
		return nil, fmt.Errorf("encode teamB: %w", err)
	}
	playerA, err := jsonArg(m.PlayerA)
	if err != nil {
		return nil, fmt.Errorf("encode playerA: %w", err)
	}
	playerB, err := jsonArg(m.PlayerB)
	if err != nil {
		return nil, fmt.Errorf("encode playerB: %w", err)
	}
	score, err := jsonArg(m.Score)
	if err != nil {
		return nil, fmt.Errorf("encode score: %w", err)
	}
	settings, err := jsonArg(m.Settings)
	if err != nil {
		return nil, fmt.Errorf("encode match settings: %w", err)
	}

	history := m.ScoreHistory
	if history == nil {
		history = []models.ScoreEntry{}
	}
	historyArg, err := jsonArg(history)
	if err != nil {
		return nil, fmt.Errorf("encode score history: %w", err)
	}

	return []interface{}{
		m.TournamentID, m.Sport, m.Status, teamA, teamB, playerA, playerB,
		m.Venue, m.StartTime, m.EndTime, m.Round, m.BracketUID, score, settings, historyArg,
		m.Winner, m.WinningReason, m.CompletedAt, m.CreatedBy,
	}, nil
}

func scanMatch(row rowScanner) (*models.Match, error) {
	var (
		m                              models.Match
		teamA, teamB, playerA, playerB []byte
		score, settings, history       []byte
	)

	err := row.Scan(
		&m.ID, &m.TournamentID, &m.Sport, &m.Status, &teamA, &teamB, &playerA, &playerB,
		&m.Venue, &m.StartTime, &m.EndTime, &m.Round, &m.BracketUID, &score, &settings, &history,
		&m.Winner, &m.WinningReason, &m.CompletedAt, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, col := range []struct {
		raw []byte
		dst **models.MatchSide
	}{{teamA, &m.TeamA}, {teamB, &m.TeamB}, {playerA, &m.PlayerA}, {playerB, &m.PlayerB}} {
		if len(col.raw) == 0 {
			continue
		}
		side := &models.MatchSide{}
		if err := decodeJSON(col.raw, side); err != nil {
			return nil, fmt.Errorf("decode side of match %d: %w", m.ID, err)
		}
		*col.dst = side
	}

	if err := decodeJSON(settings, &m.Settings); err != nil {
		return nil, fmt.Errorf("decode settings of match %d: %w", m.ID, err)
	}
	if err := decodeJSON(history, &m.ScoreHistory); err != nil {
		return nil, fmt.Errorf("decode score history of match %d: %w", m.ID, err)
	}
	if m.ScoreHistory == nil {
		m.ScoreHistory = []models.ScoreEntry{}
	}

	m.Score, err = scoring.DecodeScore(m.Sport, score)
	if err != nil {
		return nil, fmt.Errorf("match %d: %w", m.ID, err)
	}
	return &m, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_bracket_uid_key":
			return ErrMatchBracketConflict
		case "matches_sport_check", "matches_status_check":
			return ErrMatchInvalidField
		}
	}
	return err
}

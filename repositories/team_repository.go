package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name conflict")
	ErrTeamInUse        = errors.New("team is referenced by a tournament")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	ListByIDs(ctx context.Context, ids []int) ([]models.Team, error)
	List(ctx context.Context) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

const teamColumns = `id, name, players, captain, coach, color, logo_key, created_by, created_at, updated_at`

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	players, err := playersArg(team.Players)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO teams (name, players, captain, coach, color, logo_key, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		team.Name, players, team.Captain, team.Coach, team.Color, team.LogoKey, team.CreatedBy,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
	return mapTeamError(err)
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := scanTeam(r.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team by id %d: %w", id, err)
	}
	return team, nil
}

func (r *postgresTeamRepository) ListByIDs(ctx context.Context, ids []int) ([]models.Team, error) {
	if len(ids) == 0 {
		return []models.Team{}, nil
	}
	return r.list(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = ANY($1) ORDER BY id`, pq.Array(ids))
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]models.Team, error) {
	return r.list(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at DESC, id DESC`)
}

func (r *postgresTeamRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		team, scanErr := scanTeam(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", scanErr)
		}
		teams = append(teams, *team)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during team rows iteration: %w", err)
	}
	return teams, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	players, err := playersArg(team.Players)
	if err != nil {
		return err
	}

	query := `
		UPDATE teams SET
			name = $1, players = $2, captain = $3, coach = $4, color = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	err = r.db.QueryRowContext(ctx, query,
		team.Name, players, team.Captain, team.Coach, team.Color, team.ID,
	).Scan(&team.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTeamNotFound
	}
	return mapTeamError(err)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1, updated_at = NOW() WHERE id = $2`, logoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update logo key for team %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return mapTeamError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func playersArg(players []models.Player) (interface{}, error) {
	if players == nil {
		players = []models.Player{}
	}
	arg, err := jsonArg(players)
	if err != nil {
		return nil, fmt.Errorf("encode players: %w", err)
	}
	return arg, nil
}

func scanTeam(row rowScanner) (*models.Team, error) {
	var (
		team    models.Team
		players []byte
	)
	err := row.Scan(
		&team.ID, &team.Name, &players, &team.Captain, &team.Coach, &team.Color,
		&team.LogoKey, &team.CreatedBy, &team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(players, &team.Players); err != nil {
		return nil, fmt.Errorf("decode players of team %d: %w", team.ID, err)
	}
	if team.Players == nil {
		team.Players = []models.Player{}
	}
	return &team, nil
}

func mapTeamError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch {
		case pqErr.Code == "23505" && pqErr.Constraint == "teams_name_key":
			return ErrTeamNameConflict
		case pqErr.Code == "23503":
			return ErrTeamInUse
		}
	}
	return err
}

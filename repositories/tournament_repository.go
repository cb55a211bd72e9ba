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
	ErrTournamentNotFound       = errors.New("tournament not found")
	ErrTournamentNameConflict   = errors.New("tournament name conflict")
	ErrTournamentCreatorInvalid = errors.New("tournament creator invalid")
	ErrTournamentTeamInvalid    = errors.New("tournament winner or runner-up team invalid")
)

type ListTournamentsFilter struct {
	Status *models.TournamentStatus
	Sport  *string
}

type TournamentRepository interface {
	Create(ctx context.Context, t *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error)
	AddTeam(ctx context.Context, id int, teamID int) error
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus, winnerID, runnerUpID *int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const tournamentColumns = `
	id, name, sport, format, status, start_date, end_date, venue, description,
	team_ids, winner_id, runner_up_id, created_by, created_at, updated_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	if t.TeamIDs == nil {
		t.TeamIDs = []int{}
	}

	query := `
		INSERT INTO tournaments (
			name, sport, format, status, start_date, end_date, venue, description, team_ids, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Sport, t.Format, t.Status, t.StartDate, t.EndDate, t.Venue, t.Description,
		pq.Array(t.TeamIDs), t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament by id %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter ListTournamentsFilter) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argID)
		args = append(args, *filter.Status)
		argID++
	}
	if filter.Sport != nil {
		query += fmt.Sprintf(" AND sport = $%d", argID)
		args = append(args, *filter.Sport)
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		t, scanErr := scanTournament(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", scanErr)
		}
		tournaments = append(tournaments, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during tournament rows iteration: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) AddTeam(ctx context.Context, id int, teamID int) error {
	query := `
		UPDATE tournaments
		SET team_ids = array_append(team_ids, $1), updated_at = NOW()
		WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, teamID, id)
	if err != nil {
		return fmt.Errorf("failed to add team %d to tournament %d: %w", teamID, id, err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus, winnerID, runnerUpID *int) error {
	query := `
		UPDATE tournaments SET
			status = $1,
			winner_id = COALESCE($2, winner_id),
			runner_up_id = COALESCE($3, runner_up_id),
			updated_at = NOW()
		WHERE id = $4`

	result, err := r.getExecutor(exec).ExecContext(ctx, query, status, winnerID, runnerUpID, id)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func scanTournament(row rowScanner) (*models.Tournament, error) {
	var (
		t       models.Tournament
		teamIDs pq.Int64Array
	)
	err := row.Scan(
		&t.ID, &t.Name, &t.Sport, &t.Format, &t.Status, &t.StartDate, &t.EndDate, &t.Venue, &t.Description,
		&teamIDs, &t.WinnerID, &t.RunnerUpID, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.TeamIDs = make([]int, len(teamIDs))
	for i, id := range teamIDs {
		t.TeamIDs[i] = int(id)
	}
	return &t, nil
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Constraint {
		case "tournaments_name_key":
			return ErrTournamentNameConflict
		case "tournaments_created_by_fkey":
			return ErrTournamentCreatorInvalid
		case "tournaments_winner_id_fkey", "tournaments_runner_up_id_fkey":
			return ErrTournamentTeamInvalid
		}
	}
	return err
}

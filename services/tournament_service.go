package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Ishan007-bot/Sports-Arena-Backend/brackets"
	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/repositories"
	"github.com/Ishan007-bot/Sports-Arena-Backend/scoring"
	"github.com/itbasis/go-clock"
	"golang.org/x/sync/errgroup"
)

// defaultFixtureDelay is how far from now generated fixtures are scheduled
// when the tournament's start date has already passed.
const defaultFixtureDelay = 15 * time.Minute

type TournamentService interface {
	ListTournaments(ctx context.Context, filter TournamentListFilter) ([]models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	CreateTournament(ctx context.Context, input CreateTournamentInput, creatorID int) (*models.Tournament, error)
	AddTeam(ctx context.Context, tournamentID, teamID int) (*models.Tournament, error)
	GenerateMatches(ctx context.Context, tournamentID, creatorID int) (*GeneratedFixtures, error)
	UpdateStatus(ctx context.Context, tournamentID int, input UpdateTournamentStatusInput) (*models.Tournament, error)
	GetStandings(ctx context.Context, tournamentID int) ([]models.TournamentStanding, error)
}

type TournamentListFilter struct {
	Status *models.TournamentStatus
	Sport  *string
}

type CreateTournamentInput struct {
	Name        string
	Sport       string
	Format      string
	StartDate   *time.Time
	EndDate     *time.Time
	Venue       *string
	Description *string
	TeamIDs     []int
}

type UpdateTournamentStatusInput struct {
	Status     models.TournamentStatus
	WinnerID   *int
	RunnerUpID *int
}

type GeneratedFixtures struct {
	Tournament *models.Tournament `json:"tournament"`
	Matches    []*models.Match    `json:"matches"`
}

type tournamentService struct {
	transactor     repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	clock          clock.Clock
	logger         *slog.Logger
}

func NewTournamentService(
	transactor repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	clock clock.Clock,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		transactor:     transactor,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		clock:          clock,
		logger:         logger,
	}
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter TournamentListFilter) ([]models.Tournament, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown tournament status %q", ErrValidationFailed, *filter.Status)
	}
	tournaments, err := s.tournamentRepo.List(ctx, repositories.ListTournamentsFilter{
		Status: filter.Status,
		Sport:  filter.Sport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	if len(tournaments) == 0 {
		return []models.Tournament{}, nil
	}

	var ids []int
	for _, t := range tournaments {
		ids = append(ids, referencedTeamIDs(&t)...)
	}
	teams, err := s.teamRepo.ListByIDs(ctx, uniqueInts(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament teams: %w", err)
	}
	byID := indexTeams(teams)
	for i := range tournaments {
		attachTeams(&tournaments[i], byID)
	}
	return tournaments, nil
}

// GetTournament loads the tournament with its teams and matches. The two
// lookups are independent and run concurrently.
func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.loadTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		teams   []models.Team
		matches []*models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var loadErr error
		teams, loadErr = s.teamRepo.ListByIDs(gctx, uniqueInts(referencedTeamIDs(t)))
		if loadErr != nil {
			return fmt.Errorf("failed to load teams for tournament %d: %w", id, loadErr)
		}
		return nil
	})
	g.Go(func() error {
		var loadErr error
		matches, loadErr = s.matchRepo.List(gctx, repositories.MatchFilter{TournamentID: &id})
		if loadErr != nil {
			return fmt.Errorf("failed to load matches for tournament %d: %w", id, loadErr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	attachTeams(t, indexTeams(teams))
	if matches == nil {
		matches = []*models.Match{}
	}
	t.Matches = matches
	return t, nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput, creatorID int) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tournament name is required", ErrValidationFailed)
	}
	sport, err := scoring.ParseSport(strings.TrimSpace(input.Sport))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	format := models.TournamentFormat(strings.TrimSpace(input.Format))
	if !format.Valid() {
		return nil, fmt.Errorf("%w: format must be knockout, round-robin or league", ErrValidationFailed)
	}
	if input.StartDate == nil || input.EndDate == nil {
		return nil, fmt.Errorf("%w: startDate and endDate are required", ErrValidationFailed)
	}
	if !input.EndDate.After(*input.StartDate) {
		return nil, ErrTournamentInvalidDateRange
	}

	teamIDs := uniqueInts(input.TeamIDs)
	if len(teamIDs) > 0 {
		if err := s.ensureTeamsExist(ctx, teamIDs); err != nil {
			return nil, err
		}
	}

	t := &models.Tournament{
		Name:        name,
		Sport:       sport,
		Format:      format,
		Status:      models.TournamentStatusUpcoming,
		StartDate:   input.StartDate.UTC(),
		EndDate:     input.EndDate.UTC(),
		Venue:       trimmedOrNil(input.Venue),
		Description: trimmedOrNil(input.Description),
		TeamIDs:     teamIDs,
		CreatedBy:   creatorID,
	}
	if t.TeamIDs == nil {
		t.TeamIDs = []int{}
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		case errors.Is(err, repositories.ErrTournamentCreatorInvalid):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("failed to create tournament: %w", err)
		}
	}
	s.logger.InfoContext(ctx, "tournament created",
		slog.Int("tournament_id", t.ID),
		slog.String("format", string(t.Format)),
		slog.Int("teams", len(t.TeamIDs)))
	return t, nil
}

func (s *tournamentService) AddTeam(ctx context.Context, tournamentID, teamID int) (*models.Tournament, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	for _, id := range t.TeamIDs {
		if id == teamID {
			return nil, ErrTeamAlreadyInTourney
		}
	}
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	if err := s.tournamentRepo.AddTeam(ctx, tournamentID, teamID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to add team %d to tournament %d: %w", teamID, tournamentID, err)
	}
	t.TeamIDs = append(t.TeamIDs, teamID)
	s.logger.InfoContext(ctx, "team added to tournament", slog.Int("tournament_id", tournamentID), slog.Int("team_id", teamID))
	return t, nil
}

// GenerateMatches creates the tournament's fixtures and moves it to ongoing.
// Both writes share one transaction.
func (s *tournamentService) GenerateMatches(ctx context.Context, tournamentID, creatorID int) (*GeneratedFixtures, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status == models.TournamentStatusCompleted || t.Status == models.TournamentStatusCancelled {
		return nil, fmt.Errorf("%w: tournament %d is %s", ErrInvalidStatusTransition, tournamentID, t.Status)
	}

	existing, err := s.matchRepo.List(ctx, repositories.MatchFilter{TournamentID: &tournamentID})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing matches for tournament %d: %w", tournamentID, err)
	}
	if len(existing) > 0 {
		return nil, ErrTournamentHasMatches
	}

	generator, err := brackets.ForFormat(t.Format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	fixtures, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		TournamentID: t.ID,
		TeamIDs:      t.TeamIDs,
	})
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughTeams) {
			return nil, ErrTournamentNotEnoughTeams
		}
		return nil, fmt.Errorf("failed to generate %s fixtures for tournament %d: %w", generator.GetName(), tournamentID, err)
	}

	teams, err := s.teamRepo.ListByIDs(ctx, t.TeamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for tournament %d: %w", tournamentID, err)
	}
	byID := indexTeams(teams)

	startTime := t.StartDate
	if now := s.clock.Now().UTC(); now.After(startTime) {
		startTime = now.Add(defaultFixtureDelay)
	}

	matches := make([]*models.Match, 0, len(fixtures))
	for _, fx := range fixtures {
		matches = append(matches, newFixtureMatch(t, fx, byID, startTime, creatorID))
	}

	err = s.transactor.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, m := range matches {
			if createErr := s.matchRepo.Create(ctx, exec, m); createErr != nil {
				if errors.Is(createErr, repositories.ErrMatchBracketConflict) {
					return ErrTournamentHasMatches
				}
				return fmt.Errorf("failed to create fixture %s: %w", *m.BracketUID, createErr)
			}
		}
		return s.tournamentRepo.UpdateStatus(ctx, exec, t.ID, models.TournamentStatusOngoing, nil, nil)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	t.Status = models.TournamentStatusOngoing
	attachTeams(t, byID)
	t.Matches = matches

	s.logger.InfoContext(ctx, "tournament fixtures generated",
		slog.Int("tournament_id", t.ID),
		slog.String("generator", generator.GetName()),
		slog.Int("matches", len(matches)))
	return &GeneratedFixtures{Tournament: t, Matches: matches}, nil
}

func (s *tournamentService) UpdateStatus(ctx context.Context, tournamentID int, input UpdateTournamentStatusInput) (*models.Tournament, error) {
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown tournament status %q", ErrValidationFailed, input.Status)
	}
	if input.WinnerID != nil && input.RunnerUpID != nil && *input.WinnerID == *input.RunnerUpID {
		return nil, fmt.Errorf("%w: winner and runner-up must be different teams", ErrValidationFailed)
	}

	err := s.tournamentRepo.UpdateStatus(ctx, nil, tournamentID, input.Status, input.WinnerID, input.RunnerUpID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentTeamInvalid):
			return nil, ErrTeamNotFound
		default:
			return nil, fmt.Errorf("failed to update status of tournament %d: %w", tournamentID, err)
		}
	}
	s.logger.InfoContext(ctx, "tournament status updated",
		slog.Int("tournament_id", tournamentID),
		slog.String("status", string(input.Status)))
	return s.GetTournament(ctx, tournamentID)
}

func (s *tournamentService) loadTournament(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return t, nil
}

func (s *tournamentService) ensureTeamsExist(ctx context.Context, ids []int) error {
	teams, err := s.teamRepo.ListByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}
	if len(teams) != len(ids) {
		return fmt.Errorf("%w: one or more teams do not exist", ErrTeamNotFound)
	}
	return nil
}

func newFixtureMatch(t *models.Tournament, fx *brackets.BracketMatch, teams map[int]models.Team, startTime time.Time, creatorID int) *models.Match {
	tournamentID := t.ID
	round := fx.Round
	uid := fx.UID
	start := startTime

	m := &models.Match{
		TournamentID: &tournamentID,
		Sport:        t.Sport,
		Status:       models.MatchStatusScheduled,
		Venue:        t.Venue,
		StartTime:    &start,
		Round:        &round,
		BracketUID:   &uid,
		ScoreHistory: []models.ScoreEntry{},
		CreatedBy:    strconv.Itoa(creatorID),
	}
	sideA := fixtureSide(fx.TeamAID, fx.SourceMatchAUID, teams)
	sideB := fixtureSide(fx.TeamBID, fx.SourceMatchBUID, teams)
	if t.Sport.TeamBased() {
		m.TeamA, m.TeamB = sideA, sideB
	} else {
		m.PlayerA, m.PlayerB = sideA, sideB
	}
	return m
}

// fixtureSide names a side after its team, or after the fixture that will
// decide it.
func fixtureSide(teamID *int, sourceUID *string, teams map[int]models.Team) *models.MatchSide {
	switch {
	case teamID != nil:
		id := *teamID
		side := &models.MatchSide{TeamID: &id}
		if team, ok := teams[id]; ok {
			side.Name = team.Name
		}
		return side
	case sourceUID != nil:
		return &models.MatchSide{Name: "Winner of " + *sourceUID}
	}
	return nil
}

func referencedTeamIDs(t *models.Tournament) []int {
	ids := append([]int(nil), t.TeamIDs...)
	if t.WinnerID != nil {
		ids = append(ids, *t.WinnerID)
	}
	if t.RunnerUpID != nil {
		ids = append(ids, *t.RunnerUpID)
	}
	return ids
}

func indexTeams(teams []models.Team) map[int]models.Team {
	byID := make(map[int]models.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}
	return byID
}

func attachTeams(t *models.Tournament, byID map[int]models.Team) {
	t.Teams = make([]models.Team, 0, len(t.TeamIDs))
	for _, id := range t.TeamIDs {
		if team, ok := byID[id]; ok {
			t.Teams = append(t.Teams, team)
		}
	}
	if t.WinnerID != nil {
		if team, ok := byID[*t.WinnerID]; ok {
			t.Winner = &team
		}
	}
	if t.RunnerUpID != nil {
		if team, ok := byID[*t.RunnerUpID]; ok {
			t.RunnerUp = &team
		}
	}
}

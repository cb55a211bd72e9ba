package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/repositories"
	"github.com/Ishan007-bot/Sports-Arena-Backend/storage"
	"github.com/google/uuid"
)

const teamLogoEntity = "teams"

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type TeamService interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	CreateTeam(ctx context.Context, input TeamInput, creatorID int) (*models.Team, error)
	UpdateTeam(ctx context.Context, id int, input TeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) error
	AddPlayer(ctx context.Context, teamID int, input PlayerInput) (*models.Team, error)
	RemovePlayer(ctx context.Context, teamID int, playerID string) (*models.Team, error)
	UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error)
}

type TeamInput struct {
	Name    string
	Players []PlayerInput
	Captain *string
	Coach   *string
	Color   *string
}

type PlayerInput struct {
	Name         string
	Position     *string
	JerseyNumber *int
}

type teamService struct {
	teamRepo repositories.TeamRepository
	uploader storage.FileUploader
	logger   *slog.Logger
}

// NewTeamService accepts a nil uploader; logo uploads are then rejected.
func NewTeamService(teamRepo repositories.TeamRepository, uploader storage.FileUploader, logger *slog.Logger) TeamService {
	return &teamService{
		teamRepo: teamRepo,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	if teams == nil {
		return []models.Team{}, nil
	}
	for i := range teams {
		s.populateLogoURL(&teams[i])
	}
	return teams, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) CreateTeam(ctx context.Context, input TeamInput, creatorID int) (*models.Team, error) {
	team := &models.Team{}
	if err := applyTeamInput(team, input); err != nil {
		return nil, err
	}
	if creatorID > 0 {
		team.CreatedBy = &creatorID
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	s.logger.InfoContext(ctx, "team created", slog.Int("team_id", team.ID), slog.Int("players", len(team.Players)))
	return team, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input TeamInput) (*models.Team, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyTeamInput(team, input); err != nil {
		return nil, err
	}
	return s.save(ctx, team)
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) error {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamInUse):
			return ErrTeamInUse
		default:
			return fmt.Errorf("failed to delete team %d: %w", id, err)
		}
	}

	if team.LogoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete team logo", slog.Int("team_id", id), slog.Any("error", err))
		}
	}
	return nil
}

func (s *teamService) AddPlayer(ctx context.Context, teamID int, input PlayerInput) (*models.Team, error) {
	player, err := newPlayer(input)
	if err != nil {
		return nil, err
	}

	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team.Players = append(team.Players, player)
	return s.save(ctx, team)
}

func (s *teamService) RemovePlayer(ctx context.Context, teamID int, playerID string) (*models.Team, error) {
	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.Player, 0, len(team.Players))
	for _, p := range team.Players {
		if p.ID != playerID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(team.Players) {
		return nil, ErrPlayerNotFound
	}
	team.Players = kept
	return s.save(ctx, team)
}

func (s *teamService) UploadLogo(ctx context.Context, teamID int, contentType string, file io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrLogoUploadDisabled
	}
	team, err := s.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	key, err := storage.LogoKey(teamLogoEntity, teamID, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", teamID, err)
	}

	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to remove orphaned logo", slog.String("key", key), slog.Any("error", delErr))
		}
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to store logo key for team %d: %w", teamID, err)
	}

	if old := team.LogoKey; old != nil && *old != key {
		if err := s.uploader.Delete(ctx, *old); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous team logo", slog.String("key", *old), slog.Any("error", err))
		}
	}

	team.LogoKey = &key
	s.populateLogoURL(team)
	return team, nil
}

func (s *teamService) save(ctx context.Context, team *models.Team) (*models.Team, error) {
	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		default:
			return nil, fmt.Errorf("failed to update team %d: %w", team.ID, err)
		}
	}
	return team, nil
}

func (s *teamService) populateLogoURL(team *models.Team) {
	if team == nil || team.LogoKey == nil || *team.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*team.LogoKey); url != "" {
		team.LogoURL = &url
	}
}

func applyTeamInput(team *models.Team, input TeamInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return fmt.Errorf("%w: team name is required", ErrValidationFailed)
	}
	team.Name = name
	team.Captain = trimmedOrNil(input.Captain)
	team.Coach = trimmedOrNil(input.Coach)

	switch {
	case input.Color != nil && strings.TrimSpace(*input.Color) != "":
		color := strings.TrimSpace(*input.Color)
		if !hexColor.MatchString(color) {
			return fmt.Errorf("%w: color must be a hex value like #1a2b3c", ErrValidationFailed)
		}
		team.Color = color
	case team.Color == "":
		team.Color = models.DefaultTeamColor
	}

	if input.Players != nil {
		players := make([]models.Player, 0, len(input.Players))
		for _, in := range input.Players {
			p, err := newPlayer(in)
			if err != nil {
				return err
			}
			players = append(players, p)
		}
		team.Players = players
	}
	if team.Players == nil {
		team.Players = []models.Player{}
	}
	return nil
}

func newPlayer(input PlayerInput) (models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Player{}, fmt.Errorf("%w: player name is required", ErrValidationFailed)
	}
	if n := input.JerseyNumber; n != nil && (*n < 1 || *n > 99) {
		return models.Player{}, fmt.Errorf("%w: jersey number must be between 1 and 99", ErrValidationFailed)
	}
	return models.Player{
		ID:           uuid.NewString(),
		Name:         name,
		Position:     trimmedOrNil(input.Position),
		JerseyNumber: input.JerseyNumber,
	}, nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Ishan007-bot/Sports-Arena-Backend/live"
	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/repositories"
	"github.com/Ishan007-bot/Sports-Arena-Backend/scoring"
	"github.com/itbasis/go-clock"
)

const defaultMatchCreator = "admin"

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context, filter MatchListFilter) ([]*models.Match, error)
	ListLiveMatches(ctx context.Context) ([]*models.Match, error)

	StartMatch(ctx context.Context, id int) (*models.Match, error)
	ApplyScoreUpdate(ctx context.Context, id int, input ScoreUpdateInput) (*models.Match, error)
	EndMatch(ctx context.Context, id int, input EndMatchInput) (*models.Match, error)
	CancelMatch(ctx context.Context, id int) (*models.Match, error)
	UndoLastCricketBall(ctx context.Context, id int) (*models.Match, error)

	DeleteMatch(ctx context.Context, id int) error
	ClearMatches(ctx context.Context) (int64, error)
}

type CreateMatchInput struct {
	Sport        string
	TournamentID *int
	TeamA        *models.MatchSide
	TeamB        *models.MatchSide
	PlayerA      *models.MatchSide
	PlayerB      *models.MatchSide
	Venue        *string
	StartTime    *time.Time
	Settings     scoring.Settings
	CreatedBy    string
}

type MatchListFilter struct {
	Status       *models.MatchStatus
	TournamentID *int
}

// ScoreUpdateInput is one scoring action. Sport may be left empty, in which
// case the match's own sport is used.
type ScoreUpdateInput struct {
	Sport   string
	Action  scoring.Action
	Team    scoring.Side
	Details json.RawMessage
}

type EndMatchInput struct {
	Winner        *scoring.Side
	WinningReason *string
}

type matchService struct {
	matchRepo repositories.MatchRepository
	publisher live.Publisher
	clock     clock.Clock
	locks     *matchLocks
	logger    *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	publisher live.Publisher,
	clock clock.Clock,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		publisher: publisher,
		clock:     clock,
		locks:     newMatchLocks(),
		logger:    logger,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	sport, err := scoring.ParseSport(strings.TrimSpace(input.Sport))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if !hasBothSides(input.TeamA, input.TeamB) && !hasBothSides(input.PlayerA, input.PlayerB) {
		return nil, fmt.Errorf("%w: a match needs teamA and teamB or playerA and playerB", ErrValidationFailed)
	}
	if input.Settings.TotalSets < 0 || input.Settings.TotalGames < 0 {
		return nil, fmt.Errorf("%w: totalSets and totalGames must not be negative", ErrValidationFailed)
	}

	createdBy := strings.TrimSpace(input.CreatedBy)
	if createdBy == "" {
		createdBy = defaultMatchCreator
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		Sport:        sport,
		Status:       models.MatchStatusScheduled,
		TeamA:        input.TeamA,
		TeamB:        input.TeamB,
		PlayerA:      input.PlayerA,
		PlayerB:      input.PlayerB,
		Venue:        input.Venue,
		StartTime:    input.StartTime,
		Settings:     input.Settings,
		ScoreHistory: []models.ScoreEntry{},
		CreatedBy:    createdBy,
	}

	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created", slog.Int("match_id", match.ID), slog.String("sport", string(sport)))
	return match, nil
}

func hasBothSides(a, b *models.MatchSide) bool {
	return a != nil && b != nil
}

func (s *matchService) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	return s.loadMatch(ctx, id)
}

func (s *matchService) ListMatches(ctx context.Context, filter MatchListFilter) ([]*models.Match, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown match status %q", ErrValidationFailed, *filter.Status)
	}
	matches, err := s.matchRepo.List(ctx, repositories.MatchFilter{
		Status:       filter.Status,
		TournamentID: filter.TournamentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}

func (s *matchService) ListLiveMatches(ctx context.Context) ([]*models.Match, error) {
	status := models.MatchStatusLive
	return s.ListMatches(ctx, MatchListFilter{Status: &status})
}

func (s *matchService) StartMatch(ctx context.Context, id int) (*models.Match, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	match, err := s.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if match.Status != models.MatchStatusScheduled {
		return nil, fmt.Errorf("%w: cannot start a %s match", ErrInvalidStatusTransition, match.Status)
	}

	now := s.clock.Now().UTC()
	match.Status = models.MatchStatusLive
	match.StartTime = &now

	if err := s.saveMatch(ctx, match); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "match started", slog.Int("match_id", match.ID))

	s.publish(ctx, live.MatchTopic(match.ID), live.EventMatchStarted, live.Payload{
		MatchID:   match.ID,
		Sport:     match.Sport,
		StartTime: match.StartTime,
	})
	s.publish(ctx, live.LiveScoreboardTopic, live.EventMatchStarted, live.Payload{
		MatchID:   match.ID,
		Sport:     match.Sport,
		TeamA:     match.TeamA,
		TeamB:     match.TeamB,
		PlayerA:   match.PlayerA,
		PlayerB:   match.PlayerB,
		StartTime: match.StartTime,
	})
	return match, nil
}

// ApplyScoreUpdate records the action, advances the score, persists it and
// completes the match when a winning condition is met. Viewers are notified
// after the match is stored.
func (s *matchService) ApplyScoreUpdate(ctx context.Context, id int, input ScoreUpdateInput) (*models.Match, error) {
	if strings.TrimSpace(string(input.Action)) == "" {
		return nil, fmt.Errorf("%w: action is required", ErrValidationFailed)
	}
	details, err := scoring.ParseDetails(input.Details)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	match, err := s.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if match.Status.Finished() {
		return nil, fmt.Errorf("%w: match %d is %s", ErrMatchFinished, id, match.Status)
	}
	if input.Sport != "" && scoring.Sport(input.Sport) != match.Sport {
		return nil, fmt.Errorf("%w: got %q, match %d is %s", ErrSportMismatch, input.Sport, id, match.Sport)
	}

	now := s.clock.Now().UTC()
	match.ScoreHistory = append(match.ScoreHistory, models.ScoreEntry{
		Action:    input.Action,
		Team:      input.Team,
		Details:   rawDetails(input.Details),
		Timestamp: now,
	})

	action := scoring.NormalizeAction(match.Sport, input.Action, details)
	score, err := scoring.Apply(match.Sport, match.Score, action, input.Team, details)
	if err != nil {
		return nil, fmt.Errorf("failed to apply %s to match %d: %w", action, id, err)
	}
	match.Score = score

	if err := s.saveMatch(ctx, match); err != nil {
		return nil, err
	}

	completed := false
	if outcome := scoring.Evaluate(match.Sport, match.Score, match.Settings); outcome != nil {
		s.complete(match, outcome.Winner, outcome.Reason, now)
		if err := s.saveMatch(ctx, match); err != nil {
			return nil, err
		}
		completed = true
		s.logger.InfoContext(ctx, "match completed",
			slog.Int("match_id", match.ID),
			slog.String("winner", string(outcome.Winner)),
			slog.String("reason", outcome.Reason))
	}

	s.publish(ctx, live.MatchTopic(match.ID), live.EventScoreUpdate, live.Payload{
		MatchID:       match.ID,
		Sport:         match.Sport,
		Action:        input.Action,
		Team:          input.Team,
		Details:       rawDetails(input.Details),
		Score:         match.Score,
		Status:        match.Status,
		Winner:        match.Winner,
		WinningReason: match.WinningReason,
		Timestamp:     &now,
	})
	s.publishLiveScore(ctx, match, now)
	if completed {
		s.publishMatchEnded(ctx, match)
	}
	return match, nil
}

func (s *matchService) EndMatch(ctx context.Context, id int, input EndMatchInput) (*models.Match, error) {
	if input.Winner != nil && !validWinner(*input.Winner) {
		return nil, fmt.Errorf("%w: unknown winner %q", ErrValidationFailed, *input.Winner)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	match, err := s.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if match.Status.Finished() {
		return nil, fmt.Errorf("%w: cannot end a %s match", ErrInvalidStatusTransition, match.Status)
	}

	now := s.clock.Now().UTC()
	match.Status = models.MatchStatusCompleted
	match.Winner = input.Winner
	match.WinningReason = input.WinningReason
	match.EndTime = &now
	match.CompletedAt = &now

	if err := s.saveMatch(ctx, match); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "match ended manually", slog.Int("match_id", match.ID))

	s.publishMatchEnded(ctx, match)
	return match, nil
}

func (s *matchService) CancelMatch(ctx context.Context, id int) (*models.Match, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	match, err := s.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if match.Status.Finished() {
		return nil, fmt.Errorf("%w: cannot cancel a %s match", ErrInvalidStatusTransition, match.Status)
	}

	now := s.clock.Now().UTC()
	match.Status = models.MatchStatusCancelled
	match.EndTime = &now

	if err := s.saveMatch(ctx, match); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "match cancelled", slog.Int("match_id", match.ID))

	s.publishLiveScore(ctx, match, now)
	return match, nil
}

// UndoLastCricketBall resets the cricket score to its zero state and clears
// the history. It does not replay the remaining actions.
func (s *matchService) UndoLastCricketBall(ctx context.Context, id int) (*models.Match, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	match, err := s.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if match.Sport != scoring.Cricket {
		return nil, ErrUndoNotSupported
	}
	if match.Status.Finished() {
		return nil, fmt.Errorf("%w: match %d is %s", ErrMatchFinished, id, match.Status)
	}

	match.Score, err = scoring.NewScore(scoring.Cricket)
	if err != nil {
		return nil, err
	}
	match.ScoreHistory = []models.ScoreEntry{}

	if err := s.saveMatch(ctx, match); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	s.publish(ctx, live.MatchTopic(match.ID), live.EventScoreUpdate, live.Payload{
		MatchID:   match.ID,
		Sport:     match.Sport,
		Action:    scoring.ActionUndo,
		Score:     match.Score,
		Status:    match.Status,
		Timestamp: &now,
	})
	s.publishLiveScore(ctx, match, now)
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	s.logger.InfoContext(ctx, "match deleted", slog.Int("match_id", id))
	return nil
}

func (s *matchService) ClearMatches(ctx context.Context) (int64, error) {
	deleted, err := s.matchRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear matches: %w", err)
	}
	s.logger.WarnContext(ctx, "all matches deleted", slog.Int64("count", deleted))
	return deleted, nil
}

func (s *matchService) loadMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) saveMatch(ctx context.Context, match *models.Match) error {
	if err := s.matchRepo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to save match %d: %w", match.ID, err)
	}
	return nil
}

func (s *matchService) complete(match *models.Match, winner scoring.Side, reason string, at time.Time) {
	match.Status = models.MatchStatusCompleted
	match.Winner = &winner
	match.WinningReason = &reason
	match.CompletedAt = &at
	match.EndTime = &at
}

func (s *matchService) publishLiveScore(ctx context.Context, match *models.Match, at time.Time) {
	s.publish(ctx, live.LiveScoreboardTopic, live.EventLiveScoreUpdate, live.Payload{
		MatchID:       match.ID,
		Sport:         match.Sport,
		TeamA:         match.TeamA,
		TeamB:         match.TeamB,
		PlayerA:       match.PlayerA,
		PlayerB:       match.PlayerB,
		Score:         match.Score,
		Status:        match.Status,
		Winner:        match.Winner,
		WinningReason: match.WinningReason,
		Timestamp:     &at,
	})
}

func (s *matchService) publishMatchEnded(ctx context.Context, match *models.Match) {
	s.publish(ctx, live.MatchTopic(match.ID), live.EventMatchEnded, live.Payload{
		MatchID:    match.ID,
		Sport:      match.Sport,
		Winner:     match.Winner,
		Reason:     match.WinningReason,
		FinalScore: match.Score,
		EndTime:    match.EndTime,
	})
	s.publish(ctx, live.LiveScoreboardTopic, live.EventMatchEnded, live.Payload{
		MatchID:    match.ID,
		Sport:      match.Sport,
		TeamA:      match.TeamA,
		TeamB:      match.TeamB,
		PlayerA:    match.PlayerA,
		PlayerB:    match.PlayerB,
		Winner:     match.Winner,
		Reason:     match.WinningReason,
		FinalScore: match.Score,
		EndTime:    match.EndTime,
	})
}

// publish never fails the caller; the match is already stored.
func (s *matchService) publish(ctx context.Context, topic string, kind live.EventType, payload live.Payload) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, topic, live.Event{Type: kind, Payload: payload})
	if err != nil {
		s.logger.WarnContext(ctx, "failed to publish match event",
			slog.String("topic", topic),
			slog.String("event", string(kind)),
			slog.Int("match_id", payload.MatchID),
			slog.Any("error", err))
	}
}

func rawDetails(raw json.RawMessage) json.RawMessage {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	return raw
}

func validWinner(side scoring.Side) bool {
	switch side {
	case scoring.TeamA, scoring.TeamB, scoring.PlayerA, scoring.PlayerB, scoring.Draw:
		return true
	}
	return false
}

package models

import (
	"encoding/json"
	"time"

	"github.com/Ishan007-bot/Sports-Arena-Backend/scoring"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusLive, MatchStatusCompleted, MatchStatusCancelled:
		return true
	}
	return false
}

// Finished reports whether the match accepts no further scoring.
func (s MatchStatus) Finished() bool {
	return s == MatchStatusCompleted || s == MatchStatusCancelled
}

// MatchSide describes one competitor. Tournament fixtures reference a team by
// id, friendly matches usually carry only a display name.
type MatchSide struct {
	TeamID *int   `json:"teamId,omitempty"`
	Name   string `json:"name,omitempty"`
	Team   string `json:"team,omitempty"`
}

// ScoreEntry is one applied action in a match's score history.
type ScoreEntry struct {
	Action    scoring.Action  `json:"action"`
	Team      scoring.Side    `json:"team,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type Match struct {
	ID           int           `json:"id" db:"id"`
	TournamentID *int          `json:"tournamentId,omitempty" db:"tournament_id"`
	Sport        scoring.Sport `json:"sport" db:"sport"`
	Status       MatchStatus   `json:"status" db:"status"`

	TeamA   *MatchSide `json:"teamA,omitempty" db:"team_a"`
	TeamB   *MatchSide `json:"teamB,omitempty" db:"team_b"`
	PlayerA *MatchSide `json:"playerA,omitempty" db:"player_a"`
	PlayerB *MatchSide `json:"playerB,omitempty" db:"player_b"`

	Venue     *string    `json:"venue,omitempty" db:"venue"`
	StartTime *time.Time `json:"startTime,omitempty" db:"start_time"`
	EndTime   *time.Time `json:"endTime,omitempty" db:"end_time"`

	// Round and BracketUID are set on generated tournament fixtures.
	Round      *int    `json:"round,omitempty" db:"round"`
	BracketUID *string `json:"bracketUid,omitempty" db:"bracket_uid"`

	Score        *scoring.Score   `json:"score" db:"score"`
	Settings     scoring.Settings `json:"matchSettings" db:"match_settings"`
	ScoreHistory []ScoreEntry     `json:"scoreHistory" db:"score_history"`

	Winner        *scoring.Side `json:"winner,omitempty" db:"winner"`
	WinningReason *string       `json:"winningReason,omitempty" db:"winning_reason"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty" db:"completed_at"`

	CreatedBy string    `json:"createdBy" db:"created_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

package models

import (
	"time"

	"github.com/Ishan007-bot/Sports-Arena-Backend/scoring"
)

type TournamentStatus string

const (
	TournamentStatusUpcoming  TournamentStatus = "upcoming"
	TournamentStatusOngoing   TournamentStatus = "ongoing"
	TournamentStatusCompleted TournamentStatus = "completed"
	TournamentStatusCancelled TournamentStatus = "cancelled"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentStatusUpcoming, TournamentStatusOngoing, TournamentStatusCompleted, TournamentStatusCancelled:
		return true
	}
	return false
}

type TournamentFormat string

const (
	FormatKnockout   TournamentFormat = "knockout"
	FormatRoundRobin TournamentFormat = "round-robin"
	// FormatLeague plays every pairing twice, home and away.
	FormatLeague TournamentFormat = "league"
)

func (f TournamentFormat) Valid() bool {
	return f == FormatKnockout || f == FormatRoundRobin || f == FormatLeague
}

type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Sport       scoring.Sport    `json:"sport" db:"sport"`
	Format      TournamentFormat `json:"format" db:"format"`
	Status      TournamentStatus `json:"status" db:"status"`
	StartDate   time.Time        `json:"startDate" db:"start_date"`
	EndDate     time.Time        `json:"endDate" db:"end_date"`
	Venue       *string          `json:"venue,omitempty" db:"venue"`
	Description *string          `json:"description,omitempty" db:"description"`
	TeamIDs     []int            `json:"teamIds" db:"team_ids"`
	WinnerID    *int             `json:"winnerId,omitempty" db:"winner_id"`
	RunnerUpID  *int             `json:"runnerUpId,omitempty" db:"runner_up_id"`
	CreatedBy   int              `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`

	// Populated on detail reads.
	Teams    []Team   `json:"teams,omitempty" db:"-"`
	Matches  []*Match `json:"matches,omitempty" db:"-"`
	Winner   *Team    `json:"winner,omitempty" db:"-"`
	RunnerUp *Team    `json:"runnerUp,omitempty" db:"-"`
}

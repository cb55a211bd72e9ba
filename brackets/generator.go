// Package brackets turns a tournament's team list into its fixture list.
package brackets

import (
	"context"
	"errors"
	"fmt"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
)

var ErrNotEnoughTeams = errors.New("at least two teams are required")

type GenerateBracketParams struct {
	TournamentID int
	TeamIDs      []int
}

// BracketMatch is one generated fixture. A side is either a known team or the
// winner of an earlier fixture; later knockout rounds start with neither.
type BracketMatch struct {
	UID   string
	Round int
	Order int

	TeamAID *int
	TeamBID *int

	SourceMatchAUID *string
	SourceMatchBUID *string
}

// IsPlaceholder reports whether at least one side is still undecided.
func (m *BracketMatch) IsPlaceholder() bool {
	return m.TeamAID == nil || m.TeamBID == nil
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)
	GetName() string
}

// ForFormat picks the generator for a tournament format.
func ForFormat(format models.TournamentFormat) (BracketGenerator, error) {
	switch format {
	case models.FormatKnockout:
		return NewKnockoutGenerator(), nil
	case models.FormatRoundRobin:
		return NewRoundRobinGenerator(1), nil
	case models.FormatLeague:
		return NewRoundRobinGenerator(2), nil
	}
	return nil, fmt.Errorf("no bracket generator for format %q", format)
}

func checkTeams(ids []int) error {
	if len(ids) < 2 {
		return fmt.Errorf("%w (found %d)", ErrNotEnoughTeams, len(ids))
	}
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("invalid team id %d", id)
		}
		if seen[id] {
			return fmt.Errorf("team %d is listed twice", id)
		}
		seen[id] = true
	}
	return nil
}

func intRef(v int) *int { return &v }

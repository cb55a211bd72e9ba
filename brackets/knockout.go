package brackets

import (
	"context"
	"fmt"
	"math/bits"
)

// slot is one entrant of a round: a team, or the winner of a fixture.
type slot struct {
	teamID    *int
	sourceUID *string
}

type KnockoutGenerator struct{}

func NewKnockoutGenerator() BracketGenerator {
	return &KnockoutGenerator{}
}

func (g *KnockoutGenerator) GetName() string {
	return "Knockout"
}

// GenerateBracket pads the field to the next power of two. The first teams
// are paired in order in round one and the teams left over get a bye into
// round two. Every later fixture waits on earlier results.
func (g *KnockoutGenerator) GenerateBracket(_ context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	if err := checkTeams(params.TeamIDs); err != nil {
		return nil, err
	}

	n := len(params.TeamIDs)
	size := 1 << bits.Len(uint(n-1))
	playing := 2*n - size

	matches := make([]*BracketMatch, 0, n-1)
	next := make([]slot, 0, size/2)

	order := 0
	for i := 0; i < playing; i += 2 {
		order++
		m := &BracketMatch{
			UID:     knockoutUID(params.TournamentID, 1, order),
			Round:   1,
			Order:   order,
			TeamAID: intRef(params.TeamIDs[i]),
			TeamBID: intRef(params.TeamIDs[i+1]),
		}
		matches = append(matches, m)
		next = append(next, slot{sourceUID: &m.UID})
	}
	for _, id := range params.TeamIDs[playing:] {
		next = append(next, slot{teamID: intRef(id)})
	}

	for round := 2; len(next) > 1; round++ {
		current := next
		next = make([]slot, 0, len(current)/2)
		for i := 0; i < len(current); i += 2 {
			m := &BracketMatch{
				UID:             knockoutUID(params.TournamentID, round, i/2+1),
				Round:           round,
				Order:           i/2 + 1,
				TeamAID:         current[i].teamID,
				TeamBID:         current[i+1].teamID,
				SourceMatchAUID: current[i].sourceUID,
				SourceMatchBUID: current[i+1].sourceUID,
			}
			matches = append(matches, m)
			next = append(next, slot{sourceUID: &m.UID})
		}
	}
	return matches, nil
}

func knockoutUID(tournamentID, round, order int) string {
	return fmt.Sprintf("T%d-KO-R%dM%d", tournamentID, round, order)
}

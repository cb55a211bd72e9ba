package brackets

import (
	"context"
	"fmt"
)

type RoundRobinGenerator struct {
	legs int
}

// NewRoundRobinGenerator builds a generator where every pair of teams meets
// once per leg. Values below one are treated as a single leg.
func NewRoundRobinGenerator(legs int) BracketGenerator {
	if legs < 1 {
		legs = 1
	}
	return &RoundRobinGenerator{legs: legs}
}

func (g *RoundRobinGenerator) GetName() string {
	if g.legs > 1 {
		return "League"
	}
	return "Round Robin"
}

// GenerateBracket schedules with the circle method: the first team stays put
// while the others rotate. An odd field gets a resting slot, so one team sits
// out each round. Even legs swap home and away.
func (g *RoundRobinGenerator) GenerateBracket(_ context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	if err := checkTeams(params.TeamIDs); err != nil {
		return nil, err
	}

	ring := make([]int, len(params.TeamIDs), len(params.TeamIDs)+1)
	copy(ring, params.TeamIDs)
	if len(ring)%2 != 0 {
		ring = append(ring, 0)
	}
	n := len(ring)
	roundsPerLeg := n - 1

	matches := make([]*BracketMatch, 0, g.legs*len(params.TeamIDs)*(len(params.TeamIDs)-1)/2)
	for leg := 1; leg <= g.legs; leg++ {
		rotation := make([]int, n)
		copy(rotation, ring)

		for r := 0; r < roundsPerLeg; r++ {
			round := (leg-1)*roundsPerLeg + r + 1
			order := 0
			for i := 0; i < n/2; i++ {
				home, away := rotation[i], rotation[n-1-i]
				if home == 0 || away == 0 {
					continue
				}
				if leg%2 == 0 {
					home, away = away, home
				}
				order++
				matches = append(matches, &BracketMatch{
					UID:     roundRobinUID(params.TournamentID, leg, home, away),
					Round:   round,
					Order:   order,
					TeamAID: intRef(home),
					TeamBID: intRef(away),
				})
			}
			rotate(rotation)
		}
	}
	return matches, nil
}

// rotate keeps the first element fixed and shifts the rest one place clockwise.
func rotate(ring []int) {
	if len(ring) < 3 {
		return
	}
	last := ring[len(ring)-1]
	copy(ring[2:], ring[1:len(ring)-1])
	ring[1] = last
}

func roundRobinUID(tournamentID, leg, home, away int) string {
	return fmt.Sprintf("T%d-RR-L%d-%dv%d", tournamentID, leg, home, away)
}

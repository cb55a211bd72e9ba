package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/repositories"
	"github.com/Ishan007-bot/Sports-Arena-Backend/scoring"
)

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// GetStandings builds the tournament table from its completed fixtures.
// Every registered team gets a row, including teams that have not played.
func (s *tournamentService) GetStandings(ctx context.Context, tournamentID int) ([]models.TournamentStanding, error) {
	t, err := s.loadTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	teams, err := s.teamRepo.ListByIDs(ctx, uniqueInts(t.TeamIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for tournament %d: %w", tournamentID, err)
	}

	completed := models.MatchStatusCompleted
	matches, err := s.matchRepo.List(ctx, repositories.MatchFilter{TournamentID: &tournamentID, Status: &completed})
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for tournament %d: %w", tournamentID, err)
	}

	return computeStandings(t.TeamIDs, indexTeams(teams), matches), nil
}

func computeStandings(teamIDs []int, teams map[int]models.Team, matches []*models.Match) []models.TournamentStanding {
	rows := make(map[int]*models.TournamentStanding, len(teamIDs))
	order := make([]*models.TournamentStanding, 0, len(teamIDs))
	for _, id := range uniqueInts(teamIDs) {
		row := &models.TournamentStanding{TeamID: id, TeamName: teams[id].Name}
		rows[id] = row
		order = append(order, row)
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted {
			continue
		}
		a, b := sideTeamIDs(m)
		rowA, okA := rows[a]
		rowB, okB := rows[b]
		if !okA || !okB {
			continue
		}

		rowA.Played++
		rowB.Played++
		if forA, forB, ok := m.Score.Headline(); ok {
			rowA.ScoreFor += forA
			rowA.ScoreAgainst += forB
			rowB.ScoreFor += forB
			rowB.ScoreAgainst += forA
		}

		switch {
		case m.Winner == nil || *m.Winner == scoring.Draw:
			rowA.Draws++
			rowB.Draws++
		case m.Winner.IsA():
			rowA.Wins++
			rowB.Losses++
		default:
			rowB.Wins++
			rowA.Losses++
		}
	}

	for _, row := range order {
		row.ScoreDifference = row.ScoreFor - row.ScoreAgainst
		row.Points = row.Wins*pointsForWin + row.Draws*pointsForDraw
	}

	sort.SliceStable(order, func(i, j int) bool {
		x, y := order[i], order[j]
		if x.Points != y.Points {
			return x.Points > y.Points
		}
		if x.ScoreDifference != y.ScoreDifference {
			return x.ScoreDifference > y.ScoreDifference
		}
		if x.ScoreFor != y.ScoreFor {
			return x.ScoreFor > y.ScoreFor
		}
		return x.TeamName < y.TeamName
	})

	out := make([]models.TournamentStanding, len(order))
	for i, row := range order {
		row.Rank = i + 1
		out[i] = *row
	}
	return out
}

// sideTeamIDs returns 0 for a side that is not bound to a team.
func sideTeamIDs(m *models.Match) (int, int) {
	a, b := m.TeamA, m.TeamB
	if !m.Sport.TeamBased() {
		a, b = m.PlayerA, m.PlayerB
	}
	return sideTeamID(a), sideTeamID(b)
}

func sideTeamID(side *models.MatchSide) int {
	if side == nil || side.TeamID == nil {
		return 0
	}
	return *side.TeamID
}

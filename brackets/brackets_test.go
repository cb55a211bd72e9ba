package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

func pairKey(a, b int) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d-%d", a, b)
}

func TestForFormat(t *testing.T) {
	g, err := ForFormat(models.FormatKnockout)
	require.NoError(t, err)
	assert.Equal(t, "Knockout", g.GetName())

	g, err = ForFormat(models.FormatRoundRobin)
	require.NoError(t, err)
	assert.Equal(t, "Round Robin", g.GetName())

	g, err = ForFormat(models.FormatLeague)
	require.NoError(t, err)
	assert.Equal(t, "League", g.GetName())

	_, err = ForFormat("swiss")
	assert.Error(t, err)
}

func TestGenerators_RejectBadTeamLists(t *testing.T) {
	ctx := context.Background()
	for _, g := range []BracketGenerator{NewKnockoutGenerator(), NewRoundRobinGenerator(1)} {
		_, err := g.GenerateBracket(ctx, GenerateBracketParams{TournamentID: 1, TeamIDs: []int{7}})
		assert.ErrorIs(t, err, ErrNotEnoughTeams, g.GetName())

		_, err = g.GenerateBracket(ctx, GenerateBracketParams{TournamentID: 1, TeamIDs: []int{3, 3}})
		assert.Error(t, err, g.GetName())

		_, err = g.GenerateBracket(ctx, GenerateBracketParams{TournamentID: 1, TeamIDs: []int{0, 4}})
		assert.Error(t, err, g.GetName())
	}
}

func TestKnockout_PowerOfTwo(t *testing.T) {
	matches, err := NewKnockoutGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
		TournamentID: 9,
		TeamIDs:      teamIDs(4),
	})
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "T9-KO-R1M1", matches[0].UID)
	assert.Equal(t, 1, *matches[0].TeamAID)
	assert.Equal(t, 2, *matches[0].TeamBID)
	assert.Equal(t, 3, *matches[1].TeamAID)
	assert.Equal(t, 4, *matches[1].TeamBID)

	final := matches[2]
	assert.Equal(t, 2, final.Round)
	assert.True(t, final.IsPlaceholder())
	require.NotNil(t, final.SourceMatchAUID)
	require.NotNil(t, final.SourceMatchBUID)
	assert.Equal(t, matches[0].UID, *final.SourceMatchAUID)
	assert.Equal(t, matches[1].UID, *final.SourceMatchBUID)
}

func TestKnockout_Byes(t *testing.T) {
	matches, err := NewKnockoutGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
		TournamentID: 2,
		TeamIDs:      teamIDs(5),
	})
	require.NoError(t, err)
	require.Len(t, matches, 4, "a single-elimination field of n teams needs n-1 fixtures")

	opener := matches[0]
	assert.Equal(t, 1, opener.Round)
	assert.False(t, opener.IsPlaceholder())

	byRound := map[int][]*BracketMatch{}
	for _, m := range matches {
		byRound[m.Round] = append(byRound[m.Round], m)
	}
	require.Len(t, byRound[1], 1)
	require.Len(t, byRound[2], 2)
	require.Len(t, byRound[3], 1)

	// Teams 3, 4 and 5 skipped round one.
	semi := byRound[2]
	assert.Equal(t, opener.UID, *semi[0].SourceMatchAUID)
	assert.Equal(t, 3, *semi[0].TeamBID)
	assert.Equal(t, 4, *semi[1].TeamAID)
	assert.Equal(t, 5, *semi[1].TeamBID)
	assert.False(t, semi[1].IsPlaceholder())
	assert.True(t, byRound[3][0].IsPlaceholder())
}

func TestKnockout_UniqueUIDs(t *testing.T) {
	for n := 2; n <= 17; n++ {
		matches, err := NewKnockoutGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
			TournamentID: 1,
			TeamIDs:      teamIDs(n),
		})
		require.NoError(t, err)
		assert.Len(t, matches, n-1)

		seen := map[string]bool{}
		appearances := map[int]int{}
		for _, m := range matches {
			assert.False(t, seen[m.UID], "duplicate uid %s", m.UID)
			seen[m.UID] = true
			for _, id := range []*int{m.TeamAID, m.TeamBID} {
				if id != nil {
					appearances[*id]++
				}
			}
		}
		for _, id := range teamIDs(n) {
			assert.Equal(t, 1, appearances[id], "team %d of %d must enter exactly once", id, n)
		}
	}
}

func TestRoundRobin_EveryPairOnce(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 8} {
		matches, err := NewRoundRobinGenerator(1).GenerateBracket(context.Background(), GenerateBracketParams{
			TournamentID: 3,
			TeamIDs:      teamIDs(n),
		})
		require.NoError(t, err)
		require.Len(t, matches, n*(n-1)/2)

		pairs := map[string]int{}
		perRound := map[int]map[int]bool{}
		for _, m := range matches {
			require.False(t, m.IsPlaceholder())
			pairs[pairKey(*m.TeamAID, *m.TeamBID)]++

			if perRound[m.Round] == nil {
				perRound[m.Round] = map[int]bool{}
			}
			assert.False(t, perRound[m.Round][*m.TeamAID], "team plays twice in round %d", m.Round)
			assert.False(t, perRound[m.Round][*m.TeamBID], "team plays twice in round %d", m.Round)
			perRound[m.Round][*m.TeamAID] = true
			perRound[m.Round][*m.TeamBID] = true
		}
		for _, count := range pairs {
			assert.Equal(t, 1, count)
		}
	}
}

func TestRoundRobin_LeagueSwapsSides(t *testing.T) {
	matches, err := NewRoundRobinGenerator(2).GenerateBracket(context.Background(), GenerateBracketParams{
		TournamentID: 4,
		TeamIDs:      []int{10, 20, 30, 40},
	})
	require.NoError(t, err)
	require.Len(t, matches, 12)

	home := map[string]bool{}
	for _, m := range matches {
		home[fmt.Sprintf("%d>%d", *m.TeamAID, *m.TeamBID)] = true
	}
	for _, m := range matches {
		assert.True(t, home[fmt.Sprintf("%d>%d", *m.TeamBID, *m.TeamAID)], "missing return fixture for %s", m.UID)
	}
	assert.Equal(t, 6, matches[len(matches)-1].Round)
	assert.Equal(t, "T4-RR-L1-10v40", matches[0].UID)
}

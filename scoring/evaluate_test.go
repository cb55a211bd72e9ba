package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_absentScore(t *testing.T) {
	for _, sport := range Sports {
		assert.Nil(t, Evaluate(sport, nil, Settings{}), sport)
		assert.Nil(t, Evaluate(sport, &Score{Sport: sport}, Settings{}), sport)
	}
}

func TestEvaluate_freshScoreIsNotConcluded(t *testing.T) {
	for _, sport := range Sports {
		s, err := NewScore(sport)
		require.NoError(t, err)
		assert.Nil(t, Evaluate(sport, s, Settings{}), sport)
	}
}

func TestEvaluate_cricket(t *testing.T) {
	tests := []struct {
		name  string
		score CricketScore
		want  *Outcome
	}{
		{
			name:  "in progress",
			score: CricketScore{Overs: 19, Balls: 5, TeamA: CricketTally{Runs: 150}},
		},
		{
			name:  "overs completed, teamA ahead",
			score: CricketScore{Overs: 20, TeamA: CricketTally{Runs: 180}, TeamB: CricketTally{Runs: 179}},
			want:  &Outcome{Winner: TeamA, Reason: "Overs completed"},
		},
		{
			name:  "overs completed, tie goes to teamB",
			score: CricketScore{Overs: 20, TeamA: CricketTally{Runs: 160}, TeamB: CricketTally{Runs: 160}},
			want:  &Outcome{Winner: TeamB, Reason: "Overs completed"},
		},
		{
			name:  "teamA all out",
			score: CricketScore{Overs: 12, TeamA: CricketTally{Wickets: 10}},
			want:  &Outcome{Winner: TeamB, Reason: "All wickets taken"},
		},
		{
			name:  "teamB all out",
			score: CricketScore{Overs: 15, TeamB: CricketTally{Wickets: 10}},
			want:  &Outcome{Winner: TeamA, Reason: "All wickets taken"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score := tc.score
			got := Evaluate(Cricket, &Score{Sport: Cricket, Cricket: &score}, Settings{})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluate_football(t *testing.T) {
	f := &FootballScore{TeamA: FootballSide{Goals: 2}, TeamB: FootballSide{Goals: 1}, Time: 89}
	s := &Score{Sport: Football, Football: f}
	assert.Nil(t, Evaluate(Football, s, Settings{}))

	f.Time = 90
	assert.Equal(t, &Outcome{Winner: TeamA, Reason: "Full time"}, Evaluate(Football, s, Settings{}))

	f.TeamB.Goals = 2
	assert.Equal(t, &Outcome{Winner: Draw, Reason: "Full time"}, Evaluate(Football, s, Settings{}))
}

func TestEvaluate_basketballComparesRawTime(t *testing.T) {
	b := &BasketballScore{TeamA: BasketballSide{Points: 80}, TeamB: BasketballSide{Points: 91}, Quarter: 3, Time: 600}
	s := &Score{Sport: Basketball, Basketball: b}
	assert.Nil(t, Evaluate(Basketball, s, Settings{}))

	b.Quarter = 4
	b.Time = 11
	assert.Nil(t, Evaluate(Basketball, s, Settings{}))

	// A fresh fourth-quarter clock of 600 already satisfies time >= 12.
	b.Time = 600
	assert.Equal(t, &Outcome{Winner: TeamB, Reason: "Game completed"}, Evaluate(Basketball, s, Settings{}))
}

func TestEvaluate_volleyball(t *testing.T) {
	var s *Score
	for set := 0; set < 2; set++ {
		for i := 0; i < 25; i++ {
			s = mustApply(t, Volleyball, s, ActionPoint, TeamA, Details{})
		}
		if set == 0 {
			assert.Nil(t, Evaluate(Volleyball, mustApply(t, Volleyball, s, ActionSet, TeamA, Details{}), Settings{TotalSets: 5}))
		}
		s = mustApply(t, Volleyball, s, ActionSet, TeamA, Details{})
	}

	assert.Equal(t, &Outcome{Winner: TeamA, Reason: "Best of 3 sets completed"}, Evaluate(Volleyball, s, Settings{}))
	assert.Nil(t, Evaluate(Volleyball, s, Settings{TotalSets: 5}))
	assert.Len(t, s.Volleyball.SetScores, 2)
	for _, tally := range s.Volleyball.SetScores {
		assert.Equal(t, SetTally{TeamA: 25, TeamB: 0}, tally)
	}
}

func TestEvaluate_gameSports(t *testing.T) {
	tests := []struct {
		name     string
		sport    Sport
		settings Settings
		games    int
		want     *Outcome
	}{
		{"badminton default needs two", Badminton, Settings{}, 2, &Outcome{Winner: PlayerB, Reason: "Best of 3 games completed"}},
		{"badminton one game", Badminton, Settings{}, 1, nil},
		{"table tennis default needs three", TableTennis, Settings{}, 2, nil},
		{"table tennis three games", TableTennis, Settings{}, 3, &Outcome{Winner: PlayerB, Reason: "Best of 5 games completed"}},
		{"table tennis best of seven", TableTennis, Settings{TotalGames: 7}, 3, nil},
		{"badminton best of one", Badminton, Settings{TotalGames: 1}, 1, &Outcome{Winner: PlayerB, Reason: "Best of 1 games completed"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s *Score
			for i := 0; i < tc.games; i++ {
				s = mustApply(t, tc.sport, s, ActionGame, PlayerB, Details{})
			}
			assert.Equal(t, tc.want, Evaluate(tc.sport, s, tc.settings))
		})
	}
}

func TestEvaluate_chess(t *testing.T) {
	tests := []struct {
		result *string
		want   *Outcome
	}{
		{nil, nil},
		{strp("ongoing"), nil},
		{strp("*"), &Outcome{Winner: Draw, Reason: "Game concluded"}},
		{strp(""), nil},
		{strp("1-0"), &Outcome{Winner: TeamA, Reason: "Game concluded"}},
		{strp("0-1"), &Outcome{Winner: TeamB, Reason: "Game concluded"}},
		{strp("1/2-1/2"), &Outcome{Winner: Draw, Reason: "Game concluded"}},
		{strp("teamB"), &Outcome{Winner: TeamB, Reason: "Game concluded"}},
		{strp("stalemate"), &Outcome{Winner: Draw, Reason: "Game concluded"}},
	}

	for _, tc := range tests {
		s, _ := NewScore(Chess)
		s.Chess.Result = tc.result
		assert.Equal(t, tc.want, Evaluate(Chess, s, Settings{}))
	}
}

func TestEvaluate_isPure(t *testing.T) {
	s := mustApply(t, Badminton, nil, ActionGame, PlayerA, Details{})
	s = mustApply(t, Badminton, s, ActionGame, PlayerA, Details{})
	before := s.Clone()

	first := Evaluate(Badminton, s, Settings{})
	second := Evaluate(Badminton, s, Settings{})
	assert.Equal(t, first, second)
	assert.Equal(t, before, s)

	running := mustApply(t, Football, nil, ActionGoal, TeamA, Details{})
	assert.Nil(t, Evaluate(Football, running, Settings{}))
	assert.Nil(t, Evaluate(Football, running, Settings{}))
}

func TestEvaluate_wrongSport(t *testing.T) {
	s := mustApply(t, Badminton, nil, ActionGame, PlayerA, Details{})
	s = mustApply(t, Badminton, s, ActionGame, PlayerA, Details{})
	assert.Nil(t, Evaluate(TableTennis, s, Settings{}))
}

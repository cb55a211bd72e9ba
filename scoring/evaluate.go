package scoring

import "fmt"

const (
	ReasonOversCompleted = "Overs completed"
	ReasonAllWickets     = "All wickets taken"
	ReasonFullTime       = "Full time"
	ReasonGameCompleted  = "Game completed"
	ReasonGameConcluded  = "Game concluded"

	cricketMaxOvers   = 20
	cricketAllOut     = 10
	footballFullTime  = 90
	basketballFinalQ  = 4
	basketballEndTime = 12

	defaultVolleyballSets   = 3
	defaultBadmintonGames   = 3
	defaultTableTennisGames = 5
)

// Outcome is the result of a concluded match.
type Outcome struct {
	Winner Side   `json:"winner"`
	Reason string `json:"reason"`
}

// Settings is the per-match configuration read by the evaluator.
type Settings struct {
	TotalSets  int `json:"totalSets,omitempty"`
	TotalGames int `json:"totalGames,omitempty"`
}

// Evaluate decides whether the score ends the match. It returns nil while the
// match is still in play or when no score has been recorded.
func Evaluate(sport Sport, score *Score, settings Settings) *Outcome {
	if score.Current() == nil || score.Sport != sport {
		return nil
	}

	switch sport {
	case Cricket:
		return evaluateCricket(score.Cricket)
	case Football:
		return evaluateFootball(score.Football)
	case Basketball:
		return evaluateBasketball(score.Basketball)
	case Volleyball:
		return evaluateVolleyball(score.Volleyball, settings)
	case Badminton:
		return evaluateGames(score.Badminton, orDefault(settings.TotalGames, defaultBadmintonGames))
	case TableTennis:
		return evaluateGames(score.TableTennis, orDefault(settings.TotalGames, defaultTableTennisGames))
	case Chess:
		if winner, ok := chessWinner(score.Chess.Result); ok {
			return &Outcome{Winner: winner, Reason: ReasonGameConcluded}
		}
	}
	return nil
}

func evaluateCricket(c *CricketScore) *Outcome {
	if c.Overs >= cricketMaxOvers {
		// A tie goes to teamB.
		winner := TeamB
		if c.TeamA.Runs > c.TeamB.Runs {
			winner = TeamA
		}
		return &Outcome{Winner: winner, Reason: ReasonOversCompleted}
	}
	if c.TeamA.Wickets >= cricketAllOut || c.TeamB.Wickets >= cricketAllOut {
		winner := TeamB
		if c.TeamA.Wickets < cricketAllOut {
			winner = TeamA
		}
		return &Outcome{Winner: winner, Reason: ReasonAllWickets}
	}
	return nil
}

func evaluateFootball(f *FootballScore) *Outcome {
	if f.Time < footballFullTime {
		return nil
	}
	return &Outcome{Winner: higher(f.TeamA.Goals, f.TeamB.Goals), Reason: ReasonFullTime}
}

// The clock is stored in seconds but compared against minutes here. Kept as
// is so existing clients that end games by sending time=12 keep working.
func evaluateBasketball(b *BasketballScore) *Outcome {
	if b.Quarter < basketballFinalQ || b.Time < basketballEndTime {
		return nil
	}
	return &Outcome{Winner: higher(b.TeamA.Points, b.TeamB.Points), Reason: ReasonGameCompleted}
}

func evaluateVolleyball(v *VolleyballScore, settings Settings) *Outcome {
	total := orDefault(settings.TotalSets, defaultVolleyballSets)
	required := majorityOf(total)

	var winner Side
	switch {
	case v.TeamA.Sets >= required:
		winner = TeamA
	case v.TeamB.Sets >= required:
		winner = TeamB
	default:
		return nil
	}
	return &Outcome{Winner: winner, Reason: fmt.Sprintf("Best of %d sets completed", total)}
}

func evaluateGames(g *GameScore, total int) *Outcome {
	required := majorityOf(total)

	var winner Side
	switch {
	case g.PlayerA.Games >= required:
		winner = PlayerA
	case g.PlayerB.Games >= required:
		winner = PlayerB
	default:
		return nil
	}
	return &Outcome{Winner: winner, Reason: fmt.Sprintf("Best of %d games completed", total)}
}

func higher(a, b int) Side {
	switch {
	case a > b:
		return TeamA
	case b > a:
		return TeamB
	}
	return Draw
}

func majorityOf(total int) int {
	return (total + 1) / 2
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

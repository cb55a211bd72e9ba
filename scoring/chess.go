package scoring

import "github.com/corentings/chess/v2"

func (c *ChessScore) apply(action Action, d Details) {
	switch action {
	case ActionResult:
		if d.Result != nil {
			r := *d.Result
			c.Result = &r
		}
	case ActionTime:
		c.WhiteTime = intOr(d.WhiteTime, c.WhiteTime)
		c.BlackTime = intOr(d.BlackTime, c.BlackTime)
		if d.CurrentPlayer != nil {
			c.CurrentPlayer = *d.CurrentPlayer
		}
	case ActionSwitch:
		if d.CurrentPlayer != nil {
			c.CurrentPlayer = *d.CurrentPlayer
		}
	}
}

const resultOngoing = "ongoing"

// chessWinner maps a stored result onto a side. ok is false while the game is
// still running.
func chessWinner(result *string) (winner Side, ok bool) {
	if result == nil || *result == "" || *result == resultOngoing {
		return "", false
	}
	switch chess.Outcome(*result) {
	case chess.WhiteWon:
		return TeamA, true
	case chess.BlackWon:
		return TeamB, true
	}
	// Clients may also report the winning side directly.
	switch Side(*result) {
	case TeamA, TeamB:
		return Side(*result), true
	}
	return Draw, true
}

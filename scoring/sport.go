// Package scoring holds the per-sport score records, the transition engine that
// applies scoring actions to them and the evaluator that decides when a match
// is over. Everything here is pure: no I/O, no clocks, no shared state.
package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSport  = errors.New("unknown sport")
	ErrSportMismatch = errors.New("score record does not belong to sport")
)

type Sport string

const (
	Cricket     Sport = "cricket"
	Football    Sport = "football"
	Basketball  Sport = "basketball"
	Volleyball  Sport = "volleyball"
	Badminton   Sport = "badminton"
	TableTennis Sport = "table-tennis"
	Chess       Sport = "chess"
)

// Sports lists every supported sport in a stable order.
var Sports = []Sport{Cricket, Football, Basketball, Volleyball, Badminton, TableTennis, Chess}

func (s Sport) Valid() bool {
	switch s {
	case Cricket, Football, Basketball, Volleyball, Badminton, TableTennis, Chess:
		return true
	}
	return false
}

// TeamBased reports whether the sport labels its sides teamA/teamB rather
// than playerA/playerB.
func (s Sport) TeamBased() bool {
	return s != Badminton && s != TableTennis
}

// Actions lists the scoring actions the engine understands for the sport.
func (s Sport) Actions() []Action {
	switch s {
	case Cricket:
		return []Action{ActionRuns, ActionBoundary, ActionWicket, ActionWide, ActionNoBall}
	case Football:
		return []Action{ActionGoal, ActionCard, ActionTime}
	case Basketball:
		return []Action{ActionPoints, ActionFoul, ActionQuarter, ActionTime}
	case Chess:
		return []Action{ActionResult, ActionTime, ActionSwitch}
	case Volleyball:
		return []Action{ActionPoint, ActionSet, ActionServe, ActionSyncScore}
	case Badminton, TableTennis:
		return []Action{ActionPoint, ActionGame, ActionServe, ActionSyncScore}
	}
	return nil
}

func ParseSport(raw string) (Sport, error) {
	s := Sport(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSport, raw)
	}
	return s, nil
}

// Side is the logical label of a competitor, fixed for the lifetime of a match.
type Side string

const (
	TeamA   Side = "teamA"
	TeamB   Side = "teamB"
	PlayerA Side = "playerA"
	PlayerB Side = "playerB"

	// Draw is only ever used as an Outcome winner.
	Draw Side = "draw"
)

// IsA reports whether the label names the first side. Anything that is not
// explicitly side A counts as side B.
func (s Side) IsA() bool {
	return s == TeamA || s == PlayerA
}

// For resolves the label into the sport's own naming.
func (s Side) For(sport Sport) Side {
	switch {
	case sport.TeamBased() && s.IsA():
		return TeamA
	case sport.TeamBased():
		return TeamB
	case s.IsA():
		return PlayerA
	default:
		return PlayerB
	}
}

package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Action string

const (
	// cricket
	ActionRuns     Action = "runs"
	ActionBoundary Action = "boundary"
	ActionWicket   Action = "wicket"
	ActionWide     Action = "wide"
	ActionNoBall   Action = "noBall"

	// football, basketball
	ActionGoal    Action = "goal"
	ActionCard    Action = "card"
	ActionTime    Action = "time"
	ActionPoints  Action = "points"
	ActionFoul    Action = "foul"
	ActionQuarter Action = "quarter"

	// chess
	ActionResult Action = "result"
	ActionSwitch Action = "switch"

	// volleyball, badminton, table tennis
	ActionPoint     Action = "point"
	ActionSet       Action = "set"
	ActionGame      Action = "game"
	ActionServe     Action = "serve"
	ActionSyncScore Action = "syncScore"

	// ActionUndo is recorded by the match service when a cricket score is reset.
	// The engine itself treats it like any other unknown action.
	ActionUndo Action = "undo"
)

const (
	CardYellow = "yellow"
	CardRed    = "red"
)

// SideSnapshot is one side of an authoritative score sync. On the wire it is
// either a bare number (the side's points) or an object.
type SideSnapshot struct {
	Points *int `json:"points,omitempty"`
	Sets   *int `json:"sets,omitempty"`
	Games  *int `json:"games,omitempty"`
}

func (s *SideSnapshot) UnmarshalJSON(data []byte) error {
	var points int
	if err := json.Unmarshal(data, &points); err == nil {
		s.Points = &points
		return nil
	}

	type plain SideSnapshot
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("side snapshot must be a number or an object: %w", err)
	}
	*s = SideSnapshot(p)
	return nil
}

// Details is the typed form of the free-form detail payload that comes with an
// action. A nil field means the key was absent.
type Details struct {
	Runs     *int    `json:"runs,omitempty"`
	CardType string  `json:"cardType,omitempty"`
	Time     *int    `json:"time,omitempty"`
	Period   *string `json:"period,omitempty"`
	Points   *int    `json:"points,omitempty"`
	Quarter  *int    `json:"quarter,omitempty"`

	Result        *string `json:"result,omitempty"`
	WhiteTime     *int    `json:"whiteTime,omitempty"`
	BlackTime     *int    `json:"blackTime,omitempty"`
	CurrentPlayer *string `json:"currentPlayer,omitempty"`

	Serving     *string       `json:"serving,omitempty"`
	TeamA       *SideSnapshot `json:"teamA,omitempty"`
	TeamB       *SideSnapshot `json:"teamB,omitempty"`
	PlayerA     *SideSnapshot `json:"playerA,omitempty"`
	PlayerB     *SideSnapshot `json:"playerB,omitempty"`
	CurrentSet  *int          `json:"currentSet,omitempty"`
	CurrentGame *int          `json:"currentGame,omitempty"`
	SetScores   []SetTally    `json:"setScores,omitempty"`
	GameScores  []GameTally   `json:"gameScores,omitempty"`
}

// ParseDetails decodes a raw detail payload. An empty body or JSON null yields
// zero Details.
func ParseDetails(raw json.RawMessage) (Details, error) {
	var d Details
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return d, nil
	}
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return Details{}, fmt.Errorf("invalid action details: %w", err)
	}
	return d, nil
}

// IsSnapshot reports whether the details carry a full score for the sport
// rather than a single increment.
func (d Details) IsSnapshot(sport Sport) bool {
	switch sport {
	case Volleyball:
		return d.TeamA != nil && d.TeamB != nil
	case Badminton, TableTennis:
		return d.PlayerA != nil || d.TeamA != nil
	}
	return false
}

// NormalizeAction maps the legacy "point with a full snapshot" request shape
// onto the explicit syncScore action.
func NormalizeAction(sport Sport, action Action, d Details) Action {
	if action == ActionPoint && d.IsSnapshot(sport) {
		return ActionSyncScore
	}
	return action
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	defaultFootballPeriod = "1st Half"
	defaultQuarterSeconds = 600
	defaultChessClock     = 1800
	defaultChessPlayer    = "white"
	ballsPerOver          = 6
)

type CricketExtras struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"noBalls"`
	Byes    int `json:"byes"`
	LegByes int `json:"legByes"`
}

// CricketTally is the share of runs and wickets credited to one side.
type CricketTally struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
}

type CricketScore struct {
	Runs    int           `json:"runs"`
	Wickets int           `json:"wickets"`
	Overs   int           `json:"overs"`
	Balls   int           `json:"balls"`
	Extras  CricketExtras `json:"extras"`
	TeamA   CricketTally  `json:"teamA"`
	TeamB   CricketTally  `json:"teamB"`
}

// RunRate is runs per over, rounded to two places.
func (c CricketScore) RunRate() decimal.Decimal {
	legal := c.Overs*ballsPerOver + c.Balls
	if legal == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(c.Runs)).
		Mul(decimal.NewFromInt(ballsPerOver)).
		Div(decimal.NewFromInt(int64(legal))).
		Round(2)
}

func (c CricketScore) MarshalJSON() ([]byte, error) {
	type plain CricketScore
	return json.Marshal(struct {
		plain
		RunRate decimal.Decimal `json:"runRate"`
	}{plain: plain(c), RunRate: c.RunRate()})
}

func (c *CricketScore) tally(side Side) *CricketTally {
	if side.IsA() {
		return &c.TeamA
	}
	return &c.TeamB
}

type Cards struct {
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
}

type FootballSide struct {
	Goals int   `json:"goals"`
	Cards Cards `json:"cards"`
}

type FootballScore struct {
	TeamA  FootballSide `json:"teamA"`
	TeamB  FootballSide `json:"teamB"`
	Time   int          `json:"time"`
	Period string       `json:"period"`
}

type BasketballSide struct {
	Points int `json:"points"`
	Fouls  int `json:"fouls"`
}

type BasketballScore struct {
	TeamA   BasketballSide `json:"teamA"`
	TeamB   BasketballSide `json:"teamB"`
	Quarter int            `json:"quarter"`
	Time    int            `json:"time"`
}

type ChessScore struct {
	Result        *string `json:"result"`
	WhiteTime     int     `json:"whiteTime"`
	BlackTime     int     `json:"blackTime"`
	CurrentPlayer string  `json:"currentPlayer"`
}

type VolleyballSide struct {
	Points int `json:"points"`
	Sets   int `json:"sets"`
}

// SetTally is the point count of both teams when a set closed.
type SetTally struct {
	TeamA int `json:"teamA"`
	TeamB int `json:"teamB"`
}

type VolleyballScore struct {
	TeamA      VolleyballSide `json:"teamA"`
	TeamB      VolleyballSide `json:"teamB"`
	CurrentSet int            `json:"currentSet"`
	Serving    string         `json:"serving"`
	SetScores  []SetTally     `json:"setScores"`
}

type GameSide struct {
	Points int `json:"points"`
	Games  int `json:"games"`
}

// GameTally is the point count of both players when a game closed.
type GameTally struct {
	PlayerA int `json:"playerA"`
	PlayerB int `json:"playerB"`
}

// GameScore is shared by badminton and table tennis.
type GameScore struct {
	PlayerA     GameSide    `json:"playerA"`
	PlayerB     GameSide    `json:"playerB"`
	CurrentGame int         `json:"currentGame"`
	Serving     string      `json:"serving"`
	GameScores  []GameTally `json:"gameScores"`
}

// Score is a tagged union: Sport selects which one of the payload pointers is
// populated. The rest stay nil.
type Score struct {
	Sport       Sport
	Cricket     *CricketScore
	Football    *FootballScore
	Basketball  *BasketballScore
	Chess       *ChessScore
	Volleyball  *VolleyballScore
	Badminton   *GameScore
	TableTennis *GameScore
}

// NewScore returns the zero-state score record for the sport.
func NewScore(sport Sport) (*Score, error) {
	if !sport.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, sport)
	}
	return materialize(sport), nil
}

func materialize(sport Sport) *Score {
	s := &Score{Sport: sport}
	switch sport {
	case Cricket:
		s.Cricket = &CricketScore{}
	case Football:
		s.Football = &FootballScore{Period: defaultFootballPeriod}
	case Basketball:
		s.Basketball = &BasketballScore{Quarter: 1, Time: defaultQuarterSeconds}
	case Chess:
		s.Chess = &ChessScore{
			WhiteTime:     defaultChessClock,
			BlackTime:     defaultChessClock,
			CurrentPlayer: defaultChessPlayer,
		}
	case Volleyball:
		s.Volleyball = &VolleyballScore{CurrentSet: 1, Serving: string(TeamA), SetScores: []SetTally{}}
	case Badminton:
		s.Badminton = newGameScore()
	case TableTennis:
		s.TableTennis = newGameScore()
	}
	return s
}

func newGameScore() *GameScore {
	return &GameScore{CurrentGame: 1, Serving: string(PlayerA), GameScores: []GameTally{}}
}

// Current returns the active payload, or nil when the record has not been
// materialized yet.
func (s *Score) Current() any {
	if s == nil {
		return nil
	}
	switch s.Sport {
	case Cricket:
		if s.Cricket != nil {
			return s.Cricket
		}
	case Football:
		if s.Football != nil {
			return s.Football
		}
	case Basketball:
		if s.Basketball != nil {
			return s.Basketball
		}
	case Chess:
		if s.Chess != nil {
			return s.Chess
		}
	case Volleyball:
		if s.Volleyball != nil {
			return s.Volleyball
		}
	case Badminton:
		if s.Badminton != nil {
			return s.Badminton
		}
	case TableTennis:
		if s.TableTennis != nil {
			return s.TableTennis
		}
	}
	return nil
}

// Games returns the active badminton or table tennis payload.
func (s *Score) Games() *GameScore {
	if s == nil {
		return nil
	}
	switch s.Sport {
	case Badminton:
		return s.Badminton
	case TableTennis:
		return s.TableTennis
	}
	return nil
}

// Headline returns the figure each side is ranked on: runs, goals, points,
// sets or games. Chess has none.
func (s *Score) Headline() (a, b int, ok bool) {
	if s.Current() == nil {
		return 0, 0, false
	}
	switch s.Sport {
	case Cricket:
		return s.Cricket.TeamA.Runs, s.Cricket.TeamB.Runs, true
	case Football:
		return s.Football.TeamA.Goals, s.Football.TeamB.Goals, true
	case Basketball:
		return s.Basketball.TeamA.Points, s.Basketball.TeamB.Points, true
	case Volleyball:
		return s.Volleyball.TeamA.Sets, s.Volleyball.TeamB.Sets, true
	case Badminton, TableTennis:
		g := s.Games()
		return g.PlayerA.Games, g.PlayerB.Games, true
	}
	return 0, 0, false
}

// Clone returns a deep copy so the engine never mutates its input.
func (s *Score) Clone() *Score {
	if s == nil {
		return nil
	}
	out := &Score{Sport: s.Sport}
	if s.Cricket != nil {
		c := *s.Cricket
		out.Cricket = &c
	}
	if s.Football != nil {
		f := *s.Football
		out.Football = &f
	}
	if s.Basketball != nil {
		b := *s.Basketball
		out.Basketball = &b
	}
	if s.Chess != nil {
		c := *s.Chess
		if c.Result != nil {
			r := *c.Result
			c.Result = &r
		}
		out.Chess = &c
	}
	if s.Volleyball != nil {
		v := *s.Volleyball
		v.SetScores = append([]SetTally{}, v.SetScores...)
		out.Volleyball = &v
	}
	if s.Badminton != nil {
		out.Badminton = s.Badminton.clone()
	}
	if s.TableTennis != nil {
		out.TableTennis = s.TableTennis.clone()
	}
	return out
}

func (g *GameScore) clone() *GameScore {
	c := *g
	c.GameScores = append([]GameTally{}, g.GameScores...)
	return &c
}

// MarshalJSON encodes only the active payload.
func (s *Score) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Current())
}

// DecodeScore restores a stored score document. An empty document means the
// record was never materialized and yields nil.
func DecodeScore(sport Sport, raw []byte) (*Score, error) {
	if !sport.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSport, sport)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	s := &Score{Sport: sport}
	var target any
	switch sport {
	case Cricket:
		s.Cricket = &CricketScore{}
		target = s.Cricket
	case Football:
		s.Football = &FootballScore{}
		target = s.Football
	case Basketball:
		s.Basketball = &BasketballScore{}
		target = s.Basketball
	case Chess:
		s.Chess = &ChessScore{}
		target = s.Chess
	case Volleyball:
		s.Volleyball = &VolleyballScore{}
		target = s.Volleyball
	case Badminton:
		s.Badminton = &GameScore{}
		target = s.Badminton
	case TableTennis:
		s.TableTennis = &GameScore{}
		target = s.TableTennis
	}
	if err := json.Unmarshal(trimmed, target); err != nil {
		return nil, fmt.Errorf("decode %s score: %w", sport, err)
	}

	if s.Volleyball != nil && s.Volleyball.SetScores == nil {
		s.Volleyball.SetScores = []SetTally{}
	}
	if g := s.Games(); g != nil && g.GameScores == nil {
		g.GameScores = []GameTally{}
	}
	return s, nil
}

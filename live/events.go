// Package live fans match events out to connected WebSocket viewers, either
// straight from the local hub or through Redis when several API instances run.
package live

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/scoring"
)

type EventType string

const (
	EventScoreUpdate     EventType = "score-update"
	EventLiveScoreUpdate EventType = "live-score-update"
	EventMatchStarted    EventType = "match-started"
	EventMatchEnded      EventType = "match-ended"
)

// LiveScoreboardTopic receives a summary of every match update.
const LiveScoreboardTopic = "live-scoreboard"

const matchTopicPrefix = "match-"

func MatchTopic(matchID int) string {
	return matchTopicPrefix + strconv.Itoa(matchID)
}

// MatchTopicFromRaw builds a match topic from a client supplied id.
func MatchTopicFromRaw(raw string) (string, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return "", fmt.Errorf("invalid match id %q", raw)
	}
	return MatchTopic(id), nil
}

// Payload carries the fields of every event kind. Each kind fills only the
// fields it needs.
type Payload struct {
	MatchID int           `json:"matchId"`
	Sport   scoring.Sport `json:"sport,omitempty"`

	Action  scoring.Action  `json:"action,omitempty"`
	Team    scoring.Side    `json:"team,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`

	TeamA   *models.MatchSide `json:"teamA,omitempty"`
	TeamB   *models.MatchSide `json:"teamB,omitempty"`
	PlayerA *models.MatchSide `json:"playerA,omitempty"`
	PlayerB *models.MatchSide `json:"playerB,omitempty"`

	Score      *scoring.Score     `json:"score,omitempty"`
	FinalScore *scoring.Score     `json:"finalScore,omitempty"`
	Status     models.MatchStatus `json:"status,omitempty"`

	Winner        *scoring.Side `json:"winner,omitempty"`
	WinningReason *string       `json:"winningReason,omitempty"`
	Reason        *string       `json:"reason,omitempty"`

	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Event is the envelope written to viewers.
type Event struct {
	Type    EventType `json:"type"`
	Topic   string    `json:"topic"`
	Payload Payload   `json:"payload"`
}

// wireEvent mirrors Event with a raw payload so a relayed event can be
// forwarded without knowing the sport of its score.
type wireEvent struct {
	Type    EventType       `json:"type"`
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

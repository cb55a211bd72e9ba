package live

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/Ishan007-bot/Sports-Arena-Backend/scoring"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub
}

// dial serves a single endpoint that attaches every connection to topics.
func dial(t *testing.T, hub *Hub, topics ...string) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Attach(conn, topics...)
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var out map[string]any
	require.NoError(t, conn.ReadJSON(&out))
	return out
}

func waitViewers(t *testing.T, hub *Hub, topic string, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.Viewers(topic) == n }, 2*time.Second, 10*time.Millisecond)
}

func TestMatchTopic(t *testing.T) {
	assert.Equal(t, "match-42", MatchTopic(42))

	topic, err := MatchTopicFromRaw("7")
	require.NoError(t, err)
	assert.Equal(t, "match-7", topic)

	_, err = MatchTopicFromRaw("abc")
	assert.Error(t, err)
	_, err = MatchTopicFromRaw("0")
	assert.Error(t, err)
}

func TestHub_JoinMatchAndReceive(t *testing.T) {
	hub := startHub(t)
	pub := NewHubPublisher(hub)
	conn := dial(t, hub)

	require.NoError(t, conn.WriteJSON(map[string]any{"event": "join-match", "matchId": "42"}))
	waitViewers(t, hub, "match-42", 1)

	score, err := scoring.NewScore(scoring.Cricket)
	require.NoError(t, err)
	err = pub.Publish(context.Background(), MatchTopic(42), Event{
		Type:    EventScoreUpdate,
		Payload: Payload{MatchID: 42, Sport: scoring.Cricket, Action: scoring.ActionRuns, Score: score, Status: models.MatchStatusLive},
	})
	require.NoError(t, err)

	got := readEvent(t, conn)
	assert.Equal(t, "score-update", got["type"])
	assert.Equal(t, "match-42", got["topic"])
	payload := got["payload"].(map[string]any)
	assert.Equal(t, float64(42), payload["matchId"])
	assert.Equal(t, "runs", payload["action"])
	assert.Equal(t, "live", payload["status"])
	assert.Contains(t, payload["score"], "runRate")
}

func TestHub_NumericMatchIDAndLeave(t *testing.T) {
	hub := startHub(t)
	conn := dial(t, hub)

	require.NoError(t, conn.WriteJSON(map[string]any{"event": "join-match", "matchId": 9}))
	waitViewers(t, hub, "match-9", 1)

	require.NoError(t, conn.WriteJSON(map[string]any{"event": "leave-match", "matchId": "9"}))
	waitViewers(t, hub, "match-9", 0)

	assert.Zero(t, hub.Broadcast("match-9", []byte(`{}`)))
}

func TestHub_LiveScoreboardAndMultipleTopics(t *testing.T) {
	hub := startHub(t)
	conn := dial(t, hub, MatchTopic(1))

	require.NoError(t, conn.WriteJSON(map[string]any{"event": "join-live-scoreboard"}))
	waitViewers(t, hub, LiveScoreboardTopic, 1)
	waitViewers(t, hub, "match-1", 1)

	pub := NewHubPublisher(hub)
	ctx := context.Background()
	require.NoError(t, pub.Publish(ctx, LiveScoreboardTopic, Event{Type: EventLiveScoreUpdate, Payload: Payload{MatchID: 1}}))
	assert.Equal(t, "live-score-update", readEvent(t, conn)["type"])

	require.NoError(t, pub.Publish(ctx, MatchTopic(1), Event{Type: EventMatchEnded, Payload: Payload{MatchID: 1}}))
	assert.Equal(t, "match-ended", readEvent(t, conn)["type"])

	require.NoError(t, conn.WriteJSON(map[string]any{"event": "leave-live-scoreboard"}))
	waitViewers(t, hub, LiveScoreboardTopic, 0)
	assert.Equal(t, 1, hub.Viewers("match-1"))
}

func TestHub_UnknownEventAndBadMatchID(t *testing.T) {
	hub := startHub(t)
	conn := dial(t, hub)

	require.NoError(t, conn.WriteJSON(map[string]any{"event": "dance"}))
	got := readEvent(t, conn)
	assert.Equal(t, "error", got["type"])
	assert.Contains(t, got["message"], "dance")

	require.NoError(t, conn.WriteJSON(map[string]any{"event": "join-match", "matchId": "nope"}))
	got = readEvent(t, conn)
	assert.Equal(t, "error", got["type"])
}

func TestHub_DisconnectRemovesClient(t *testing.T) {
	hub := startHub(t)
	conn := dial(t, hub, LiveScoreboardTopic)
	waitViewers(t, hub, LiveScoreboardTopic, 1)

	require.NoError(t, conn.Close())
	waitViewers(t, hub, LiveScoreboardTopic, 0)
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub := NewHub(discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	conn := dial(t, hub, LiveScoreboardTopic)
	waitViewers(t, hub, LiveScoreboardTopic, 1)

	cancel()
	<-stopped
	assert.Zero(t, hub.Viewers(LiveScoreboardTopic))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, event Event) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func TestMultiPublisher_JoinsErrors(t *testing.T) {
	ctx := context.Background()
	event := Event{Type: EventMatchStarted, Payload: Payload{MatchID: 3}}
	boom := errors.New("boom")

	ok := new(mockPublisher)
	ok.On("Publish", ctx, "match-3", event).Return(nil)
	failing := new(mockPublisher)
	failing.On("Publish", ctx, "match-3", event).Return(boom)

	err := NewMultiPublisher(failing, ok).Publish(ctx, "match-3", event)
	assert.ErrorIs(t, err, boom)
	ok.AssertExpectations(t)
	failing.AssertExpectations(t)

	assert.NoError(t, NewMultiPublisher(ok).Publish(ctx, "match-3", event))
}

func TestRedisRelay_Dispatch(t *testing.T) {
	hub := startHub(t)
	conn := dial(t, hub, MatchTopic(5))
	waitViewers(t, hub, "match-5", 1)

	relay := NewRedisRelay(nil, hub, "instance-a", discardLogger())

	encoded, err := encodeEvent(MatchTopic(5), Event{Type: EventScoreUpdate, Payload: Payload{MatchID: 5}})
	require.NoError(t, err)
	fromOther, err := json.Marshal(relayMessage{Origin: "instance-b", Event: encoded})
	require.NoError(t, err)
	fromSelf, err := json.Marshal(relayMessage{Origin: "instance-a", Event: encoded})
	require.NoError(t, err)

	assert.Zero(t, relay.dispatch(&redis.Message{Channel: "sports-arena:match-5", Payload: string(fromSelf)}))
	assert.Zero(t, relay.dispatch(&redis.Message{Channel: "sports-arena:match-5", Payload: "not json"}))
	assert.Zero(t, relay.dispatch(&redis.Message{Channel: "other:match-5", Payload: string(fromOther)}))
	assert.Equal(t, 1, relay.dispatch(&redis.Message{Channel: "sports-arena:match-5", Payload: string(fromOther)}))

	got := readEvent(t, conn)
	assert.Equal(t, "score-update", got["type"])
	assert.Equal(t, "match-5", got["topic"])
}

package live

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix namespaces the Redis pub/sub channels, one per topic.
const ChannelPrefix = "sports-arena:"

func channelFor(topic string) string {
	return ChannelPrefix + topic
}

// relayMessage is what travels through Redis. Origin lets an instance skip
// events it already delivered to its own viewers.
type relayMessage struct {
	Origin string          `json:"origin"`
	Event  json.RawMessage `json:"event"`
}

// RedisPublisher forwards events to the other API instances.
type RedisPublisher struct {
	client *redis.Client
	origin string
}

func NewRedisPublisher(client *redis.Client, origin string) *RedisPublisher {
	return &RedisPublisher{client: client, origin: origin}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, event Event) error {
	data, err := encodeEvent(topic, event)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(relayMessage{Origin: p.origin, Event: data})
	if err != nil {
		return fmt.Errorf("encode relay message for %s: %w", topic, err)
	}
	if err := p.client.Publish(ctx, channelFor(topic), msg).Err(); err != nil {
		return fmt.Errorf("error publishing to channel %s: %w", channelFor(topic), err)
	}
	return nil
}

// RedisRelay subscribes to every topic channel and replays events published by
// other instances into the local hub.
type RedisRelay struct {
	client *redis.Client
	hub    *Hub
	origin string
	logger *slog.Logger
}

func NewRedisRelay(client *redis.Client, hub *Hub, origin string, logger *slog.Logger) *RedisRelay {
	return &RedisRelay{client: client, hub: hub, origin: origin, logger: logger}
}

// Run blocks until ctx is cancelled or the subscription fails.
func (r *RedisRelay) Run(ctx context.Context) error {
	pubsub := r.client.PSubscribe(ctx, ChannelPrefix+"*")
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s*: %w", ChannelPrefix, err)
	}
	r.logger.Info("redis relay subscribed", "pattern", ChannelPrefix+"*")

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			r.dispatch(msg)
		}
	}
}

// dispatch returns the number of local viewers that received the event.
func (r *RedisRelay) dispatch(msg *redis.Message) int {
	topic := strings.TrimPrefix(msg.Channel, ChannelPrefix)
	if topic == msg.Channel || topic == "" {
		return 0
	}

	var relayed relayMessage
	if err := json.Unmarshal([]byte(msg.Payload), &relayed); err != nil {
		r.logger.Warn("dropping malformed relay message", "channel", msg.Channel, "error", err)
		return 0
	}
	if relayed.Origin == r.origin {
		return 0
	}

	var event wireEvent
	if err := json.Unmarshal(relayed.Event, &event); err != nil || event.Type == "" {
		r.logger.Warn("dropping relay message without a valid event", "channel", msg.Channel)
		return 0
	}
	return r.hub.Broadcast(topic, relayed.Event)
}

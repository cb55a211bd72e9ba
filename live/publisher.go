package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Publisher delivers an event to every viewer of a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event Event) error
}

func encodeEvent(topic string, event Event) ([]byte, error) {
	event.Topic = topic
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encode %s event for %s: %w", event.Type, topic, err)
	}
	return data, nil
}

// HubPublisher writes events to viewers connected to this process.
type HubPublisher struct {
	hub *Hub
}

func NewHubPublisher(hub *Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) Publish(_ context.Context, topic string, event Event) error {
	data, err := encodeEvent(topic, event)
	if err != nil {
		return err
	}
	p.hub.Broadcast(topic, data)
	return nil
}

// MultiPublisher publishes to every wrapped publisher and joins their errors.
type MultiPublisher struct {
	publishers []Publisher
}

func NewMultiPublisher(publishers ...Publisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

func (m *MultiPublisher) Publish(ctx context.Context, topic string, event Event) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(ctx, topic, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

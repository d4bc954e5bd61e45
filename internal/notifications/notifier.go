// Package notifications publishes entity-change events to Redis channels.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/redis/go-redis/v9"
)

// Event names published by the services.
const (
	EventUserCreated     = "user.created"
	EventUserUpdated     = "user.updated"
	EventUserDeleted     = "user.deleted"
	EventFriendAdded     = "friend.added"
	EventFriendRemoved   = "friend.removed"
	EventThoughtCreated  = "thought.created"
	EventThoughtUpdated  = "thought.updated"
	EventThoughtDeleted  = "thought.deleted"
	EventReactionAdded   = "reaction.added"
	EventReactionRemoved = "reaction.removed"
)

// ChannelEvents is the Redis channel entity-change events are published to.
const ChannelEvents = "ripple:events"

// Event is the payload published for every entity change.
type Event struct {
	Name     string `json:"name"`
	Entity   string `json:"entity"`
	EntityID uint   `json:"entityId"`
	Username string `json:"username,omitempty"`
}

// Notifier publishes entity-change events into Redis channels. A nil Redis
// client turns every publish into a no-op.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends an entity-change event to the events channel. Failures are
// swallowed after logging; event delivery is fire-and-forget.
func (n *Notifier) Publish(ctx context.Context, event Event) {
	if n == nil || n.rdb == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("notifier: marshal event %q: %v", event.Name, err)
		return
	}
	if err := n.rdb.Publish(ctx, ChannelEvents, string(payload)).Err(); err != nil {
		log.Printf("notifier: publish event %q: %v", event.Name, err)
	}
}

// PublishUserEvent publishes an event about a user entity.
func (n *Notifier) PublishUserEvent(ctx context.Context, name string, userID uint, username string) {
	n.Publish(ctx, Event{Name: name, Entity: "user", EntityID: userID, Username: username})
}

// PublishThoughtEvent publishes an event about a thought entity.
func (n *Notifier) PublishThoughtEvent(ctx context.Context, name string, thoughtID uint, username string) {
	n.Publish(ctx, Event{Name: name, Entity: "thought", EntityID: thoughtID, Username: username})
}

// StartSubscriber subscribes to the events channel and calls onMessage for
// each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, ChannelEvents)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in event subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// DecodeEvent parses a published payload back into an Event.
func DecodeEvent(payload string) (Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}

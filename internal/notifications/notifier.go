// Package notifications publishes application lifecycle events over Redis
// pub/sub and consumes them in-process.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/cache"
	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Event types.
const (
	EventPageSaved = "page_saved"
	EventSubmitted = "submitted"
)

// ApplicationPattern matches every per-applicant channel.
const ApplicationPattern = "applications:*"

// Event is one step of an applicant's progress through the form.
type Event struct {
	Type   string    `json:"type"`
	UserID uint      `json:"user_id"`
	Page   int       `json:"page,omitempty"`
	At     time.Time `json:"at"`
}

// Publisher is what the services depend on.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Notifier provides helpers to publish events into Redis channels
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
// A nil client turns every call into a no-op.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Publish sends ev to the applicant's channel.
func (n *Notifier) Publish(ctx context.Context, ev Event) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return n.rdb.Publish(ctx, cache.ApplicationChannel(ev.UserID), payload).Err()
}

// StartSubscriber subscribes to every applicant channel and calls onEvent for
// each decodable message until ctx is cancelled. The returned channel is
// closed once the subscription has shut down.
func (n *Notifier) StartSubscriber(ctx context.Context, onEvent func(channel string, ev Event)) (<-chan struct{}, error) {
	done := make(chan struct{})
	if n == nil || n.rdb == nil {
		close(done)
		return done, nil
	}
	sub := n.rdb.PSubscribe(ctx, ApplicationPattern)
	// Receive blocks until the subscription is confirmed.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		close(done)
		return done, fmt.Errorf("subscribe %s: %w", ApplicationPattern, err)
	}
	ch := sub.Channel()

	go func() {
		defer close(done)
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					log.Printf("dropping malformed event on %s: %v", msg.Channel, err)
					continue
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in application subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onEvent(msg.Channel, ev)
				}()
			}
		}
	}()

	return done, nil
}

// LogEvents is the default subscriber callback: it writes every event to the
// structured log.
func LogEvents(ctx context.Context) func(channel string, ev Event) {
	return func(channel string, ev Event) {
		observability.LogEvent(ctx, channel, ev.Type,
			slog.Uint64("user_id", uint64(ev.UserID)),
			slog.Int("page", ev.Page),
			slog.Time("at", ev.At),
		)
	}
}

package bus

import (
	"log/slog"
	"sync"

	"github.com/dmarkin/scorestream/internal/pkg/models"
)

// TopicScores is the fixed topic every score/status change is published to.
const TopicScores = "scores"

// MatchTopic names the room for one match, so detail-view consumers only
// receive updates for the match they are watching.
func MatchTopic(source models.Source, id string) string {
	return "match:" + string(source) + ":" + id
}

// Bus is an in-process publish/subscribe channel. Delivery is at-least-once
// and best-effort: events published to a topic with no subscribers are
// dropped, and a subscriber whose buffer is full misses the event. Consumers
// reconcile via a full snapshot read.
type Bus struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]bool
}

// Subscription is one consumer's membership in a set of topics. Events from
// all joined topics arrive on C.
type Subscription struct {
	C  <-chan models.ChangeEvent
	ch chan models.ChangeEvent
}

func New() *Bus {
	return &Bus{
		topics: make(map[string]map[*Subscription]bool),
	}
}

// Subscribe creates a subscription joined to the given topics.
func (b *Bus) Subscribe(topics ...string) *Subscription {
	ch := make(chan models.ChangeEvent, 64)
	sub := &Subscription{C: ch, ch: ch}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, topic := range topics {
		b.joinLocked(sub, topic)
	}
	return sub
}

// Join adds the subscription to a topic. Joining twice is a no-op.
func (b *Bus) Join(sub *Subscription, topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.joinLocked(sub, topic)
}

// Leave removes the subscription from a topic. Leaving is idempotent and safe
// even if the subscription never joined.
func (b *Bus) Leave(sub *Subscription, topic string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[topic]
	if !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.topics, topic)
	}
}

// Unsubscribe removes the subscription from every topic and closes its
// channel. Calling it on an already-removed subscription is safe.
func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	found := false
	for topic, subs := range b.topics {
		if subs[sub] {
			found = true
			delete(subs, sub)
			if len(subs) == 0 {
				delete(b.topics, topic)
			}
		}
	}
	if found {
		close(sub.ch)
	}
}

// Publish delivers the event to every subscriber of the topic without
// blocking. A full subscriber buffer drops the event for that subscriber.
func (b *Bus) Publish(topic string, ev models.ChangeEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	subs, ok := b.topics[topic]
	if !ok || len(subs) == 0 {
		return
	}

	for sub := range subs {
		select {
		case sub.ch <- ev:
		default:
			slog.Debug("Subscriber buffer full, event dropped", "topic", topic, "match_id", ev.ID)
		}
	}
}

// SubscriberCount reports how many subscriptions a topic currently has.
func (b *Bus) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}

func (b *Bus) joinLocked(sub *Subscription, topic string) {
	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[*Subscription]bool)
		b.topics[topic] = subs
	}
	subs[sub] = true
}

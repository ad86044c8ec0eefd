package bus

import (
	"testing"

	"github.com/dmarkin/scorestream/internal/pkg/models"
)

func event(id string) models.ChangeEvent {
	return models.ChangeEvent{
		Source: models.SourceSportsDB,
		ID:     id,
		Match:  models.Match{ID: id, Source: models.SourceSportsDB, Status: models.StatusLive},
	}
}

func TestBus_PublishReachesSubscriber(t *testing.T) {
	b := New()
	sub := b.Subscribe(TopicScores)

	b.Publish(TopicScores, event("m1"))

	select {
	case ev := <-sub.C:
		if ev.ID != "m1" {
			t.Errorf("got event for %q, want m1", ev.ID)
		}
	default:
		t.Fatal("subscriber did not receive the event")
	}
}

func TestBus_NoSubscriberDropsEvent(t *testing.T) {
	b := New()
	// Must not block or panic with nobody listening.
	b.Publish(TopicScores, event("m1"))
}

func TestBus_MatchRoomIsolation(t *testing.T) {
	b := New()
	room := MatchTopic(models.SourceSportsDB, "m1")
	watcher := b.Subscribe(room)
	other := b.Subscribe(MatchTopic(models.SourceSportsDB, "m2"))

	b.Publish(room, event("m1"))

	select {
	case <-watcher.C:
	default:
		t.Fatal("room member did not receive the event")
	}
	select {
	case <-other.C:
		t.Fatal("other room received an event it did not join")
	default:
	}
}

func TestBus_LeaveIdempotent(t *testing.T) {
	b := New()
	sub := b.Subscribe(TopicScores)
	room := MatchTopic(models.SourceSportsDB, "m1")

	// Never joined this room; leaving must be safe, twice.
	b.Leave(sub, room)
	b.Leave(sub, room)

	b.Join(sub, room)
	b.Leave(sub, room)
	b.Leave(sub, room)

	if n := b.SubscriberCount(room); n != 0 {
		t.Errorf("room should be empty, has %d", n)
	}
	// Still subscribed to the main topic.
	b.Publish(TopicScores, event("m1"))
	select {
	case <-sub.C:
	default:
		t.Fatal("leaving a room must not affect other topics")
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe(TopicScores)

	b.Unsubscribe(sub)
	b.Unsubscribe(sub) // safe twice

	if n := b.SubscriberCount(TopicScores); n != 0 {
		t.Errorf("topic should be empty, has %d", n)
	}
	if _, ok := <-sub.C; ok {
		t.Error("channel should be closed after unsubscribe")
	}
}

func TestBus_FullBufferDoesNotBlock(t *testing.T) {
	b := New()
	sub := b.Subscribe(TopicScores)

	// Overflow the subscriber buffer; Publish must never block.
	for i := 0; i < 200; i++ {
		b.Publish(TopicScores, event("m1"))
	}
	_ = sub
}

package service

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dark0-7s/scams-20b.io/internal/model"
)

func record(sessionID, userID string) model.AttendanceRecord {
	return model.AttendanceRecord{
		ID:        "att_" + userID,
		SessionID: sessionID,
		UserID:    userID,
		Method:    model.MethodOnline,
		Timestamp: time.Now().UnixMilli(),
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewLiveHub(4, zap.NewNop())
	a := hub.Subscribe("s1")
	b := hub.Subscribe("s1")

	hub.Publish("s1", record("s1", "u1"))

	for _, sub := range []*Subscriber{a, b} {
		select {
		case update := <-sub.Ch:
			if update.Data.UserID != "u1" {
				t.Errorf("wrong update: %+v", update)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber missed the update")
		}
	}
}

func TestPublishScopedToSession(t *testing.T) {
	hub := NewLiveHub(4, zap.NewNop())
	a := hub.Subscribe("session-a")
	b := hub.Subscribe("session-b")

	hub.Publish("session-b", record("session-b", "u9"))

	select {
	case update := <-b.Ch:
		if update.Data.SessionID != "session-b" {
			t.Errorf("wrong session on update: %+v", update)
		}
	case <-time.After(time.Second):
		t.Fatal("session-b subscriber missed the update")
	}

	select {
	case update := <-a.Ch:
		t.Fatalf("session-a subscriber received foreign update: %+v", update)
	default:
	}
}

func TestPublishToSessionWithoutSubscribers(t *testing.T) {
	hub := NewLiveHub(4, zap.NewNop())
	hub.Publish("nobody-home", record("nobody-home", "u1")) // must not panic
}

func TestUnsubscribeIdempotent(t *testing.T) {
	hub := NewLiveHub(4, zap.NewNop())
	sub := hub.Subscribe("s1")

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub) // second call is a no-op, must not close twice

	if n := hub.SubscriberCount("s1"); n != 0 {
		t.Errorf("subscriber count = %d, want 0", n)
	}
	if _, open := <-sub.Ch; open {
		t.Error("channel should be closed")
	}

	// Publishing after removal must not panic or deliver.
	hub.Publish("s1", record("s1", "u1"))
}

func TestCloseSessionClosesEverySubscriber(t *testing.T) {
	hub := NewLiveHub(4, zap.NewNop())
	a := hub.Subscribe("s1")
	b := hub.Subscribe("s1")
	other := hub.Subscribe("s2")

	hub.CloseSession("s1")

	for _, sub := range []*Subscriber{a, b} {
		if _, open := <-sub.Ch; open {
			t.Error("s1 subscriber channel should be closed")
		}
	}
	if n := hub.SubscriberCount("s1"); n != 0 {
		t.Errorf("s1 subscriber count = %d, want 0", n)
	}

	// Unrelated session is untouched.
	if n := hub.SubscriberCount("s2"); n != 1 {
		t.Errorf("s2 subscriber count = %d, want 1", n)
	}
	select {
	case <-other.Ch:
		t.Error("s2 subscriber should still be open with no updates")
	default:
	}

	// Unsubscribe after CloseSession is safe.
	hub.Unsubscribe(a)
	hub.CloseSession("s1") // repeat close is a no-op
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	hub := NewLiveHub(1, zap.NewNop())
	sub := hub.Subscribe("s1")

	// Nobody reading: second publish must drop, not block.
	done := make(chan struct{})
	go func() {
		hub.Publish("s1", record("s1", "u1"))
		hub.Publish("s1", record("s1", "u2"))
		hub.Publish("s1", record("s1", "u3"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber buffer")
	}

	update := <-sub.Ch
	if update.Data.UserID != "u1" {
		t.Errorf("first buffered update = %+v, want u1", update)
	}
}

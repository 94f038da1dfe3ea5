package network

import (
	"os"
	"testing"

	"rogue-server/pkg/api"
	"rogue-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestBroadcaster(t *testing.T) {
	t.Run("SendTo reaches only the addressee", func(t *testing.T) {
		b := NewBroadcaster()
		a := b.Register("a")
		other := b.Register("b")

		b.SendTo("a", api.ServerResponse{Type: "UPDATE", Turn: 3})

		select {
		case msg := <-a:
			if msg.Turn != 3 {
				t.Errorf("turn = %d, want 3", msg.Turn)
			}
		default:
			t.Fatal("addressee got nothing")
		}
		if len(other) != 0 {
			t.Error("other subscriber must not receive unicast")
		}
	})

	t.Run("Broadcast reaches everyone", func(t *testing.T) {
		b := NewBroadcaster()
		a := b.Register("a")
		c := b.Register("c")

		b.Broadcast(api.ServerResponse{Type: "UPDATE"})

		if len(a) != 1 || len(c) != 1 {
			t.Errorf("queued: a=%d c=%d, want 1 each", len(a), len(c))
		}
	})

	t.Run("Re-register closes the old channel", func(t *testing.T) {
		b := NewBroadcaster()
		old := b.Register("a")
		b.Register("a")

		if _, ok := <-old; ok {
			t.Error("old channel must be closed")
		}
		if b.SubscriberCount() != 1 {
			t.Errorf("subscribers = %d, want 1", b.SubscriberCount())
		}
	})

	t.Run("Unregister", func(t *testing.T) {
		b := NewBroadcaster()
		b.Register("a")
		b.Unregister("a")
		b.Unregister("a")

		if b.HasSubscriber("a") {
			t.Error("subscriber still present")
		}
		// Отправка отсутствующему клиенту - no-op.
		b.SendTo("a", api.ServerResponse{})
	})

	t.Run("Full channel drops instead of blocking", func(t *testing.T) {
		b := NewBroadcaster()
		ch := b.Register("a")
		for i := 0; i < cap(ch)+10; i++ {
			b.SendTo("a", api.ServerResponse{Turn: i})
		}
		if len(ch) != cap(ch) {
			t.Errorf("queued = %d, want %d", len(ch), cap(ch))
		}
	})
}

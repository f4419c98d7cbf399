package realtime

import (
	"testing"
	"time"
)

func newTestClient(room string) *Client {
	return &Client{
		Send: make(chan []byte, 4),
		Room: room,
	}
}

func TestBroadcastReachesRoomMembers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := newTestClient("feed")
	b := newTestClient("feed")
	other := newTestClient("tournament:t1")
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)

	hub.Broadcast("feed", []byte("hello"))

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			if string(msg) != "hello" {
				t.Errorf("got %q, want %q", msg, "hello")
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for broadcast")
		}
	}

	select {
	case msg := <-other.Send:
		t.Errorf("client in another room received %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	c := newTestClient("feed")
	hub.Register(c)
	hub.Unregister(c)

	select {
	case _, open := <-c.Send:
		if open {
			t.Error("expected send channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}

	// Broadcasts after unregister must not reach the departed client.
	hub.Broadcast("feed", []byte("late"))
}

func TestSlowConsumerIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := &Client{Send: make(chan []byte), Room: "feed"} // unbuffered, never read
	hub.Register(slow)

	hub.Broadcast("feed", []byte("one"))

	select {
	case _, open := <-slow.Send:
		if open {
			t.Error("expected slow consumer's channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for slow consumer to be dropped")
	}
}

func TestStopClosesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := newTestClient("feed")
	b := newTestClient("tournament:t1")
	hub.Register(a)
	hub.Register(b)

	hub.Stop()

	for _, c := range []*Client{a, b} {
		select {
		case _, open := <-c.Send:
			if open {
				t.Error("expected send channel to be closed on stop")
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for stop to close channels")
		}
	}
}

package eventbus

import (
	"testing"
	"time"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := New()
	a := bus.Subscribe()
	b := bus.Subscribe()

	bus.Publish("hello")
	for _, ch := range []<-chan Event{a, b} {
		select {
		case ev := <-ch:
			if ev != "hello" {
				t.Fatalf("event = %v", ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out")
		}
	}
}

func TestBus_SlowSubscriberDropsEvents(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	for i := 0; i < 40; i++ {
		bus.Publish(i)
	}
	// The buffer holds 16 events; the rest are dropped, never blocking the
	// publisher.
	count := 0
	for {
		select {
		case <-ch:
			count++
		default:
			if count != 16 {
				t.Fatalf("buffered %d events, want 16", count)
			}
			return
		}
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatalf("channel not closed")
	}
	bus.Publish("after") // must not panic
}

func TestBus_Close(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch; ok {
		t.Fatalf("channel not closed")
	}
	bus.Publish("after close") // must not panic
	bus.Close()                // idempotent
	if _, ok := <-bus.Subscribe(); ok {
		t.Fatalf("post-close subscription must be closed")
	}
}

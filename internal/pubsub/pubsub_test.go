package pubsub

import (
	"testing"
	"time"
)

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for a value")
		var zero T
		return zero
	}
}

func TestSubscriberReceivesCurrentValueImmediately(t *testing.T) {
	v := NewValue("dark")
	ch, cancel := v.Subscribe()
	defer cancel()

	if got := recv(t, ch); got != "dark" {
		t.Fatalf("replayed value = %q, want dark", got)
	}
}

func TestLateSubscriberSeesLatestSet(t *testing.T) {
	v := NewValue("a")
	v.Set("b")
	v.Set("c")

	ch, cancel := v.Subscribe()
	defer cancel()
	if got := recv(t, ch); got != "c" {
		t.Fatalf("late subscriber got %q, want c", got)
	}
	if got := v.Get(); got != "c" {
		t.Fatalf("Get() = %q, want c", got)
	}
}

func TestSetFansOutToAllSubscribers(t *testing.T) {
	v := NewValue(0)
	ch1, cancel1 := v.Subscribe()
	defer cancel1()
	ch2, cancel2 := v.Subscribe()
	defer cancel2()

	<-ch1
	<-ch2

	v.Set(7)
	for i, ch := range []<-chan int{ch1, ch2} {
		select {
		case got := <-ch:
			if got != 7 {
				t.Fatalf("subscriber %d got %d, want 7", i, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the update", i)
		}
	}
}

func TestSlowSubscriberConvergesOnLatest(t *testing.T) {
	v := NewValue("start")
	ch, cancel := v.Subscribe()
	defer cancel()

	// Never drained: the single pending slot must end up holding the last Set.
	v.Set("one")
	v.Set("two")
	v.Set("three")

	if got := recv(t, ch); got != "three" {
		t.Fatalf("slow subscriber converged on %q, want three", got)
	}
}

func TestCancelClosesChannelAndStopsDelivery(t *testing.T) {
	v := NewValue(1)
	ch, cancel := v.Subscribe()
	<-ch
	cancel()

	if _, ok := <-ch; ok {
		t.Fatalf("channel still open after cancel")
	}

	// A Set after cancel must not panic or deliver.
	v.Set(2)

	// Double cancel is safe.
	cancel()
}

func TestConcurrentSetAndCancel(t *testing.T) {
	// Sets race against subscribers unsubscribing; a send must never hit a
	// closed channel. Run with -race.
	v := NewValue(0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			v.Set(i)
		}
	}()

	for i := 0; i < 200; i++ {
		ch, cancel := v.Subscribe()
		<-ch
		cancel()
	}
	<-done

	ch, cancel := v.Subscribe()
	defer cancel()
	if got := recv(t, ch); got != 999 {
		t.Fatalf("final value = %d, want 999", got)
	}
}

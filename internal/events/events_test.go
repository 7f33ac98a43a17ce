package events

import (
	"sync"
	"testing"
)

func TestPublishOrder(t *testing.T) {
	bus := New()
	var got []string

	bus.Subscribe(UserLoggedInEvent, func(any) { got = append(got, "first") })
	bus.Subscribe(UserLoggedInEvent, func(any) { got = append(got, "second") })
	bus.Subscribe(UserLoggedOutEvent, func(any) { got = append(got, "other") })

	bus.Publish(UserLoggedInEvent, nil)

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("handlers called = %v, want [first second]", got)
	}
}

func TestTypedHandlers(t *testing.T) {
	var bus Bus
	var in UserLoggedIn
	var out UserLoggedOut

	bus.OnLoggedIn(func(ev UserLoggedIn) { in = ev })
	bus.OnLoggedOut(func(ev UserLoggedOut) { out = ev })

	bus.PublishLoggedIn(UserLoggedIn{UserID: 4, Email: "ana@example.com"})
	bus.PublishLoggedOut(UserLoggedOut{UserID: 4, Reason: LogoutExpired})
	// wrong payload type is ignored
	bus.Publish(UserLoggedInEvent, "not an event")

	if in.UserID != 4 || in.Email != "ana@example.com" {
		t.Errorf("login payload = %+v", in)
	}
	if out.Reason != LogoutExpired {
		t.Errorf("logout payload = %+v", out)
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := New()
	calls := 0

	unsub := bus.OnLoggedOut(func(UserLoggedOut) { calls++ })
	bus.PublishLoggedOut(UserLoggedOut{})
	unsub()
	unsub() // second call is a no-op
	bus.PublishLoggedOut(UserLoggedOut{})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	bus := New()
	calls := 0

	var unsub func()
	unsub = bus.Subscribe(UserLoggedInEvent, func(any) {
		calls++
		unsub()
	})

	bus.Publish(UserLoggedInEvent, nil)
	bus.Publish(UserLoggedInEvent, nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestNilBusPublish(t *testing.T) {
	var bus *Bus
	bus.Publish(UserLoggedInEvent, nil)
}

func TestConcurrentPublish(t *testing.T) {
	bus := New()
	var mu sync.Mutex
	count := 0
	bus.Subscribe(UserLoggedInEvent, func(any) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(UserLoggedInEvent, nil)
		}()
	}
	wg.Wait()

	if count != 20 {
		t.Errorf("count = %d, want 20", count)
	}
}

// Package events is a small typed publish/subscribe bus used to broadcast
// session changes between components.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Name identifies an event kind
type Name string

const (
	// UserLoggedInEvent is published after credentials are stored. Payload: UserLoggedIn.
	UserLoggedInEvent Name = "user.logged_in"
	// UserLoggedOutEvent is published after credentials are cleared. Payload: UserLoggedOut.
	UserLoggedOutEvent Name = "user.logged_out"
)

// LogoutReason explains why a session ended
type LogoutReason string

const (
	LogoutRequested LogoutReason = "requested"
	LogoutExpired   LogoutReason = "expired"
)

type UserLoggedIn struct {
	UserID int
	Email  string
}

type UserLoggedOut struct {
	UserID int
	Reason LogoutReason
}

// Handler receives an event payload
type Handler func(payload any)

type subscription struct {
	id      uuid.UUID
	handler Handler
}

// Bus delivers events to subscribers synchronously, in subscription order.
// The zero value is ready to use.
type Bus struct {
	mu   sync.RWMutex
	subs map[Name][]subscription
}

func New() *Bus {
	return &Bus{}
}

// Subscribe registers h for name and returns a function that removes it.
func (b *Bus) Subscribe(name Name, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[Name][]subscription)
	}
	id := uuid.New()
	b.subs[name] = append(b.subs[name], subscription{id: id, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(name, id) })
	}
}

func (b *Bus) remove(name Name, id uuid.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[name]
	for i, s := range subs {
		if s.id == id {
			b.subs[name] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish delivers payload to every handler subscribed to name.
// Handlers may subscribe or unsubscribe while being called.
func (b *Bus) Publish(name Name, payload any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[name]...)
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(payload)
	}
}

// PublishLoggedIn publishes a UserLoggedIn event.
func (b *Bus) PublishLoggedIn(ev UserLoggedIn) {
	b.Publish(UserLoggedInEvent, ev)
}

// PublishLoggedOut publishes a UserLoggedOut event.
func (b *Bus) PublishLoggedOut(ev UserLoggedOut) {
	b.Publish(UserLoggedOutEvent, ev)
}

// OnLoggedIn subscribes a typed handler to login events.
func (b *Bus) OnLoggedIn(fn func(UserLoggedIn)) (unsubscribe func()) {
	return b.Subscribe(UserLoggedInEvent, func(p any) {
		if ev, ok := p.(UserLoggedIn); ok {
			fn(ev)
		}
	})
}

// OnLoggedOut subscribes a typed handler to logout events.
func (b *Bus) OnLoggedOut(fn func(UserLoggedOut)) (unsubscribe func()) {
	return b.Subscribe(UserLoggedOutEvent, func(p any) {
		if ev, ok := p.(UserLoggedOut); ok {
			fn(ev)
		}
	})
}

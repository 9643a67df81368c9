//go:generate mockgen -source=auth.go -destination=mocks/mock_auth.go -package=mocks

// Package auth holds the officer session collaborator: sign-in, session
// lookup, sign-out and the session change stream.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoSession          = errors.New("no active session")
)

type Session struct {
	Token     string    `json:"-"`
	OfficerID string    `json:"officer_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Region    string    `json:"region"`
	ExpiresAt time.Time `json:"expires_at"`
}

type EventKind string

const (
	EventSessionStarted EventKind = "session_started"
	EventSessionEnded   EventKind = "session_ended"
)

type SessionEvent struct {
	Kind      EventKind
	Token     string
	OfficerID string
	At        time.Time
}

type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
	// GetSession returns ErrNoSession for unknown, expired or signed-out tokens.
	GetSession(ctx context.Context, token string) (*Session, error)
	SignOut(ctx context.Context, token string) error
	Subscribe() (<-chan SessionEvent, func())
}

const subscriberBuffer = 16

// Broadcaster fans session events out to subscribers. Publishing never
// blocks; a subscriber whose buffer is full misses the event.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan SessionEvent
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]chan SessionEvent)}
}

func (b *Broadcaster) Subscribe() (<-chan SessionEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan SessionEvent, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (b *Broadcaster) Publish(ev SessionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (b *Broadcaster) started(s *Session) {
	b.Publish(SessionEvent{Kind: EventSessionStarted, Token: s.Token, OfficerID: s.OfficerID, At: time.Now()})
}

func (b *Broadcaster) ended(token, officerID string) {
	b.Publish(SessionEvent{Kind: EventSessionEnded, Token: token, OfficerID: officerID, At: time.Now()})
}

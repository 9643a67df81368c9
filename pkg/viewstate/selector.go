// Package viewstate decides which screen a page session shows: the public
// landing page, a farmer's dashboard, or the officer portal before or after
// login.
package viewstate

import (
	"context"
	"strings"
	"sync"

	"agroalert.dev/dashboard-service/pkg/auth"
)

type Mode string

const (
	ModeAnonymous              Mode = "anonymous"
	ModeFarmerView             Mode = "farmer_view"
	ModeOfficerUnauthenticated Mode = "officer_unauthenticated"
	ModeOfficerAuthenticated   Mode = "officer_authenticated"
)

type State struct {
	Mode     Mode   `json:"mode"`
	FarmerID string `json:"farmer_id,omitempty"`
}

type Event string

const (
	EventOfficerLoginRequested Event = "officer_login_requested"
	EventSessionStarted        Event = "session_started"
	EventSessionEnded          Event = "session_ended"
	EventLogout                Event = "logout"
)

// FarmerQueryKey is the only navigation parameter the selector reads.
const FarmerQueryKey = "farmer"

// Selector holds the view state of one page session. A farmer view chosen at
// load time is final; every other state moves only through Apply.
type Selector struct {
	mu    sync.Mutex
	state State
}

func New() *Selector {
	return &Selector{state: State{Mode: ModeAnonymous}}
}

// Load resolves the initial screen from the farmer query value and whether
// the auth collaborator already reports a session.
func (s *Selector) Load(farmerID string, hasSession bool) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	farmerID = strings.TrimSpace(farmerID)
	switch {
	case farmerID != "":
		s.state = State{Mode: ModeFarmerView, FarmerID: farmerID}
	case hasSession:
		s.state = State{Mode: ModeOfficerAuthenticated}
	default:
		s.state = State{Mode: ModeAnonymous}
	}
	return s.state
}

func (s *Selector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply runs one transition and returns the resulting state. Pairs without a
// transition leave the state unchanged.
func (s *Selector) Apply(ev Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = next(s.state, ev)
	return s.state
}

func next(current State, ev Event) State {
	switch current.Mode {
	case ModeAnonymous:
		switch ev {
		case EventOfficerLoginRequested:
			return State{Mode: ModeOfficerUnauthenticated}
		case EventSessionStarted:
			return State{Mode: ModeOfficerAuthenticated}
		}
	case ModeOfficerUnauthenticated:
		if ev == EventSessionStarted {
			return State{Mode: ModeOfficerAuthenticated}
		}
	case ModeOfficerAuthenticated:
		if ev == EventLogout || ev == EventSessionEnded {
			return State{Mode: ModeOfficerUnauthenticated}
		}
	}
	return current
}

func fromSessionEvent(ev auth.SessionEvent) (Event, bool) {
	switch ev.Kind {
	case auth.EventSessionStarted:
		return EventSessionStarted, true
	case auth.EventSessionEnded:
		return EventSessionEnded, true
	}
	return "", false
}

// Watch applies session events that match to the selector and sends every
// resulting state change on the returned channel. The channel closes when
// ctx is done or events is closed. A nil match accepts every event.
func (s *Selector) Watch(ctx context.Context, events <-chan auth.SessionEvent, match func(auth.SessionEvent) bool) <-chan State {
	changes := make(chan State, 1)

	go func() {
		defer close(changes)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if match != nil && !match(ev) {
					continue
				}
				kind, ok := fromSessionEvent(ev)
				if !ok {
					continue
				}

				s.mu.Lock()
				before := s.state
				s.state = next(before, kind)
				after := s.state
				s.mu.Unlock()

				if after == before {
					continue
				}
				select {
				case changes <- after:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return changes
}

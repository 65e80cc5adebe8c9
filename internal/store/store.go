// Package store holds the single source of truth for a game session.
//
// All writes go through Commit, which applies a group of mutations atomically
// and then notifies subscribers. Reads go through Snapshot, which returns a deep
// copy, and the pure getter methods on State.
package store

import (
	"sync"
	"time"
)

// Store guards one State.
type Store struct {
	// publishMu keeps events in commit order. Subscribers must not commit.
	publishMu sync.Mutex

	mu          sync.RWMutex
	state       State
	changed     chan struct{}
	subscribers []subscription
	nextSubID   int
}

type subscription struct {
	id  int
	sub EventSubscriber
}

// New returns a store in the initial state.
func New() *Store {
	return &Store{
		state:   InitialState(),
		changed: make(chan struct{}),
	}
}

// Commit applies mutations in order as one indivisible update, then publishes a
// single event describing the group.
func (s *Store) Commit(mutations ...Mutation) {
	if len(mutations) == 0 {
		return
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	types := make([]MutationType, len(mutations))
	for i, m := range mutations {
		m.apply(&s.state)
		types[i] = m.Type()
	}
	snapshot := s.state.Clone()
	close(s.changed)
	s.changed = make(chan struct{})
	subscribers := append([]subscription(nil), s.subscribers...)
	s.mu.Unlock()

	event := Event{Mutations: types, State: snapshot, timestamp: time.Now()}
	for _, entry := range subscribers {
		entry.sub.OnEvent(event)
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// PauseState returns the pause flag together with a channel that is closed by
// the next commit. Waiters block on the channel instead of polling.
func (s *Store) PauseState() (bool, <-chan struct{}) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsPaused, s.changed
}

// Subscribe adds a subscriber and returns a function that removes it.
// Subscribers run synchronously on the committing goroutine.
func (s *Store) Subscribe(subscriber EventSubscriber) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subscribers = append(s.subscribers, subscription{id: id, sub: subscriber})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, entry := range s.subscribers {
			if entry.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

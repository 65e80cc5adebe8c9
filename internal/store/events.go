package store

import "time"

// Event is published after every commit. State is a snapshot taken while the
// commit still held the lock, so it reflects exactly this commit.
type Event struct {
	Mutations []MutationType
	State     State
	timestamp time.Time
}

func (e Event) Timestamp() time.Time { return e.timestamp }

// Has reports whether the commit included a mutation of type t.
func (e Event) Has(t MutationType) bool {
	for _, m := range e.Mutations {
		if m == t {
			return true
		}
	}
	return false
}

// EventSubscriber receives state change events.
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(event Event) { f(event) }

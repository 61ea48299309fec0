package board

import "time"

// Event is a fact recorded by the aggregate during a mutation. Events stay
// buffered on the Board until the application layer dispatches them after a
// successful persist and clears the buffer.
type Event interface {
	// EventName returns the stable event identifier (e.g. "board.created").
	EventName() string

	// OccurredAt returns when the event was recorded.
	OccurredAt() time.Time
}

// BoardCreated is recorded once when a board aggregate is constructed.
// Downstream collaborators (gamification, notifications) consume the owner
// and board type.
type BoardCreated struct {
	BoardID string
	OwnerID string
	Type    BoardType
	At      time.Time
}

// EventName implements Event.
func (e BoardCreated) EventName() string { return "board.created" }

// OccurredAt implements Event.
func (e BoardCreated) OccurredAt() time.Time { return e.At }

// CardCompleted is recorded when a card's progress transitions to 100
// through UpdateCard. Toggling a card's completion flag does not record it.
type CardCompleted struct {
	BoardID string
	CardID  string
	OwnerID string
	At      time.Time
}

// EventName implements Event.
func (e CardCompleted) EventName() string { return "card.completed" }

// OccurredAt implements Event.
func (e CardCompleted) OccurredAt() time.Time { return e.At }

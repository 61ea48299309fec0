package ports

import (
	"context"

	"github.com/lumeo-app/board-service/internal/domain/board"
)

// EventDispatcher delivers buffered domain events to downstream collaborators
// (gamification, notifications). The application layer calls DispatchAll once
// per use case, after a successful persist and before clearing the
// aggregate's buffer.
//
// Dispatch is best-effort: a failure is reported so the caller can log it,
// but it never rolls back the already-persisted state.
type EventDispatcher interface {
	DispatchAll(ctx context.Context, events []board.Event) error
}

package ports

import (
	"context"
	"time"

	"github.com/lumeo-app/board-service/internal/domain/board"
)

// BoardService defines the service port for board aggregate operations.
// Implemented by the application layer; called by inbound adapters
// (handlers). Inputs carry raw primitives; the implementation validates them
// through the domain value objects before any mutation, so malformed input
// never reaches the aggregate.
//
// Every method follows the same shape: load the aggregate (except creation),
// verify ownership, validate input, apply exactly one aggregate-level
// mutation (or one bounded batch for UpdateBoard), persist the whole
// aggregate, dispatch and clear buffered events, and return the fresh
// aggregate snapshot.
type BoardService interface {
	// CreateBoard creates a board of the requested type. Items become cards
	// in the board's first column ("Items" for todo boards).
	// Returns domain.ErrValidation for a bad title, type, or item title.
	CreateBoard(ctx context.Context, in CreateBoardInput) (*board.Board, error)

	// CreateKanbanBoard creates a kanban board with optional explicit
	// columns and metadata. No columns means the default three-column
	// layout ("To Do", "In Progress", "Done").
	CreateKanbanBoard(ctx context.Context, in CreateKanbanBoardInput) (*board.Board, error)

	// GetBoard returns a single board. Returns domain.ErrNotFound if absent
	// and domain.ErrForbidden when the caller does not own it.
	GetBoard(ctx context.Context, boardID, userID string) (*board.Board, error)

	// GetUserBoards returns one page of the caller's boards, optionally
	// filtered by type ("todo" or "kanban"). Read-only.
	GetUserBoards(ctx context.Context, in ListBoardsInput) (Page[*board.Board], error)

	// AddColumn appends a column to a kanban board.
	// Returns domain.ErrBusinessRule for non-kanban boards.
	AddColumn(ctx context.Context, in AddColumnInput) (*board.Board, error)

	// AddCard appends a card to the given column at position max+1.
	AddCard(ctx context.Context, in AddCardInput) (*board.Board, error)

	// UpdateCard applies field updates to a card. A progress transition to
	// 100 dispatches a CardCompleted event after the persist succeeds.
	UpdateCard(ctx context.Context, in UpdateCardInput) (*board.Board, error)

	// MoveCard moves a card to a column at a position. When the target
	// column is the card's current column the card is reordered in place
	// instead of removed and reinserted.
	MoveCard(ctx context.Context, in MoveCardInput) (*board.Board, error)

	// UpdateBoard applies a bounded batch against one loaded snapshot:
	// optional title change, card toggles, card removals, and new cards for
	// the first column, persisted in a single write.
	UpdateBoard(ctx context.Context, in UpdateBoardInput) (*board.Board, error)

	// DeleteBoard checks ownership and deletes the board, returning the
	// deleted id.
	DeleteBoard(ctx context.Context, boardID, userID string) (string, error)
}

// CreateBoardInput is the contract for CreateBoard.
type CreateBoardInput struct {
	UserID string
	Title  string
	Type   string
	Items  []string
}

// CreateKanbanBoardInput is the contract for CreateKanbanBoard.
type CreateKanbanBoardInput struct {
	UserID      string
	Title       string
	Columns     []string
	Description string
	Priority    string
	DueDate     *time.Time
	Tags        []string
	Link        string
}

// ListBoardsInput is the contract for GetUserBoards. Type is an optional
// filter; empty means all board types.
type ListBoardsInput struct {
	UserID string
	Page   int
	Limit  int
	Type   string
}

// AddColumnInput is the contract for AddColumn.
type AddColumnInput struct {
	BoardID string
	UserID  string
	Title   string
}

// AddCardInput is the contract for AddCard.
type AddCardInput struct {
	BoardID     string
	ColumnID    string
	UserID      string
	Title       string
	Description string
	Progress    int
	DueDate     *time.Time
}

// UpdateCardInput is the contract for UpdateCard. Nil pointers leave the
// corresponding card field unchanged; a nil Tags slice leaves tags untouched.
type UpdateCardInput struct {
	BoardID     string
	CardID      string
	UserID      string
	Title       *string
	Description *string
	Content     *string
	Progress    *int
	Priority    *string
	Tags        []string
	Link        *string
	DueDate     *time.Time
}

// MoveCardInput is the contract for MoveCard.
type MoveCardInput struct {
	BoardID     string
	CardID      string
	UserID      string
	ToColumnID  string
	NewPosition int
}

// NewCardInput is one card addition inside an UpdateBoard batch.
type NewCardInput struct {
	Title string
}

// UpdateBoardInput is the contract for UpdateBoard. All parts are optional;
// the batch is applied against one loaded snapshot and persisted once.
type UpdateBoardInput struct {
	BoardID       string
	UserID        string
	Title         *string
	ToggleCardIDs []string
	RemoveCardIDs []string
	AddCards      []NewCardInput
}

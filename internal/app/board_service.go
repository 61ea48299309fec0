// Package app provides the application service that orchestrates board use
// cases: load, ownership check, input validation, one aggregate mutation,
// persist, event dispatch. It contains no business logic of its own; the
// aggregate enforces the invariants.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lumeo-app/board-service/internal/domain"
	"github.com/lumeo-app/board-service/internal/domain/board"
	"github.com/lumeo-app/board-service/internal/ports"
)

// Compile-time check that BoardService implements ports.BoardService.
var _ ports.BoardService = (*BoardService)(nil)

// BoardService implements ports.BoardService on top of the repository and
// event-dispatcher ports. Each invocation is a single load-mutate-persist
// unit; concurrent invocations on the same board are serialized by the
// repository's optimistic version check.
type BoardService struct {
	repo       ports.BoardRepository
	dispatcher ports.EventDispatcher
	logger     *slog.Logger
}

// NewBoardService creates a BoardService. The dispatcher receives the
// aggregate's buffered events after every successful persist.
func NewBoardService(repo ports.BoardRepository, dispatcher ports.EventDispatcher, logger *slog.Logger) *BoardService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &BoardService{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// CreateBoard creates a board of the requested type and seeds the first
// column with one card per item.
func (s *BoardService) CreateBoard(ctx context.Context, in ports.CreateBoardInput) (*board.Board, error) {
	s.logger.InfoContext(ctx, "creating board",
		slog.String("user_id", in.UserID),
		slog.String("type", in.Type),
	)

	title, err := board.NewTitle(in.Title)
	if err != nil {
		return nil, err
	}
	typ, err := board.ParseBoardType(in.Type)
	if err != nil {
		return nil, err
	}
	items := make([]board.CardTitle, len(in.Items))
	for i, item := range in.Items {
		items[i], err = board.NewCardTitle(item)
		if err != nil {
			return nil, err
		}
	}

	var b *board.Board
	switch typ {
	case board.TypeTodo:
		b = board.NewTodoBoard(in.UserID, title, items)
	case board.TypeKanban:
		b = board.NewKanbanBoard(in.UserID, title, nil, board.Metadata{})
		col, _ := b.FirstColumn()
		for _, item := range items {
			if err := b.AddCardToColumn(col.ID, board.NewCard(item, 0)); err != nil {
				return nil, err
			}
		}
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.logError(ctx, "CreateBoard", b.ID, err)
		return nil, fmt.Errorf("creating board: %w", err)
	}
	s.dispatchEvents(ctx, b)

	return b, nil
}

// CreateKanbanBoard creates a kanban board with optional explicit columns
// and metadata.
func (s *BoardService) CreateKanbanBoard(ctx context.Context, in ports.CreateKanbanBoardInput) (*board.Board, error) {
	s.logger.InfoContext(ctx, "creating kanban board", slog.String("user_id", in.UserID))

	title, err := board.NewTitle(in.Title)
	if err != nil {
		return nil, err
	}
	priority, err := board.ParsePriority(in.Priority)
	if err != nil {
		return nil, err
	}

	b := board.NewKanbanBoard(in.UserID, title, in.Columns, board.Metadata{
		Description: in.Description,
		Priority:    priority,
		DueDate:     in.DueDate,
		Tags:        in.Tags,
		Link:        in.Link,
	})

	if err := s.repo.Create(ctx, b); err != nil {
		s.logError(ctx, "CreateKanbanBoard", b.ID, err)
		return nil, fmt.Errorf("creating kanban board: %w", err)
	}
	s.dispatchEvents(ctx, b)

	return b, nil
}

// GetBoard returns one board after an ownership check.
func (s *BoardService) GetBoard(ctx context.Context, boardID, userID string) (*board.Board, error) {
	return s.loadOwned(ctx, boardID, userID)
}

// GetUserBoards returns one page of the caller's boards, optionally filtered
// by type. Read-only: the aggregate's mutation surface is never touched.
func (s *BoardService) GetUserBoards(ctx context.Context, in ports.ListBoardsInput) (ports.Page[*board.Board], error) {
	req := ports.PageRequest{Page: in.Page, Limit: in.Limit}.Normalize()

	var typ *board.BoardType
	if in.Type != "" {
		parsed, err := board.ParseBoardType(in.Type)
		if err != nil {
			return ports.Page[*board.Board]{}, err
		}
		typ = &parsed
	}

	page, err := s.repo.FindByOwner(ctx, in.UserID, req, typ)
	if err != nil {
		s.logError(ctx, "GetUserBoards", "", err)
		return ports.Page[*board.Board]{}, fmt.Errorf("listing boards: %w", err)
	}
	return page, nil
}

// AddColumn appends a column to a kanban board.
func (s *BoardService) AddColumn(ctx context.Context, in ports.AddColumnInput) (*board.Board, error) {
	b, err := s.loadOwned(ctx, in.BoardID, in.UserID)
	if err != nil {
		return nil, err
	}

	if _, err := b.AddColumn(in.Title); err != nil {
		return nil, err
	}

	return s.persist(ctx, "AddColumn", b)
}

// AddCard validates the card fields and appends the card to the column.
func (s *BoardService) AddCard(ctx context.Context, in ports.AddCardInput) (*board.Board, error) {
	b, err := s.loadOwned(ctx, in.BoardID, in.UserID)
	if err != nil {
		return nil, err
	}

	title, err := board.NewCardTitle(in.Title)
	if err != nil {
		return nil, err
	}
	progress, err := board.NewProgress(in.Progress)
	if err != nil {
		return nil, err
	}

	card := board.NewCard(title, progress)
	card.Description = in.Description
	if in.DueDate != nil {
		due := *in.DueDate
		card.DueDate = &due
	}

	if err := b.AddCardToColumn(in.ColumnID, card); err != nil {
		return nil, err
	}

	return s.persist(ctx, "AddCard", b)
}

// UpdateCard applies field updates to a card and dispatches any completion
// event after the persist succeeds.
func (s *BoardService) UpdateCard(ctx context.Context, in ports.UpdateCardInput) (*board.Board, error) {
	b, err := s.loadOwned(ctx, in.BoardID, in.UserID)
	if err != nil {
		return nil, err
	}

	update, err := buildCardUpdate(in)
	if err != nil {
		return nil, err
	}

	if err := b.UpdateCard(in.CardID, update); err != nil {
		return nil, err
	}

	return s.persist(ctx, "UpdateCard", b)
}

// MoveCard relocates a card. When the target column is the card's current
// column, the card is reordered in place; moving through remove-and-insert
// would be a spurious cycle and could duplicate the card.
func (s *BoardService) MoveCard(ctx context.Context, in ports.MoveCardInput) (*board.Board, error) {
	b, err := s.loadOwned(ctx, in.BoardID, in.UserID)
	if err != nil {
		return nil, err
	}

	_, current, ok := b.FindCard(in.CardID)
	if !ok {
		return nil, domain.NotFound("card")
	}

	if current.ID == in.ToColumnID {
		err = b.ReorderCard(in.ToColumnID, in.CardID, in.NewPosition)
	} else {
		err = b.MoveCard(in.CardID, in.ToColumnID, in.NewPosition)
	}
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, "MoveCard", b)
}

// UpdateBoard applies a bounded batch (title, toggles, removals, additions)
// against one loaded snapshot and persists once.
func (s *BoardService) UpdateBoard(ctx context.Context, in ports.UpdateBoardInput) (*board.Board, error) {
	b, err := s.loadOwned(ctx, in.BoardID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title, err := board.NewTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		b.UpdateTitle(title)
	}

	for _, id := range in.ToggleCardIDs {
		if err := b.ToggleCard(id); err != nil {
			return nil, err
		}
	}
	for _, id := range in.RemoveCardIDs {
		if err := b.RemoveCard(id); err != nil {
			return nil, err
		}
	}

	if len(in.AddCards) > 0 {
		col, ok := b.FirstColumn()
		if !ok {
			return nil, domain.NotFound("column")
		}
		for _, add := range in.AddCards {
			title, err := board.NewCardTitle(add.Title)
			if err != nil {
				return nil, err
			}
			if err := b.AddCardToColumn(col.ID, board.NewCard(title, 0)); err != nil {
				return nil, err
			}
		}
	}

	return s.persist(ctx, "UpdateBoard", b)
}

// DeleteBoard checks ownership then delegates to the repository's delete,
// returning the deleted id.
func (s *BoardService) DeleteBoard(ctx context.Context, boardID, userID string) (string, error) {
	if _, err := s.loadOwned(ctx, boardID, userID); err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, boardID); err != nil {
		s.logError(ctx, "DeleteBoard", boardID, err)
		return "", fmt.Errorf("deleting board: %w", err)
	}

	s.logger.InfoContext(ctx, "board deleted", slog.String("board_id", boardID))
	return boardID, nil
}

// loadOwned fetches the aggregate and verifies the caller owns it. The
// not-found check precedes the ownership check so absent boards never leak
// through a forbidden error.
func (s *BoardService) loadOwned(ctx context.Context, boardID, userID string) (*board.Board, error) {
	b, err := s.repo.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if b.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	return b, nil
}

// persist writes the whole aggregate and drains its event buffer.
func (s *BoardService) persist(ctx context.Context, operation string, b *board.Board) (*board.Board, error) {
	if err := s.repo.Update(ctx, b); err != nil {
		s.logError(ctx, operation, b.ID, err)
		return nil, fmt.Errorf("persisting board: %w", err)
	}
	s.dispatchEvents(ctx, b)
	return b, nil
}

// dispatchEvents forwards buffered events to the dispatcher and clears the
// buffer. Dispatch runs after the persist succeeded; a failure is logged but
// never unwinds the already-persisted state.
func (s *BoardService) dispatchEvents(ctx context.Context, b *board.Board) {
	events := b.Events()
	if len(events) == 0 {
		return
	}
	if err := s.dispatcher.DispatchAll(ctx, events); err != nil {
		s.logger.ErrorContext(ctx, "event dispatch failed",
			slog.String("operation", "dispatchEvents"),
			slog.String("board_id", b.ID),
			slog.Int("events", len(events)),
			slog.Any("error", err),
		)
	}
	b.ClearEvents()
}

func (s *BoardService) logError(ctx context.Context, operation, boardID string, err error) {
	s.logger.ErrorContext(ctx, "board operation failed",
		slog.String("operation", operation),
		slog.String("board_id", boardID),
		slog.Any("error", err),
	)
}

// buildCardUpdate validates the raw update fields into domain value objects.
func buildCardUpdate(in ports.UpdateCardInput) (board.CardUpdate, error) {
	var update board.CardUpdate

	if in.Title != nil {
		title, err := board.NewCardTitle(*in.Title)
		if err != nil {
			return board.CardUpdate{}, err
		}
		update.Title = &title
	}
	if in.Progress != nil {
		progress, err := board.NewProgress(*in.Progress)
		if err != nil {
			return board.CardUpdate{}, err
		}
		update.Progress = &progress
	}
	if in.Priority != nil {
		priority, err := board.ParsePriority(*in.Priority)
		if err != nil {
			return board.CardUpdate{}, err
		}
		update.Priority = &priority
	}

	update.Description = in.Description
	update.Content = in.Content
	update.Tags = in.Tags
	update.Link = in.Link
	update.DueDate = in.DueDate

	return update, nil
}

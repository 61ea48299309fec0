package ports

import (
	"context"

	"github.com/lumeo-app/board-service/internal/domain/board"
)

// Pagination defaults and caps applied by PageRequest.Normalize.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// PageRequest selects one page of a listing. Zero values mean "use defaults".
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize returns a copy with defaults applied and the limit capped.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the number of items preceding this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Page is one page of results plus the pagination metadata clients render.
type Page[T any] struct {
	Items       []T
	Page        int
	Limit       int
	Total       int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
}

// NewPage assembles a Page from the items of one page and the total count.
// The request should already be normalized.
func NewPage[T any](items []T, req PageRequest, total int) Page[T] {
	totalPages := 0
	if total > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return Page[T]{
		Items:       items,
		Page:        req.Page,
		Limit:       req.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     req.Page < totalPages,
		HasPrevious: req.Page > 1 && total > 0,
	}
}

// BoardRepository is the persistence port for Board aggregates. The core
// depends only on this contract; the storage engine behind it is an adapter
// concern.
//
// All methods are fallible. Absent boards surface as errors unwrapping to
// domain.ErrNotFound ("board not found"); storage failures wrap
// domain.ErrRepository with the driver message passed through opaquely.
type BoardRepository interface {
	// FindByID loads the whole aggregate, columns and cards included.
	FindByID(ctx context.Context, id string) (*board.Board, error)

	// Create persists a new aggregate.
	Create(ctx context.Context, b *board.Board) error

	// Update persists the whole aggregate. The stored version must match
	// b.Version; on mismatch Update fails with an error unwrapping to
	// domain.ErrConflict and the write is discarded. On success the
	// aggregate's Version is advanced.
	Update(ctx context.Context, b *board.Board) error

	// Delete removes the aggregate and everything it owns.
	Delete(ctx context.Context, id string) error

	// FindByOwner returns one page of the owner's boards ordered by
	// creation time descending, optionally filtered by board type.
	FindByOwner(ctx context.Context, ownerID string, req PageRequest, typ *board.BoardType) (Page[*board.Board], error)
}

// Package memory provides an in-memory BoardRepository used by the local
// profile and as a real collaborator in application-layer tests. It mirrors
// the persistence contract exactly, including the optimistic version check.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lumeo-app/board-service/internal/domain"
	"github.com/lumeo-app/board-service/internal/domain/board"
	"github.com/lumeo-app/board-service/internal/ports"
)

// Compile-time interface check.
var _ ports.BoardRepository = (*Repository)(nil)

// Repository stores deep copies of Board aggregates keyed by id. Every read
// hands out an independent clone, so concurrent use cases never share
// aggregate state (each loads its own snapshot, mutates it, writes it back).
type Repository struct {
	mu     sync.RWMutex
	boards map[string]*board.Board
}

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{boards: make(map[string]*board.Board)}
}

// FindByID returns a clone of the stored aggregate.
func (r *Repository) FindByID(_ context.Context, id string) (*board.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.boards[id]
	if !ok {
		return nil, domain.NotFound("board")
	}
	return b.Clone(), nil
}

// Create stores a snapshot of the new aggregate. The stored copy never
// carries buffered events; draining them is the caller's concern.
func (r *Repository) Create(_ context.Context, b *board.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.boards[b.ID]; ok {
		return fmt.Errorf("%w: board %s already exists", domain.ErrConflict, b.ID)
	}
	r.boards[b.ID] = snapshot(b)
	return nil
}

// Update replaces the stored aggregate after a version compare-and-swap.
// The caller's aggregate has its Version advanced on success, so a stale
// concurrent writer fails with domain.ErrConflict instead of silently
// losing the earlier write.
func (r *Repository) Update(_ context.Context, b *board.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.boards[b.ID]
	if !ok {
		return domain.NotFound("board")
	}
	if stored.Version != b.Version {
		return fmt.Errorf("%w: board %s version %d is stale", domain.ErrConflict, b.ID, b.Version)
	}

	b.Version++
	r.boards[b.ID] = snapshot(b)
	return nil
}

// Delete removes the aggregate and everything it owns.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.boards[id]; !ok {
		return domain.NotFound("board")
	}
	delete(r.boards, id)
	return nil
}

// FindByOwner returns one page of the owner's boards ordered by creation
// time descending, optionally filtered by type.
func (r *Repository) FindByOwner(
	_ context.Context,
	ownerID string,
	req ports.PageRequest,
	typ *board.BoardType,
) (ports.Page[*board.Board], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req = req.Normalize()

	matches := make([]*board.Board, 0)
	for _, b := range r.boards {
		if b.OwnerID != ownerID {
			continue
		}
		if typ != nil && b.Type != *typ {
			continue
		}
		matches = append(matches, b)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	start := req.Offset()
	if start > total {
		start = total
	}
	end := start + req.Limit
	if end > total {
		end = total
	}

	items := make([]*board.Board, 0, end-start)
	for _, b := range matches[start:end] {
		items = append(items, b.Clone())
	}
	return ports.NewPage(items, req, total), nil
}

// Name implements ports.HealthChecker.
func (r *Repository) Name() string { return "memory" }

// HealthCheck implements ports.HealthChecker. Always healthy.
func (r *Repository) HealthCheck(_ context.Context) error { return nil }

// snapshot clones the aggregate and strips the transient event buffer.
func snapshot(b *board.Board) *board.Board {
	snap := b.Clone()
	snap.ClearEvents()
	return snap
}

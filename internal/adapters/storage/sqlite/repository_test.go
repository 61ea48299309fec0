package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumeo-app/board-service/internal/domain"
	"github.com/lumeo-app/board-service/internal/domain/board"
	"github.com/lumeo-app/board-service/internal/ports"
)

func openRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "boards.db")
	repo, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", dsn, err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func newBoard(t *testing.T, owner, title string) *board.Board {
	t.Helper()
	vt, err := board.NewTitle(title)
	if err != nil {
		t.Fatalf("NewTitle(%q) error = %v", title, err)
	}
	milk, _ := board.NewCardTitle("Milk")
	eggs, _ := board.NewCardTitle("Eggs")
	return board.NewTodoBoard(owner, vt, []board.CardTitle{milk, eggs})
}

func mustCreate(t *testing.T, r *Repository, b *board.Board) {
	t.Helper()
	if err := r.Create(context.Background(), b); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	repo := openRepo(t)
	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	vt, _ := board.NewTitle("Release")
	b := board.NewKanbanBoard("user-123", vt, nil, board.Metadata{
		Description: "Q3 release board",
		Priority:    board.PriorityHigh,
		DueDate:     &due,
		Tags:        []string{"release", "q3"},
		Link:        "https://example.com/release",
	})
	mustCreate(t, repo, b)

	got, err := repo.FindByID(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}

	if got.Title.String() != "Release" {
		t.Errorf("Title = %q, want %q", got.Title, "Release")
	}
	if got.Type != board.TypeKanban {
		t.Errorf("Type = %q, want %q", got.Type, board.TypeKanban)
	}
	if got.Meta.Description != "Q3 release board" {
		t.Errorf("Description = %q, want %q", got.Meta.Description, "Q3 release board")
	}
	if got.Meta.Priority != board.PriorityHigh {
		t.Errorf("Priority = %q, want %q", got.Meta.Priority, board.PriorityHigh)
	}
	if got.Meta.DueDate == nil || !got.Meta.DueDate.Equal(due) {
		t.Errorf("DueDate = %v, want %v", got.Meta.DueDate, due)
	}
	if len(got.Meta.Tags) != 2 || got.Meta.Tags[0] != "release" {
		t.Errorf("Tags = %v, want [release q3]", got.Meta.Tags)
	}

	cols := got.ColumnsInOrder()
	if len(cols) != 3 {
		t.Fatalf("len(columns) = %d, want 3", len(cols))
	}
	wantTitles := []string{"To Do", "In Progress", "Done"}
	for i, col := range cols {
		if col.Title != wantTitles[i] {
			t.Errorf("columns[%d].Title = %q, want %q", i, col.Title, wantTitles[i])
		}
		if col.Position != i {
			t.Errorf("columns[%d].Position = %d, want %d", i, col.Position, i)
		}
	}
}

func TestRepository_CardsSurviveRoundTrip(t *testing.T) {
	t.Parallel()

	repo := openRepo(t)
	b := newBoard(t, "user-123", "Groceries")
	mustCreate(t, repo, b)

	got, err := repo.FindByID(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}

	col, ok := got.FirstColumn()
	if !ok {
		t.Fatal("FirstColumn() not found")
	}
	cards := col.CardsInOrder()
	if len(cards) != 2 {
		t.Fatalf("len(cards) = %d, want 2", len(cards))
	}
	if cards[0].Title.String() != "Milk" || cards[1].Title.String() != "Eggs" {
		t.Errorf("card titles = %q, %q; want Milk, Eggs", cards[0].Title, cards[1].Title)
	}
	if cards[0].Position != 0 || cards[1].Position != 1 {
		t.Errorf("card positions = %d, %d; want 0, 1", cards[0].Position, cards[1].Position)
	}
	if cards[0].Completed {
		t.Error("cards[0].Completed = true, want false")
	}
}

func TestRepository_FindByID_Missing(t *testing.T) {
	t.Parallel()

	repo := openRepo(t)

	_, err := repo.FindByID(context.Background(), "no-such-board")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func TestRepository_Update(t *testing.T) {
	t.Parallel()

	t.Run("persists changes and advances the version", func(t *testing.T) {
		t.Parallel()
		repo := openRepo(t)
		b := newBoard(t, "user-123", "Groceries")
		mustCreate(t, repo, b)

		loaded, err := repo.FindByID(context.Background(), b.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		title, _ := board.NewTitle("Weekend shop")
		loaded.UpdateTitle(title)

		if err := repo.Update(context.Background(), loaded); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if loaded.Version != 1 {
			t.Errorf("Version = %d, want 1 after update", loaded.Version)
		}

		again, err := repo.FindByID(context.Background(), b.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if again.Title.String() != "Weekend shop" {
			t.Errorf("Title = %q, want %q", again.Title, "Weekend shop")
		}
		if again.Version != 1 {
			t.Errorf("stored Version = %d, want 1", again.Version)
		}
	})

	t.Run("replaces columns and cards wholesale", func(t *testing.T) {
		t.Parallel()
		repo := openRepo(t)
		b := newBoard(t, "user-123", "Groceries")
		mustCreate(t, repo, b)

		loaded, err := repo.FindByID(context.Background(), b.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		col, _ := loaded.FirstColumn()
		if err := loaded.RemoveCard(col.Cards[0].ID); err != nil {
			t.Fatalf("RemoveCard() error = %v", err)
		}
		if err := repo.Update(context.Background(), loaded); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		again, err := repo.FindByID(context.Background(), b.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		col, _ = again.FirstColumn()
		if len(col.Cards) != 1 {
			t.Fatalf("len(cards) = %d, want 1 after removal", len(col.Cards))
		}
		if col.Cards[0].Title.String() != "Eggs" {
			t.Errorf("remaining card = %q, want %q", col.Cards[0].Title, "Eggs")
		}
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		t.Parallel()
		repo := openRepo(t)
		b := newBoard(t, "user-123", "Groceries")
		mustCreate(t, repo, b)

		first, _ := repo.FindByID(context.Background(), b.ID)
		second, _ := repo.FindByID(context.Background(), b.ID)

		titleA, _ := board.NewTitle("Writer A")
		first.UpdateTitle(titleA)
		if err := repo.Update(context.Background(), first); err != nil {
			t.Fatalf("first Update() error = %v", err)
		}

		titleB, _ := board.NewTitle("Writer B")
		second.UpdateTitle(titleB)
		err := repo.Update(context.Background(), second)
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("second Update() error = %v, want ErrConflict", err)
		}

		// First writer's changes survive.
		got, _ := repo.FindByID(context.Background(), b.ID)
		if got.Title.String() != "Writer A" {
			t.Errorf("Title = %q, want %q", got.Title, "Writer A")
		}
	})

	t.Run("missing board is not found", func(t *testing.T) {
		t.Parallel()
		repo := openRepo(t)
		b := newBoard(t, "user-123", "Groceries")

		err := repo.Update(context.Background(), b)
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Update() error = %v, want ErrNotFound", err)
		}
	})
}

func TestRepository_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes the aggregate and its children", func(t *testing.T) {
		t.Parallel()
		repo := openRepo(t)
		b := newBoard(t, "user-123", "Groceries")
		mustCreate(t, repo, b)

		if err := repo.Delete(context.Background(), b.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		if _, err := repo.FindByID(context.Background(), b.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("FindByID() after delete error = %v, want ErrNotFound", err)
		}

		// Cascade took the cards with the board.
		var count int
		if err := repo.db.QueryRow(`SELECT COUNT(1) FROM cards`).Scan(&count); err != nil {
			t.Fatalf("counting cards: %v", err)
		}
		if count != 0 {
			t.Errorf("orphaned cards = %d, want 0", count)
		}
	})

	t.Run("missing board is not found", func(t *testing.T) {
		t.Parallel()
		repo := openRepo(t)

		err := repo.Delete(context.Background(), "no-such-board")
		if !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Delete() error = %v, want ErrNotFound", err)
		}
	})
}

func TestRepository_FindByOwner(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, repo *Repository) {
		t.Helper()
		for i := 0; i < 5; i++ {
			b := newBoard(t, "user-123", fmt.Sprintf("Board %d", i))
			// Distinct timestamps so the ordering is deterministic.
			b.CreatedAt = time.Date(2026, 8, 1+i, 0, 0, 0, 0, time.UTC)
			b.UpdatedAt = b.CreatedAt
			mustCreate(t, repo, b)
		}
		other := newBoard(t, "user-456", "Not mine")
		mustCreate(t, repo, other)
	}

	t.Run("returns only the owner's boards newest first", func(t *testing.T) {
		t.Parallel()
		repo := openRepo(t)
		seed(t, repo)

		page, err := repo.FindByOwner(context.Background(), "user-123", ports.PageRequest{}, nil)
		if err != nil {
			t.Fatalf("FindByOwner() error = %v", err)
		}
		if page.Total != 5 {
			t.Errorf("Total = %d, want 5", page.Total)
		}
		if len(page.Items) != 5 {
			t.Fatalf("len(Items) = %d, want 5", len(page.Items))
		}
		if page.Items[0].Title.String() != "Board 4" {
			t.Errorf("Items[0].Title = %q, want %q (newest first)", page.Items[0].Title, "Board 4")
		}
		for _, b := range page.Items {
			if b.OwnerID != "user-123" {
				t.Errorf("OwnerID = %q, want user-123", b.OwnerID)
			}
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		t.Parallel()
		repo := openRepo(t)
		seed(t, repo)

		vt, _ := board.NewTitle("Sprint")
		kanban := board.NewKanbanBoard("user-123", vt, nil, board.Metadata{})
		mustCreate(t, repo, kanban)

		typ := board.TypeKanban
		page, err := repo.FindByOwner(context.Background(), "user-123", ports.PageRequest{}, &typ)
		if err != nil {
			t.Fatalf("FindByOwner() error = %v", err)
		}
		if page.Total != 1 {
			t.Fatalf("Total = %d, want 1", page.Total)
		}
		if page.Items[0].ID != kanban.ID {
			t.Errorf("Items[0].ID = %q, want %q", page.Items[0].ID, kanban.ID)
		}
	})

	t.Run("paginates with metadata", func(t *testing.T) {
		t.Parallel()
		repo := openRepo(t)
		seed(t, repo)

		page, err := repo.FindByOwner(context.Background(), "user-123",
			ports.PageRequest{Page: 2, Limit: 2}, nil)
		if err != nil {
			t.Fatalf("FindByOwner() error = %v", err)
		}
		if len(page.Items) != 2 {
			t.Fatalf("len(Items) = %d, want 2", len(page.Items))
		}
		if page.Total != 5 || page.TotalPages != 3 {
			t.Errorf("Total = %d, TotalPages = %d; want 5, 3", page.Total, page.TotalPages)
		}
		if !page.HasNext || !page.HasPrevious {
			t.Errorf("HasNext = %v, HasPrevious = %v; want true, true", page.HasNext, page.HasPrevious)
		}
		if page.Items[0].Title.String() != "Board 2" {
			t.Errorf("Items[0].Title = %q, want %q", page.Items[0].Title, "Board 2")
		}
	})

	t.Run("boards include their columns and cards", func(t *testing.T) {
		t.Parallel()
		repo := openRepo(t)
		seed(t, repo)

		page, err := repo.FindByOwner(context.Background(), "user-123",
			ports.PageRequest{Page: 1, Limit: 1}, nil)
		if err != nil {
			t.Fatalf("FindByOwner() error = %v", err)
		}
		col, ok := page.Items[0].FirstColumn()
		if !ok {
			t.Fatal("FirstColumn() not found")
		}
		if len(col.Cards) != 2 {
			t.Errorf("len(cards) = %d, want 2", len(col.Cards))
		}
	})
}

func TestRepository_HealthCheck(t *testing.T) {
	t.Parallel()

	repo := openRepo(t)
	if repo.Name() != "sqlite" {
		t.Errorf("Name() = %q, want %q", repo.Name(), "sqlite")
	}
	if err := repo.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v, want nil", err)
	}
}

package dto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lumeo-app/board-service/internal/domain/board"
	"github.com/lumeo-app/board-service/internal/ports"
)

func TestToBoardResponse_OrdersColumnsAndCards(t *testing.T) {
	t.Parallel()

	title, err := board.NewTitle("Release")
	if err != nil {
		t.Fatalf("NewTitle() error = %v", err)
	}
	b := board.NewKanbanBoard("user-123", title, nil, board.Metadata{Description: "tracker"})

	cols := b.ColumnsInOrder()
	for _, name := range []string{"First", "Second", "Third"} {
		ct, _ := board.NewCardTitle(name)
		if err := b.AddCardToColumn(cols[0].ID, board.NewCard(ct, 0)); err != nil {
			t.Fatalf("AddCardToColumn() error = %v", err)
		}
	}
	// Move the last-added card to the front so response ordering differs
	// from insertion ordering.
	last := cols[0].CardsInOrder()[2]
	if err := b.ReorderCard(cols[0].ID, last.ID, 0); err != nil {
		t.Fatalf("ReorderCard() error = %v", err)
	}

	resp := ToBoardResponse(b)

	if resp.Type != "kanban" || resp.Description != "tracker" {
		t.Errorf("Type/Description = %q/%q, want kanban/tracker", resp.Type, resp.Description)
	}
	if len(resp.Columns) != 3 {
		t.Fatalf("len(Columns) = %d, want 3", len(resp.Columns))
	}
	for i, col := range resp.Columns {
		if col.Position != i {
			t.Errorf("Columns[%d].Position = %d, want %d", i, col.Position, i)
		}
	}

	cards := resp.Columns[0].Cards
	if len(cards) != 3 {
		t.Fatalf("len(Cards) = %d, want 3", len(cards))
	}
	if cards[0].Title != "Third" {
		t.Errorf("Cards[0].Title = %q, want %q", cards[0].Title, "Third")
	}
	for i, card := range cards {
		if card.Position != i {
			t.Errorf("Cards[%d].Position = %d, want %d", i, card.Position, i)
		}
	}
}

func TestToBoardResponse_CompletionFlag(t *testing.T) {
	t.Parallel()

	title, _ := board.NewTitle("Groceries")
	milk, _ := board.NewCardTitle("Milk")
	b := board.NewTodoBoard("user-123", title, []board.CardTitle{milk})

	card := b.Columns[0].Cards[0]
	if err := b.UpdateCard(card.ID, board.CardUpdate{Progress: progressPtr(t, 100)}); err != nil {
		t.Fatalf("UpdateCard() error = %v", err)
	}

	resp := ToBoardResponse(b)
	got := resp.Columns[0].Cards[0]
	if !got.IsCompleted || got.Progress != 100 {
		t.Errorf("card = completed=%v progress=%d, want true/100", got.IsCompleted, got.Progress)
	}
}

func TestToBoardListResponse(t *testing.T) {
	t.Parallel()

	title, _ := board.NewTitle("Groceries")
	b := board.NewTodoBoard("user-123", title, nil)

	page := ports.NewPage([]*board.Board{b}, ports.PageRequest{Page: 2, Limit: 1}, 3)
	resp := ToBoardListResponse(page)

	if len(resp.Boards) != 1 {
		t.Fatalf("len(Boards) = %d, want 1", len(resp.Boards))
	}
	if resp.Page != 2 || resp.Limit != 1 || resp.Total != 3 || resp.TotalPages != 3 {
		t.Errorf("pagination = %d/%d/%d/%d, want 2/1/3/3",
			resp.Page, resp.Limit, resp.Total, resp.TotalPages)
	}
	if !resp.HasNextPage || !resp.HasPreviousPage {
		t.Errorf("HasNextPage/HasPreviousPage = %v/%v, want true/true",
			resp.HasNextPage, resp.HasPreviousPage)
	}
}

func TestBoardResponse_WireFieldNames(t *testing.T) {
	t.Parallel()

	title, _ := board.NewTitle("Groceries")
	milk, _ := board.NewCardTitle("Milk")
	b := board.NewTodoBoard("user-123", title, []board.CardTitle{milk})

	raw, err := json.Marshal(ToBoardResponse(b))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	body := string(raw)

	for _, key := range []string{
		`"createdAt"`, `"updatedAt"`, `"isCompleted"`, `"dueDate"`, `"description"`,
	} {
		if !strings.Contains(body, key) {
			t.Errorf("body missing %s: %s", key, body)
		}
	}
	for _, key := range []string{
		`"created_at"`, `"updated_at"`, `"is_completed"`, `"due_date"`,
	} {
		if strings.Contains(body, key) {
			t.Errorf("body contains %s, want camelCase only: %s", key, body)
		}
	}

	// Card fields named by the API contract appear even when unset.
	var decoded struct {
		Columns []struct {
			Cards []map[string]any `json:"cards"`
		} `json:"columns"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	card := decoded.Columns[0].Cards[0]
	if _, ok := card["description"]; !ok {
		t.Error(`card is missing "description" for an empty description`)
	}
	if due, ok := card["dueDate"]; !ok || due != nil {
		t.Errorf(`card "dueDate" = %v, %v; want null, present`, due, ok)
	}
}

func TestBoardListResponse_WireFieldNames(t *testing.T) {
	t.Parallel()

	title, _ := board.NewTitle("Groceries")
	b := board.NewTodoBoard("user-123", title, nil)

	raw, err := json.Marshal(ToBoardListResponse(
		ports.NewPage([]*board.Board{b}, ports.PageRequest{Page: 2, Limit: 1}, 3)))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	body := string(raw)

	for _, key := range []string{
		`"totalPages"`, `"hasNextPage"`, `"hasPreviousPage"`,
	} {
		if !strings.Contains(body, key) {
			t.Errorf("body missing %s: %s", key, body)
		}
	}
	if strings.Contains(body, "_") {
		t.Errorf("body contains snake_case keys: %s", body)
	}
}

func progressPtr(t *testing.T, v int) *board.Progress {
	t.Helper()
	p, err := board.NewProgress(v)
	if err != nil {
		t.Fatalf("NewProgress(%d) error = %v", v, err)
	}
	return &p
}

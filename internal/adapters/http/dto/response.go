// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/lumeo-app/board-service/internal/domain/board"
	"github.com/lumeo-app/board-service/internal/ports"
)

// BoardResponse represents a single board in HTTP responses. Columns are
// ordered by ascending position.
type BoardResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Type        string           `json:"type"`
	Columns     []ColumnResponse `json:"columns"`
	Description string           `json:"description,omitempty"`
	Priority    string           `json:"priority,omitempty"`
	DueDate     *string          `json:"dueDate,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Link        string           `json:"link,omitempty"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}

// ColumnResponse represents a column in HTTP responses. Cards are ordered by
// ascending position.
type ColumnResponse struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Position int            `json:"position"`
	Cards    []CardResponse `json:"cards"`
}

// CardResponse represents a card in HTTP responses.
type CardResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content,omitempty"`
	Position    int      `json:"position"`
	Progress    int      `json:"progress"`
	IsCompleted bool     `json:"isCompleted"`
	DueDate     *string  `json:"dueDate"`
	Priority    string   `json:"priority,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Link        string   `json:"link,omitempty"`
}

// BoardListResponse represents one page of boards plus pagination metadata.
type BoardListResponse struct {
	Boards          []BoardResponse `json:"boards"`
	Page            int             `json:"page"`
	Limit           int             `json:"limit"`
	Total           int             `json:"total"`
	TotalPages      int             `json:"totalPages"`
	HasNextPage     bool            `json:"hasNextPage"`
	HasPreviousPage bool            `json:"hasPreviousPage"`
}

// DeleteBoardResponse represents the result of a board deletion.
type DeleteBoardResponse struct {
	ID string `json:"id"`
}

// ToBoardResponse converts a Board aggregate to an HTTP response DTO.
func ToBoardResponse(b *board.Board) BoardResponse {
	cols := b.ColumnsInOrder()
	resp := BoardResponse{
		ID:          b.ID,
		Title:       b.Title.String(),
		Type:        b.Type.String(),
		Columns:     make([]ColumnResponse, len(cols)),
		Description: b.Meta.Description,
		Priority:    b.Meta.Priority.String(),
		DueDate:     formatTime(b.Meta.DueDate),
		Tags:        b.Meta.Tags,
		Link:        b.Meta.Link,
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.Format(time.RFC3339),
	}
	for i, col := range cols {
		resp.Columns[i] = toColumnResponse(col)
	}
	return resp
}

// ToBoardListResponse converts a page of boards to an HTTP list response DTO.
func ToBoardListResponse(page ports.Page[*board.Board]) BoardListResponse {
	items := make([]BoardResponse, len(page.Items))
	for i, b := range page.Items {
		items[i] = ToBoardResponse(b)
	}
	return BoardListResponse{
		Boards:          items,
		Page:            page.Page,
		Limit:           page.Limit,
		Total:           page.Total,
		TotalPages:      page.TotalPages,
		HasNextPage:     page.HasNext,
		HasPreviousPage: page.HasPrevious,
	}
}

func toColumnResponse(col *board.Column) ColumnResponse {
	cards := col.CardsInOrder()
	resp := ColumnResponse{
		ID:       col.ID,
		Title:    col.Title,
		Position: col.Position,
		Cards:    make([]CardResponse, len(cards)),
	}
	for i, card := range cards {
		resp.Cards[i] = toCardResponse(card)
	}
	return resp
}

func toCardResponse(card *board.Card) CardResponse {
	return CardResponse{
		ID:          card.ID,
		Title:       card.Title.String(),
		Description: card.Description,
		Content:     card.Content,
		Position:    card.Position,
		Progress:    card.Progress.Int(),
		IsCompleted: card.Completed,
		DueDate:     formatTime(card.DueDate),
		Priority:    card.Priority.String(),
		Tags:        card.Tags,
		Link:        card.Link,
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lumeo-app/board-service/internal/domain"
	"github.com/lumeo-app/board-service/internal/domain/board"
	"github.com/lumeo-app/board-service/internal/ports"
)

const (
	msgRequired     = "is required"
	msgMustNotEmpty = "must not be empty"
)

// CreateBoardRequest represents the JSON body for creating a board.
// Items become cards in the board's first column.
type CreateBoardRequest struct {
	Title string   `json:"title"`
	Type  string   `json:"type"`
	Items []string `json:"items,omitempty"`
}

// Validate checks that required fields are present and within limits.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateBoardRequest) Validate() error {
	fields := make(map[string]string)

	checkTitle(fields, "title", r.Title, board.MaxTitleLen)
	if strings.TrimSpace(r.Type) == "" {
		fields["type"] = msgRequired
	} else if !board.BoardType(r.Type).IsValid() {
		fields["type"] = fmt.Sprintf("invalid: %q", r.Type)
	}
	for i, item := range r.Items {
		checkTitle(fields, fmt.Sprintf("items[%d]", i), item, board.MaxCardTitleLen)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateKanbanBoardRequest represents the JSON body for creating a kanban
// board with explicit columns and metadata. Empty columns means the default
// three-column layout.
type CreateKanbanBoardRequest struct {
	Title       string     `json:"title"`
	Columns     []string   `json:"columns,omitempty"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Link        string     `json:"link,omitempty"`
}

// Validate checks that required fields are present and optional fields have
// valid values. Returns a *domain.ValidationError if any checks fail.
func (r *CreateKanbanBoardRequest) Validate() error {
	fields := make(map[string]string)

	checkTitle(fields, "title", r.Title, board.MaxTitleLen)
	if !board.Priority(r.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", r.Priority)
	}
	for i, col := range r.Columns {
		if strings.TrimSpace(col) == "" {
			fields[fmt.Sprintf("columns[%d]", i)] = msgMustNotEmpty
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// AddColumnRequest represents the JSON body for adding a column to a board.
type AddColumnRequest struct {
	Title string `json:"title"`
}

// Validate checks that the column title is present.
func (r *AddColumnRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return &domain.ValidationError{Fields: map[string]string{"title": msgRequired}}
	}
	return nil
}

// AddCardRequest represents the JSON body for adding a card to a column.
type AddCardRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Progress    int        `json:"progress,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks that required fields are present and within limits.
func (r *AddCardRequest) Validate() error {
	fields := make(map[string]string)

	checkTitle(fields, "title", r.Title, board.MaxCardTitleLen)
	if r.Progress < board.MinProgress || r.Progress > board.MaxProgress {
		fields["progress"] = fmt.Sprintf("must be %d-%d, got %d", board.MinProgress, board.MaxProgress, r.Progress)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateCardRequest represents the JSON body for updating a card.
// All fields are optional; nil means "do not change this field".
type UpdateCardRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Content     *string    `json:"content,omitempty"`
	Progress    *int       `json:"progress,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Link        *string    `json:"link,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks that any provided fields have valid values.
func (r *UpdateCardRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title != nil {
		checkTitle(fields, "title", *r.Title, board.MaxCardTitleLen)
	}
	if r.Progress != nil && (*r.Progress < board.MinProgress || *r.Progress > board.MaxProgress) {
		fields["progress"] = fmt.Sprintf("must be %d-%d, got %d", board.MinProgress, board.MaxProgress, *r.Progress)
	}
	if r.Priority != nil && !board.Priority(*r.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", *r.Priority)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// MoveCardRequest represents the JSON body for moving a card to a column
// position. Moving within the card's current column reorders it in place.
type MoveCardRequest struct {
	ToColumnID  string `json:"to_column_id"`
	NewPosition int    `json:"new_position"`
}

// Validate checks that the target column is present and the position is not
// negative.
func (r *MoveCardRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.ToColumnID) == "" {
		fields["to_column_id"] = msgRequired
	}
	if r.NewPosition < 0 {
		fields["new_position"] = fmt.Sprintf("must not be negative, got %d", r.NewPosition)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// NewCardItem is one card addition inside an UpdateBoardRequest batch.
type NewCardItem struct {
	Title string `json:"title"`
}

// UpdateBoardRequest represents the JSON body for the batched board update:
// optional title change, card toggles, card removals, and new cards.
// All parts are optional; an empty body is a no-op update.
type UpdateBoardRequest struct {
	Title         *string       `json:"title,omitempty"`
	ToggleCardIDs []string      `json:"toggle_card_ids,omitempty"`
	RemoveCardIDs []string      `json:"remove_card_ids,omitempty"`
	AddCards      []NewCardItem `json:"add_cards,omitempty"`
}

// Validate checks that any provided fields have valid values.
func (r *UpdateBoardRequest) Validate() error {
	fields := make(map[string]string)

	if r.Title != nil {
		if strings.TrimSpace(*r.Title) == "" {
			fields["title"] = msgMustNotEmpty
		} else if n := utf8.RuneCountInString(*r.Title); n > board.MaxTitleLen {
			fields["title"] = fmt.Sprintf("must be at most %d characters, got %d", board.MaxTitleLen, n)
		}
	}
	for i, add := range r.AddCards {
		checkTitle(fields, fmt.Sprintf("add_cards[%d].title", i), add.Title, board.MaxCardTitleLen)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ToListBoardsInput converts list query parameters into the service input.
// Unparseable numbers are left at zero; the service applies defaults.
func ToListBoardsInput(userID, page, limit, typ string) ports.ListBoardsInput {
	return ports.ListBoardsInput{
		UserID: userID,
		Page:   atoiOrZero(page),
		Limit:  atoiOrZero(limit),
		Type:   typ,
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// checkTitle records a field error when the title is blank or over the rune
// limit.
func checkTitle(fields map[string]string, field, value string, maxLen int) {
	if strings.TrimSpace(value) == "" {
		fields[field] = msgRequired
		return
	}
	if n := utf8.RuneCountInString(value); n > maxLen {
		fields[field] = fmt.Sprintf("must be at most %d characters, got %d", maxLen, n)
	}
}

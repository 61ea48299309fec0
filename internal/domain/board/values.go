package board

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lumeo-app/board-service/internal/domain"
)

// Value-object length and range limits.
const (
	MaxTitleLen     = 100
	MaxCardTitleLen = 200
	MinProgress     = 0
	MaxProgress     = 100
)

// Title is a validated board title (1-100 characters).
// Obtain instances through NewTitle; an invalid Title cannot exist.
type Title string

// NewTitle validates s as a board title. Returns a *domain.ValidationError
// (wrapping domain.ErrValidation) when s is blank or longer than 100
// characters.
func NewTitle(s string) (Title, error) {
	if strings.TrimSpace(s) == "" {
		return "", fieldError("title", domain.MsgRequired)
	}
	if n := utf8.RuneCountInString(s); n > MaxTitleLen {
		return "", fieldError("title", fmt.Sprintf("must be at most %d characters, got %d", MaxTitleLen, n))
	}
	return Title(s), nil
}

// String implements fmt.Stringer.
func (t Title) String() string {
	return string(t)
}

// CardTitle is a validated card title (1-200 characters).
type CardTitle string

// NewCardTitle validates s as a card title. Returns a
// *domain.ValidationError when s is blank or longer than 200 characters.
func NewCardTitle(s string) (CardTitle, error) {
	if strings.TrimSpace(s) == "" {
		return "", fieldError("title", domain.MsgRequired)
	}
	if n := utf8.RuneCountInString(s); n > MaxCardTitleLen {
		return "", fieldError("title", fmt.Sprintf("must be at most %d characters, got %d", MaxCardTitleLen, n))
	}
	return CardTitle(s), nil
}

// String implements fmt.Stringer.
func (t CardTitle) String() string {
	return string(t)
}

// Progress is a validated completion percentage in [0,100].
type Progress int

// NewProgress validates v as a progress value. Returns a
// *domain.ValidationError when v is outside [0,100].
func NewProgress(v int) (Progress, error) {
	if v < MinProgress || v > MaxProgress {
		return 0, fieldError("progress", fmt.Sprintf("must be %d-%d, got %d", MinProgress, MaxProgress, v))
	}
	return Progress(v), nil
}

// Complete reports whether the progress value means a finished card.
func (p Progress) Complete() bool {
	return p == MaxProgress
}

// Int returns the progress as a plain int.
func (p Progress) Int() int {
	return int(p)
}

// BoardType distinguishes simple todo boards from multi-column kanban boards.
// The type is fixed at creation and never changes.
type BoardType string

const (
	TypeTodo   BoardType = "todo"
	TypeKanban BoardType = "kanban"
)

// ParseBoardType validates s as a board type. Returns a
// *domain.ValidationError for unknown values.
func ParseBoardType(s string) (BoardType, error) {
	t := BoardType(s)
	if !t.IsValid() {
		return "", fieldError("type", fmt.Sprintf("must be one of: %s, %s; got %q", TypeTodo, TypeKanban, s))
	}
	return t, nil
}

// IsValid returns true if the type is one of the defined constants.
func (t BoardType) IsValid() bool {
	switch t {
	case TypeTodo, TypeKanban:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (t BoardType) String() string {
	return string(t)
}

// Priority is an optional importance marker on boards and cards.
// The zero value means "no priority set".
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority validates s as a priority. The empty string is valid and
// yields PriorityNone.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fieldError("priority", fmt.Sprintf("must be one of: %s, %s, %s; got %q",
			PriorityLow, PriorityMedium, PriorityHigh, s))
	}
	return p, nil
}

// IsValid returns true if the priority is empty or one of the defined
// constants.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityNone, PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	return string(p)
}

// fieldError builds a single-field *domain.ValidationError.
func fieldError(field, msg string) error {
	return &domain.ValidationError{Fields: map[string]string{field: msg}}
}

package board

import (
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lumeo-app/board-service/internal/domain"
)

// DefaultTodoColumnTitle is the single column a todo board is created with.
const DefaultTodoColumnTitle = "Items"

// defaultKanbanColumns is the three-column layout used when a kanban board
// is created without explicit columns.
var defaultKanbanColumns = []string{"To Do", "In Progress", "Done"}

// Metadata holds the optional descriptive attributes of a board.
type Metadata struct {
	Description string
	Priority    Priority
	DueDate     *time.Time
	Tags        []string
	Link        string
}

// Board is the aggregate root and the transactional boundary for all column
// and card mutations. Exactly one user owns a board; the type never changes
// after creation; column ids are unique within the board and a card belongs
// to exactly one column at any time.
//
// Version is the optimistic-concurrency token checked by the repository on
// Update; the aggregate itself never touches it.
type Board struct {
	ID        string
	OwnerID   string
	Title     Title
	Type      BoardType
	Columns   []*Column
	Meta      Metadata
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	events []Event
}

// NewTodoBoard creates a todo board with a single "Items" column containing
// one incomplete card per item, positioned in input order. A BoardCreated
// event is recorded.
func NewTodoBoard(ownerID string, title Title, items []CardTitle) *Board {
	b := newBoard(ownerID, title, TypeTodo)
	col := NewColumn(DefaultTodoColumnTitle, 0)
	for _, item := range items {
		card := NewCard(item, 0)
		card.Position = col.NextCardPosition()
		col.AddCard(card)
	}
	b.Columns = []*Column{col}
	b.record(BoardCreated{BoardID: b.ID, OwnerID: ownerID, Type: b.Type, At: b.CreatedAt})
	return b
}

// NewKanbanBoard creates a kanban board with the given column titles, or the
// default "To Do" / "In Progress" / "Done" layout when none are supplied.
// A BoardCreated event is recorded.
func NewKanbanBoard(ownerID string, title Title, columnTitles []string, meta Metadata) *Board {
	if len(columnTitles) == 0 {
		columnTitles = defaultKanbanColumns
	}
	b := newBoard(ownerID, title, TypeKanban)
	b.Meta = meta
	b.Meta.Tags = slices.Clone(meta.Tags)
	b.Columns = make([]*Column, len(columnTitles))
	for i, ct := range columnTitles {
		b.Columns[i] = NewColumn(ct, i)
	}
	b.record(BoardCreated{BoardID: b.ID, OwnerID: ownerID, Type: b.Type, At: b.CreatedAt})
	return b
}

func newBoard(ownerID string, title Title, typ BoardType) *Board {
	now := time.Now().UTC()
	return &Board{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Title:     title,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddColumn appends a new column at position = current column count.
// Fails with a business-rule violation for non-kanban boards: todo boards
// are single-column by construction.
func (b *Board) AddColumn(title string) (*Column, error) {
	if b.Type != TypeKanban {
		return nil, domain.BusinessRule("only kanban boards accept additional columns")
	}
	col := NewColumn(title, len(b.Columns))
	b.Columns = append(b.Columns, col)
	b.touch()
	return col, nil
}

// AddCardToColumn assigns the card the next position in the target column
// (max existing position + 1) and appends it. Fails when the column is not
// part of this board.
func (b *Board) AddCardToColumn(columnID string, card *Card) error {
	col, ok := b.findColumn(columnID)
	if !ok {
		return domain.NotFound("column")
	}
	card.Position = col.NextCardPosition()
	col.AddCard(card)
	b.touch()
	return nil
}

// FindCard searches all columns for the card with the given id, returning
// the card and its owning column. No mutation occurs.
func (b *Board) FindCard(cardID string) (*Card, *Column, bool) {
	for _, col := range b.Columns {
		if card, ok := col.FindCard(cardID); ok {
			return card, col, true
		}
	}
	return nil, nil, false
}

// MoveCard removes the card from its current column and inserts it into the
// target column at the given position index. Same-column repositioning must
// go through ReorderCard; callers detect that case before calling here.
func (b *Board) MoveCard(cardID, toColumnID string, newPosition int) error {
	target, ok := b.findColumn(toColumnID)
	if !ok {
		return domain.NotFound("column")
	}
	card, source, ok := b.FindCard(cardID)
	if !ok {
		return domain.NotFound("card")
	}
	source.RemoveCard(cardID)
	target.insertAt(card, newPosition)
	b.touch()
	return nil
}

// ReorderCard repositions a card within a single column.
func (b *Board) ReorderCard(columnID, cardID string, newPosition int) error {
	col, ok := b.findColumn(columnID)
	if !ok {
		return domain.NotFound("column")
	}
	card, ok := col.FindCard(cardID)
	if !ok {
		return domain.NotFound("card")
	}
	col.RemoveCard(cardID)
	col.insertAt(card, newPosition)
	b.touch()
	return nil
}

// UpdateCard applies the field updates atomically. When the update takes the
// card's progress to 100 from a non-100 value, a CardCompleted event is
// recorded; repeated 100-progress updates record nothing.
func (b *Board) UpdateCard(cardID string, u CardUpdate) error {
	card, _, ok := b.FindCard(cardID)
	if !ok {
		return domain.NotFound("card")
	}
	if card.apply(u) {
		b.record(CardCompleted{BoardID: b.ID, CardID: card.ID, OwnerID: b.OwnerID, At: time.Now().UTC()})
	}
	b.touch()
	return nil
}

// ToggleCard flips the card's completion flag. Intentionally does not record
// CardCompleted; only progress-driven completion via UpdateCard does.
func (b *Board) ToggleCard(cardID string) error {
	card, _, ok := b.FindCard(cardID)
	if !ok {
		return domain.NotFound("card")
	}
	card.toggle()
	b.touch()
	return nil
}

// RemoveCard deletes the card from whichever column holds it. Positions of
// the remaining cards are left as-is, so gaps appear and stay.
func (b *Board) RemoveCard(cardID string) error {
	_, col, ok := b.FindCard(cardID)
	if !ok {
		return domain.NotFound("card")
	}
	col.RemoveCard(cardID)
	b.touch()
	return nil
}

// UpdateTitle replaces the board title with an already-validated one.
func (b *Board) UpdateTitle(title Title) {
	b.Title = title
	b.touch()
}

// ColumnsInOrder returns the board's columns sorted by ascending position.
func (b *Board) ColumnsInOrder() []*Column {
	ordered := make([]*Column, len(b.Columns))
	copy(ordered, b.Columns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	return ordered
}

// FirstColumn returns the column at the lowest position, or false for a
// board with no columns. Todo-board item additions target this column.
func (b *Board) FirstColumn() (*Column, bool) {
	ordered := b.ColumnsInOrder()
	if len(ordered) == 0 {
		return nil, false
	}
	return ordered[0], true
}

// Events returns the buffered domain events in recording order.
func (b *Board) Events() []Event {
	return b.events
}

// ClearEvents empties the event buffer. The application layer calls this
// after dispatching, completing the read-once drain contract.
func (b *Board) ClearEvents() {
	b.events = nil
}

// Clone returns a deep copy of the aggregate, including the event buffer.
// Repositories hand out clones so concurrent use cases never share state.
func (b *Board) Clone() *Board {
	dup := *b
	dup.Meta.Tags = slices.Clone(b.Meta.Tags)
	if b.Meta.DueDate != nil {
		due := *b.Meta.DueDate
		dup.Meta.DueDate = &due
	}
	dup.Columns = make([]*Column, len(b.Columns))
	for i, col := range b.Columns {
		dup.Columns[i] = col.Clone()
	}
	dup.events = slices.Clone(b.events)
	return &dup
}

func (b *Board) findColumn(id string) (*Column, bool) {
	for _, col := range b.Columns {
		if col.ID == id {
			return col, true
		}
	}
	return nil, false
}

func (b *Board) record(e Event) {
	b.events = append(b.events, e)
}

func (b *Board) touch() {
	b.UpdatedAt = time.Now().UTC()
}

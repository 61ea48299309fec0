package board

import (
	"sort"

	"github.com/google/uuid"
)

// Column is an ordered container of cards within a board. Its identity is
// scoped to the owning board; Position defines left-to-right display order
// and is assigned as the column count at creation time (append-only).
type Column struct {
	ID       string
	Title    string
	Position int
	Cards    []*Card
}

// NewColumn creates a column with a fresh identity at the given position.
func NewColumn(title string, position int) *Column {
	return &Column{
		ID:       uuid.NewString(),
		Title:    title,
		Position: position,
	}
}

// AddCard appends an already-positioned card to the column.
func (c *Column) AddCard(card *Card) {
	c.Cards = append(c.Cards, card)
}

// FindCard returns the card with the given id, or false if absent.
func (c *Column) FindCard(id string) (*Card, bool) {
	for _, card := range c.Cards {
		if card.ID == id {
			return card, true
		}
	}
	return nil, false
}

// RemoveCard deletes the card with the given id, reporting whether it was
// present. Remaining cards keep their positions; gaps are expected.
func (c *Column) RemoveCard(id string) bool {
	for i, card := range c.Cards {
		if card.ID == id {
			c.Cards = append(c.Cards[:i], c.Cards[i+1:]...)
			return true
		}
	}
	return false
}

// NextCardPosition returns max(existing positions)+1, or 0 for an empty
// column. Positions only ever grow, so removals never cause reuse.
func (c *Column) NextCardPosition() int {
	next := 0
	for _, card := range c.Cards {
		if card.Position >= next {
			next = card.Position + 1
		}
	}
	return next
}

// CardsInOrder returns the column's cards sorted by ascending position.
func (c *Column) CardsInOrder() []*Card {
	ordered := make([]*Card, len(c.Cards))
	copy(ordered, c.Cards)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})
	return ordered
}

// insertAt splices the card into the position-ordered card list at the given
// index (clamped to the list bounds) and re-indexes the column's cards
// 0..n-1. Used for explicit-position moves and reorders; plain insertion
// goes through NextCardPosition instead.
func (c *Column) insertAt(card *Card, index int) {
	ordered := c.CardsInOrder()
	if index < 0 {
		index = 0
	}
	if index > len(ordered) {
		index = len(ordered)
	}

	ordered = append(ordered, nil)
	copy(ordered[index+1:], ordered[index:])
	ordered[index] = card

	for i, cd := range ordered {
		cd.Position = i
	}
	c.Cards = ordered
}

// Clone returns a deep copy of the column and its cards.
func (c *Column) Clone() *Column {
	dup := &Column{
		ID:       c.ID,
		Title:    c.Title,
		Position: c.Position,
		Cards:    make([]*Card, len(c.Cards)),
	}
	for i, card := range c.Cards {
		dup.Cards[i] = card.Clone()
	}
	return dup
}

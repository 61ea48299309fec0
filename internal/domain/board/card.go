package board

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Card is a single task item inside a column. Fields that require validation
// (title, progress) are value objects; a Card can only carry valid values.
//
// Position is an integer ordering key within the owning column. It is
// assigned by the Board on insertion and is monotonically increasing but not
// necessarily contiguous: removals leave gaps.
type Card struct {
	ID          string
	Title       CardTitle
	Description string
	Content     string
	Position    int
	Progress    Progress
	Completed   bool
	DueDate     *time.Time
	Priority    Priority
	Tags        []string
	Link        string
}

// NewCard creates a card with a fresh identity and the given validated
// title and progress. The completion flag is derived from the initial
// progress. Position is assigned when the card is added to a column.
func NewCard(title CardTitle, progress Progress) *Card {
	return &Card{
		ID:        uuid.NewString(),
		Title:     title,
		Progress:  progress,
		Completed: progress.Complete(),
	}
}

// CardUpdate describes a field-level update to a card. Nil pointer fields
// mean "leave unchanged"; a nil Tags slice likewise leaves tags untouched.
type CardUpdate struct {
	Title       *CardTitle
	Description *string
	Content     *string
	Progress    *Progress
	Priority    *Priority
	Tags        []string
	Link        *string
	DueDate     *time.Time
}

// apply mutates the card in place and reports whether the update completed
// the card: true only when the new progress is 100 and the previous progress
// was not. Repeated updates to 100 report false, so completions are never
// double-counted.
func (c *Card) apply(u CardUpdate) bool {
	if u.Title != nil {
		c.Title = *u.Title
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.Content != nil {
		c.Content = *u.Content
	}
	if u.Priority != nil {
		c.Priority = *u.Priority
	}
	if u.Tags != nil {
		c.Tags = slices.Clone(u.Tags)
	}
	if u.Link != nil {
		c.Link = *u.Link
	}
	if u.DueDate != nil {
		due := *u.DueDate
		c.DueDate = &due
	}
	if u.Progress == nil {
		return false
	}

	wasComplete := c.Progress.Complete()
	c.Progress = *u.Progress
	if c.Progress.Complete() {
		c.Completed = true
		return !wasComplete
	}
	return false
}

// toggle flips the explicit completion flag. Progress is left untouched and
// no event is recorded; only UpdateCard emits CardCompleted.
func (c *Card) toggle() {
	c.Completed = !c.Completed
}

// Clone returns a deep copy of the card.
func (c *Card) Clone() *Card {
	dup := *c
	dup.Tags = slices.Clone(c.Tags)
	if c.DueDate != nil {
		due := *c.DueDate
		dup.DueDate = &due
	}
	return &dup
}

package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/quizcard/internal/catalog"
)

// ErrUnknownQuestion is returned when a question number is not in the catalog.
var ErrUnknownQuestion = errors.New("unknown question")

// Persister makes a ledger durable. Persist is best-effort: implementations
// swallow their own failures.
type Persister interface {
	Persist(ctx context.Context, l Ledger)
}

// EventKind labels an Event.
type EventKind string

const (
	EventToggle   EventKind = "toggle"
	EventNavigate EventKind = "navigate"
)

// Event describes one applied transition, for observers such as the
// answer event log.
type Event struct {
	Kind      EventKind
	No        int      // question the event concerns
	Index     int      // catalog position after the event
	Option    string   // toggled key, empty for navigation
	Selection []string // selection after the event
	Complete  bool
	Status    Status
}

// CardEntry is one cell of the answer card grid.
type CardEntry struct {
	Index    int
	No       int
	Status   Status
	Current  bool
	Revealed bool
}

type nopPersister struct{}

func (nopPersister) Persist(context.Context, Ledger) {}

// Controller owns the quiz state for one catalog: the ledger and the
// current position. It is not safe for concurrent use.
type Controller struct {
	catalog   *catalog.Catalog
	ledger    Ledger
	index     int
	direction Direction
	persister Persister
	observer  func(Event)
}

// NewController starts a quiz over cat from a restored ledger.
// A restored position outside the catalog falls back to the first question,
// and restored selections longer than their question's Choose keep only the
// most recent picks. A nil persister disables persistence.
func NewController(cat *catalog.Catalog, restored Ledger, p Persister) *Controller {
	l := restored.Clone()
	for no, sel := range l.Answered {
		if q, ok := cat.Lookup(no); ok {
			l.Answered[no] = window(sel, q.Choose)
		}
	}
	if l.LastIndex < 0 || l.LastIndex >= cat.Len() {
		l.LastIndex = 0
	}
	if p == nil {
		p = nopPersister{}
	}
	return &Controller{
		catalog:   cat,
		ledger:    l,
		index:     l.LastIndex,
		direction: DirectionNext,
		persister: p,
	}
}

// SetObserver registers fn to receive every applied transition.
func (c *Controller) SetObserver(fn func(Event)) {
	c.observer = fn
}

// Catalog returns the catalog the controller runs over.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

// Current returns the question at the current position.
func (c *Controller) Current() (catalog.Question, bool) {
	return c.catalog.At(c.index)
}

// Index returns the current position.
func (c *Controller) Index() int {
	return c.index
}

// Direction returns the direction of the last move.
func (c *Controller) Direction() Direction {
	return c.direction
}

// Ledger returns a copy of the ledger.
func (c *Controller) Ledger() Ledger {
	return c.ledger.Clone()
}

// Selection returns the selection for question no.
func (c *Controller) Selection(no int) []string {
	return c.ledger.Selection(no)
}

// Revealed reports whether the current question's answer is revealed.
func (c *Controller) Revealed() bool {
	q, ok := c.Current()
	if !ok {
		return false
	}
	return IsComplete(c.ledger, q)
}

// IsRevealed reports whether question no's answer is revealed.
func (c *Controller) IsRevealed(no int) bool {
	q, ok := c.catalog.Lookup(no)
	if !ok {
		return false
	}
	return IsComplete(c.ledger, q)
}

// Status classifies question no's current selection.
func (c *Controller) Status(no int) Status {
	q, ok := c.catalog.Lookup(no)
	if !ok {
		return StatusUnanswered
	}
	return Classify(c.ledger.Answered[no], q.Best)
}

// Toggle flips key on the current question. It reports false when the
// catalog is empty.
func (c *Controller) Toggle(ctx context.Context, key string) bool {
	q, ok := c.Current()
	if !ok {
		return false
	}
	c.toggle(ctx, q, key)
	return true
}

// ToggleQuestion flips key on question no without moving the current position.
func (c *Controller) ToggleQuestion(ctx context.Context, no int, key string) error {
	q, ok := c.catalog.Lookup(no)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownQuestion, no)
	}
	c.toggle(ctx, q, key)
	return nil
}

func (c *Controller) toggle(ctx context.Context, q catalog.Question, key string) {
	next := Toggle(c.ledger, q.No, key, q.Choose)
	next.LastIndex = c.index
	c.ledger = next
	c.persister.Persist(ctx, c.ledger)

	c.emit(Event{
		Kind:      EventToggle,
		No:        q.No,
		Index:     c.index,
		Option:    key,
		Selection: next.Selection(q.No),
		Complete:  IsComplete(next, q),
		Status:    Classify(next.Answered[q.No], q.Best),
	})
}

// Next moves forward one question. It reports whether the position changed.
func (c *Controller) Next(ctx context.Context) bool {
	index, dir := Advance(c.index, c.catalog.Len(), c.direction)
	return c.move(ctx, index, dir)
}

// Prev moves back one question. It reports whether the position changed.
func (c *Controller) Prev(ctx context.Context) bool {
	index, dir := Retreat(c.index, c.catalog.Len(), c.direction)
	return c.move(ctx, index, dir)
}

// Jump moves to index. Out-of-range indexes are ignored. Jumping to the
// current question only updates the direction; it reports false and is
// neither persisted nor observed.
func (c *Controller) Jump(ctx context.Context, index int) bool {
	next, dir := JumpTo(c.index, index, c.catalog.Len(), c.direction)
	return c.move(ctx, next, dir)
}

func (c *Controller) move(ctx context.Context, index int, dir Direction) bool {
	if index == c.index {
		c.direction = dir
		return false
	}
	c.index, c.direction = index, dir
	c.ledger = c.ledger.Clone()
	c.ledger.LastIndex = index
	c.persister.Persist(ctx, c.ledger)

	q, _ := c.Current()
	c.emit(Event{
		Kind:      EventNavigate,
		No:        q.No,
		Index:     index,
		Selection: c.ledger.Selection(q.No),
		Complete:  IsComplete(c.ledger, q),
		Status:    Classify(c.ledger.Answered[q.No], q.Best),
	})
	return true
}

// Card returns the answer card grid in catalog order.
func (c *Controller) Card() []CardEntry {
	entries := make([]CardEntry, 0, c.catalog.Len())
	for i, q := range c.catalog.Questions() {
		entries = append(entries, CardEntry{
			Index:    i,
			No:       q.No,
			Status:   Classify(c.ledger.Answered[q.No], q.Best),
			Current:  i == c.index,
			Revealed: IsComplete(c.ledger, q),
		})
	}
	return entries
}

// Summary counts statuses over the whole catalog.
func (c *Controller) Summary() Summary {
	return Summarize(c.catalog, c.ledger)
}

func (c *Controller) emit(e Event) {
	if c.observer != nil {
		c.observer(e)
	}
}

// Package todo holds the in-memory todo list widget: an ordered collection
// of records, the add field's buffer and at most one record in edit mode.
//
// A List is driven by a single event loop (the Bubble Tea program or the
// shell's read loop) and is not safe for concurrent use. Invalid input is
// never an error: whitespace-only text and unknown ids are silently
// ignored, and every mutating method reports whether anything changed.
package todo

import (
	"slices"
	"strings"

	"github.com/Makepad-fr/tada/internal/ids"
	"github.com/Makepad-fr/tada/internal/model"
)

// List is the todo list widget.
type List struct {
	ids   ids.Generator
	items []model.Item
	input string
	edit  EditState

	subs   []subscriber
	nextID int
}

type subscriber struct {
	id int
	fn func(State)
}

// New returns an empty list in the Viewing state that takes record ids
// from gen.
func New(gen ids.Generator) *List {
	return &List{ids: gen, edit: Viewing{}}
}

// SetInput replaces the add field's buffer.
func (l *List) SetInput(text string) { l.input = text }

// Input returns the add field's buffer.
func (l *List) Input() string { return l.input }

// Submit adds the add field's buffer as a new record.
func (l *List) Submit() bool { return l.Add(l.input) }

// Add appends a record with the trimmed text and clears the add field.
// Whitespace-only text leaves the list and the add field untouched.
func (l *List) Add(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	next := make([]model.Item, len(l.items), len(l.items)+1)
	copy(next, l.items)
	l.items = append(next, model.Item{ID: l.ids.NextID(), Text: text})
	l.input = ""
	l.notify()
	return true
}

// Delete removes the record with the given id. Deleting the record being
// edited also leaves edit mode.
func (l *List) Delete(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	next := make([]model.Item, 0, len(l.items)-1)
	next = append(next, l.items[:i]...)
	l.items = append(next, l.items[i+1:]...)
	if e, ok := l.edit.(Editing); ok && e.ID == id {
		l.edit = Viewing{}
	}
	l.notify()
	return true
}

// Toggle flips the completed flag of the record with the given id.
func (l *List) Toggle(id string) bool {
	return l.replace(id, func(it *model.Item) { it.Completed = !it.Completed })
}

// BeginEdit puts item's record in edit mode, seeding the buffer with the
// record's current text. An edit in progress on another record is
// abandoned along with its buffer.
func (l *List) BeginEdit(item model.Item) bool {
	i := l.index(item.ID)
	if i < 0 {
		return false
	}
	next := Editing{ID: item.ID, Buffer: l.items[i].Text}
	if l.edit == EditState(next) {
		return false
	}
	l.edit = next
	l.notify()
	return true
}

// SetEditBuffer replaces the working text of the record in edit mode.
// It does nothing while viewing.
func (l *List) SetEditBuffer(text string) bool {
	e, ok := l.edit.(Editing)
	if !ok || e.Buffer == text {
		return false
	}
	e.Buffer = text
	l.edit = e
	l.notify()
	return true
}

// SaveEdit commits the trimmed buffer as the text of the record with the
// given id and leaves edit mode. It does nothing unless that record is the
// one being edited, and a whitespace-only buffer keeps edit mode open.
func (l *List) SaveEdit(id string) bool {
	e, ok := l.edit.(Editing)
	if !ok || e.ID != id {
		return false
	}
	text := strings.TrimSpace(e.Buffer)
	if text == "" {
		return false
	}
	i := l.index(id)
	if i < 0 {
		return false
	}
	next := slices.Clone(l.items)
	next[i].Text = text
	l.items = next
	l.edit = Viewing{}
	l.notify()
	return true
}

// CancelEdit drops the buffer and leaves edit mode.
func (l *List) CancelEdit() bool {
	if _, ok := l.edit.(Editing); !ok {
		return false
	}
	l.edit = Viewing{}
	l.notify()
	return true
}

// Items returns the records in display order. The slice is never modified
// by later calls on l.
func (l *List) Items() []model.Item { return l.items }

// Len returns the number of records.
func (l *List) Len() int { return len(l.items) }

// Get returns the record with the given id.
func (l *List) Get(id string) (model.Item, bool) {
	i := l.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return l.items[i], true
}

// Edit returns the current edit state.
func (l *List) Edit() EditState { return l.edit }

// Editing returns the edit in progress, if any.
func (l *List) Editing() (Editing, bool) {
	e, ok := l.edit.(Editing)
	return e, ok
}

// Stats counts completed and pending records.
func (l *List) Stats() (done, pending int) {
	for _, it := range l.items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// State returns a snapshot of the widget.
func (l *List) State() State {
	return State{Items: l.items, Input: l.input, Edit: l.edit}
}

func (l *List) index(id string) int {
	return slices.IndexFunc(l.items, func(it model.Item) bool { return it.ID == id })
}

// replace swaps the record with the given id for a modified copy inside a
// fresh slice.
func (l *List) replace(id string, fn func(*model.Item)) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	next := slices.Clone(l.items)
	fn(&next[i])
	l.items = next
	l.notify()
	return true
}

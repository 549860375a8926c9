package todo

import (
	"github.com/Makepad-fr/tada/internal/model"
)

// EditState is either Viewing or Editing. At most one record is in edit
// mode at a time.
type EditState interface {
	isEditState()
}

// Viewing means no record is in edit mode.
type Viewing struct{}

// Editing holds the record in edit mode and its working text.
type Editing struct {
	ID     string
	Buffer string
}

func (Viewing) isEditState() {}
func (Editing) isEditState() {}

// State is a snapshot of a List. Items is shared with the list but never
// written to again.
type State struct {
	Items []model.Item
	Input string
	Edit  EditState
}

// EditingID returns the id of the record in edit mode, or "" while
// viewing.
func (s State) EditingID() string {
	if e, ok := s.Edit.(Editing); ok {
		return e.ID
	}
	return ""
}

// Subscribe registers fn to be called with a snapshot after every change.
// Subscribers run in registration order. The returned func unregisters fn.
func (l *List) Subscribe(fn func(State)) (cancel func()) {
	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range l.subs {
			if s.id == id {
				l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
				return
			}
		}
	}
}

func (l *List) notify() {
	if len(l.subs) == 0 {
		return
	}
	st := l.State()
	for _, s := range l.subs {
		s.fn(st)
	}
}

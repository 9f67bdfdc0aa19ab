package card

import "github.com/sandeepkv93/taskboard/internal/model"

// Intent is emitted by a card whenever the user does something its owner
// must act on. The card never applies these itself.
type Intent interface {
	intent()
}

// CompletionToggled carries the record with the new completion state.
type CompletionToggled struct {
	Task model.Task
}

// TextSaved carries the record with the editor's text.
type TextSaved struct {
	Task model.Task
}

// KeyForwarded carries a view-mode keystroke the card did not handle.
type KeyForwarded struct {
	Event KeyEvent
}

func (CompletionToggled) intent() {}
func (TextSaved) intent()         {}
func (KeyForwarded) intent()      {}

type Sink interface {
	Dispatch(Intent)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Intent)

func (f SinkFunc) Dispatch(in Intent) { f(in) }

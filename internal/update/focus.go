package update

// focusRing tracks which card holds focus and whether its editor is the
// focused element. Only one card edits at a time since the editor is shared.
type focusRing struct {
	editor        *textEditor
	focused       string
	editorFocused bool
}

func (r *focusRing) handle(id string) cardFocus {
	return cardFocus{ring: r, id: id}
}

func (r *focusRing) focusCard(id string) {
	r.focused = id
	r.editorFocused = false
	r.editor.Blur()
}

func (r *focusRing) focusEditor(id string) {
	r.focused = id
	r.editorFocused = true
	r.editor.Focus()
}

// cardFocus is the focus controller handed to one card.
type cardFocus struct {
	ring *focusRing
	id   string
}

func (f cardFocus) FocusCard()        { f.ring.focusCard(f.id) }
func (f cardFocus) FocusEditor()      { f.ring.focusEditor(f.id) }
func (f cardFocus) CardFocused() bool { return f.ring.focused == f.id && !f.ring.editorFocused }

// FocusWithinRegion reports whether the editor already had focus on this
// card's row when the card was mounted, as after a rebuild mid-edit.
func (f cardFocus) FocusWithinRegion() bool {
	return f.ring.editorFocused && f.ring.focused == f.id
}

package card

// KeyCode identifies a key by its legacy DOM key code; these are the only
// codes the card reacts to itself.
type KeyCode int

const (
	KeyEnter  KeyCode = 13
	KeyEscape KeyCode = 27
	KeySpace  KeyCode = 32
	KeyA      KeyCode = 65 // append
	KeyI      KeyCode = 73 // insert
	KeyX      KeyCode = 88
)

type KeyEvent struct {
	Code  KeyCode
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
	// Text is the host's own name for the key, kept for forwarded handlers.
	Text string

	stopped   bool
	prevented bool
}

// StopPropagation keeps ancestors from handling the same keystroke.
func (e *KeyEvent) StopPropagation() { e.stopped = true }

// PreventDefault suppresses the host's built-in reaction to the key.
func (e *KeyEvent) PreventDefault() { e.prevented = true }

func (e KeyEvent) Stopped() bool   { return e.stopped }
func (e KeyEvent) Prevented() bool { return e.prevented }

// PointerEvent carries the propagation flags of a click or touch.
type PointerEvent struct {
	// OnLink is set when the pointer landed on a rendered hyperlink.
	OnLink bool

	stopped   bool
	prevented bool
}

func (e *PointerEvent) StopPropagation() { e.stopped = true }
func (e *PointerEvent) PreventDefault()  { e.prevented = true }
func (e PointerEvent) Stopped() bool     { return e.stopped }
func (e PointerEvent) Prevented() bool   { return e.prevented }

package card

import "strings"

// Editor is the multi-line text input shown in edit mode.
type Editor interface {
	Value() string
	SetValue(string)
	// InsertNewline replaces the selection with a line break and leaves the
	// caret right after it.
	InsertNewline()
	// ScrollHeight is the height the content needs; OffsetHeight is the
	// height currently shown.
	ScrollHeight() float64
	OffsetHeight() float64
	// FitWidth widens the input to its content.
	FitWidth()
}

// Focus moves input focus between a card, its editor and the rest of the
// host surface.
type Focus interface {
	FocusCard()
	FocusEditor()
	CardFocused() bool
	// FocusWithinRegion reports whether focus currently sits anywhere in the
	// area the card is mounted into.
	FocusWithinRegion() bool
}

// TextBuffer is an in-memory Editor measured in lines. Hosts without a
// native text input, and tests, use it directly.
type TextBuffer struct {
	value      string
	selStart   int
	selEnd     int
	lineHeight float64
	height     float64
	width      int
}

func NewTextBuffer(lineHeight float64) *TextBuffer {
	if lineHeight <= 0 {
		lineHeight = 1
	}
	return &TextBuffer{lineHeight: lineHeight, height: lineHeight}
}

func (b *TextBuffer) Value() string { return b.value }

// SetValue replaces the content and puts the caret at the end.
func (b *TextBuffer) SetValue(v string) {
	b.value = v
	b.selStart = len(v)
	b.selEnd = len(v)
}

// Select sets the selection as byte offsets, clamped to the content.
func (b *TextBuffer) Select(start, end int) {
	start = clamp(start, 0, len(b.value))
	end = clamp(end, start, len(b.value))
	b.selStart, b.selEnd = start, end
}

func (b *TextBuffer) Selection() (int, int) { return b.selStart, b.selEnd }

func (b *TextBuffer) InsertNewline() {
	b.value = b.value[:b.selStart] + "\n" + b.value[b.selEnd:]
	b.selStart++
	b.selEnd = b.selStart
}

func (b *TextBuffer) ScrollHeight() float64 {
	return float64(strings.Count(b.value, "\n")+1) * b.lineHeight
}

func (b *TextBuffer) OffsetHeight() float64 { return b.height }

// SetHeight mirrors an explicit height applied by the host.
func (b *TextBuffer) SetHeight(h float64) { b.height = h }

func (b *TextBuffer) FitWidth() {
	w := 0
	for _, line := range strings.Split(b.value, "\n") {
		if len(line) > w {
			w = len(line)
		}
	}
	b.width = w
}

func (b *TextBuffer) Width() int { return b.width }

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package update

import (
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/card"
)

var namedKeyCodes = map[tea.KeyType]card.KeyCode{
	tea.KeyEnter:     card.KeyEnter,
	tea.KeyEsc:       card.KeyEscape,
	tea.KeySpace:     card.KeySpace,
	tea.KeyBackspace: 8,
	tea.KeyTab:       9,
	tea.KeyLeft:      37,
	tea.KeyUp:        38,
	tea.KeyRight:     39,
	tea.KeyDown:      40,
	tea.KeyDelete:    46,
}

// keyEvent translates a terminal key into the card's key event. ctrl+j and
// alt+enter stand in for Ctrl+Enter, which terminals cannot report. Only
// ASCII runes get a key code; other text is code 0.
func keyEvent(msg tea.KeyMsg) card.KeyEvent {
	ev := card.KeyEvent{Alt: msg.Alt, Text: msg.String()}
	switch {
	case msg.Type == tea.KeyCtrlJ:
		ev.Code = card.KeyEnter
		ev.Ctrl = true
	case msg.Type == tea.KeyEnter && msg.Alt:
		ev.Code = card.KeyEnter
		ev.Ctrl = true
		ev.Alt = false
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] < utf8.RuneSelf:
		r := msg.Runes[0]
		ev.Code = card.KeyCode(unicode.ToUpper(r))
		ev.Shift = unicode.IsUpper(r)
	default:
		ev.Code = namedKeyCodes[msg.Type]
	}
	return ev
}

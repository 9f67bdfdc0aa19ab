package update

import (
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// textEditor adapts the bubbles textarea to the card's editor contract.
// Heights are measured in terminal rows.
type textEditor struct {
	area      textarea.Model
	width     int
	maxHeight int
}

func newTextEditor(width, maxHeight int) *textEditor {
	area := textarea.New()
	area.Prompt = ""
	area.ShowLineNumbers = false
	area.Placeholder = "describe the task"
	area.SetWidth(width)
	area.SetHeight(1)
	return &textEditor{area: area, width: width, maxHeight: max(1, maxHeight)}
}

func (e *textEditor) Value() string { return e.area.Value() }

// SetValue loads text with the caret at the end and resets the height so it
// grows again from a single row.
func (e *textEditor) SetValue(v string) {
	e.area.SetValue(v)
	e.area.SetHeight(1)
}

func (e *textEditor) InsertNewline() { e.area.InsertString("\n") }

// ScrollHeight counts the rows the text needs at the current width,
// soft-wrapped lines included.
func (e *textEditor) ScrollHeight() float64 {
	w := max(1, e.area.Width())
	rows := 0
	for _, line := range strings.Split(e.area.Value(), "\n") {
		rows += max(1, int(math.Ceil(float64(lipgloss.Width(line))/float64(w))))
	}
	return float64(rows)
}

func (e *textEditor) OffsetHeight() float64 { return float64(e.area.Height()) }

func (e *textEditor) SetHeight(h float64) {
	e.area.SetHeight(min(int(math.Ceil(h)), e.maxHeight))
}

func (e *textEditor) FitWidth() { e.area.SetWidth(e.width) }

func (e *textEditor) SetWidth(w int) {
	e.width = max(1, w)
	e.area.SetWidth(e.width)
}

func (e *textEditor) Focus()        { e.area.Focus() }
func (e *textEditor) Blur()         { e.area.Blur() }
func (e *textEditor) Focused() bool { return e.area.Focused() }
func (e *textEditor) Height() int   { return e.area.Height() }
func (e *textEditor) View() string  { return e.area.View() }

// Update feeds a keystroke the card left for the editor to type.
func (e *textEditor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return cmd
}

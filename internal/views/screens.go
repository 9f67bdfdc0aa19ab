package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/taskboard/internal/card"
)

// CheckboxWidth is the number of columns taken by the cursor and the
// checkbox at the start of every card row.
const CheckboxWidth = 6

type CardData struct {
	View    card.ViewModel
	Focused bool
	// Body is the terminal rendering of the task text in view mode.
	Body string
	// EditorView is the editor widget drawn in edit mode.
	EditorView string
}

var (
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	editStyle      = lipgloss.NewStyle().BorderLeft(true).BorderStyle(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("12"))
)

// RenderCard draws one card row: cursor, checkbox, then either the rendered
// body or the editor.
func RenderCard(data CardData) string {
	cursor := "  "
	if data.Focused {
		cursor = cursorStyle.Render("> ")
	}
	box := "[ ] "
	if data.View.Completed {
		box = "[x] "
	}

	var content string
	if data.View.State == card.StateEdit {
		content = editStyle.Render(data.EditorView)
	} else {
		base := lipgloss.NewStyle()
		if data.View.Completed {
			base = completedStyle
		}
		content = data.View.Styles.Lipgloss(base).Render(data.Body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cursor, box, content)
}

// RenderBoard stacks rendered cards and returns the first row of each plus
// the total row count, so the host can map mouse positions back to cards.
func RenderBoard(cards []string) (string, []int, int) {
	if len(cards) == 0 {
		return "(no tasks, press o to add one)", nil, 0
	}
	offsets := make([]int, len(cards))
	row := 0
	for i, c := range cards {
		offsets[i] = row
		row += lipgloss.Height(c)
	}
	return strings.Join(cards, "\n"), offsets, row
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nmode: %s\n%s\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

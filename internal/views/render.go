package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AppData is one frame of the terminal board.
type AppData struct {
	Header       string
	Progress     string
	Board        string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
	Width        int
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// HeaderHeight is the number of rows RenderApp draws above the board
// content: the header line and the panel's top border. Hosts use it to map
// mouse rows onto cards.
const HeaderHeight = 2

func RenderApp(data AppData) string {
	header := headerStyle.Render(data.Header)
	if data.Progress != "" {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", data.Progress)
	}

	panel := panelStyle
	if data.Width > 0 {
		panel = panel.Width(data.Width)
	}

	status := statusStyle
	if data.StatusError {
		status = errorStyle
	}

	lines := []string{header, panel.Render(data.Board), status.Render(data.StatusLine)}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

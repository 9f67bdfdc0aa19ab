package update

import (
	"strings"

	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.s.commandInput.Value())
}

// renderLatestNotification shows the newest notification while the palette
// and help are closed.
func (m Model) renderLatestNotification() string {
	if m.Palette.Active || m.HelpVisible || len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Title+": "+n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.s.now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	switch level {
	case "error":
		m.s.log.Error(body, "title", title)
	default:
		m.s.log.Debug(body, "title", title)
	}
}

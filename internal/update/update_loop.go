package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	before := m.Status
	switch typed := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.handleKey(typed)
	case tea.MouseMsg:
		m.s.handleMouse(typed)
	case tea.WindowSizeMsg:
		m.s.width = typed.Width
		m.s.height = typed.Height
		m.s.editor.SetWidth(m.s.cardWidth())
		m.s.rendered = make(map[string]string)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
	case ClearStatusMsg:
		m.Status = StatusBar{}
	case AppErrorMsg:
		m = m.fail(typed.Err)
	case ReloadMsg:
		if inst := m.s.editing(); inst != nil {
			inst.Card().Save()
		}
		if err := m.s.rebuild(""); err != nil {
			m = m.fail(err)
		}
	}
	m, forwarded := m.drain(before)
	m.s.sync()
	return m, tea.Batch(cmd, forwarded)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.s.blurEditing()
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Palette.Active {
		if msg.String() == m.Keys.Help && m.s.commandInput.Value() == "" {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg), nil
	}

	if inst := m.s.editing(); inst != nil {
		return m, m.s.handleEditorKey(inst, msg)
	}
	inst := m.s.focused()
	if inst == nil {
		return m.hostKey(keyEvent(msg).Text)
	}
	ev := keyEvent(msg)
	inst.Card().HandleKey(&ev)
	return m, nil
}

// drain applies what the cards reported while handling the last message:
// keys they forwarded to the host and store or save errors. A save is
// reported only when nothing else set the status.
func (m Model) drain(before StatusBar) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	for len(m.s.forwarded) > 0 {
		ev := m.s.forwarded[0]
		m.s.forwarded = m.s.forwarded[1:]
		var cmd tea.Cmd
		m, cmd = m.hostKey(ev.Text)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	for _, err := range m.s.errs {
		m = m.fail(err)
	}
	m.s.errs = nil
	if m.s.saved > 0 && m.Status == before {
		m.Status = StatusBar{Text: "saved"}
	}
	m.s.saved = 0
	return m, tea.Batch(cmds...)
}

// hostKey is the board's handler for keys a card did not consume.
func (m Model) hostKey(key string) (Model, tea.Cmd) {
	switch key {
	case m.Keys.Down, "down":
		m.s.moveFocus(1)
	case m.Keys.Up, "up":
		m.s.moveFocus(-1)
	case m.Keys.Add:
		if _, err := m.s.addTask("", true); err != nil {
			return m.fail(err), nil
		}
		m.Status = StatusBar{Text: "new task"}
	case m.Keys.Delete:
		inst := m.s.focused()
		if inst == nil {
			return m, nil
		}
		id := inst.Card().Task().ID
		if err := m.s.deleteTask(id); err != nil {
			return m.fail(err), nil
		}
		m.Status = StatusBar{Text: "task deleted"}
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.s.commandInput.SetValue("")
		m.s.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) fail(err error) Model {
	if err == nil {
		return m
	}
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
	return m
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	notification := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
		m.renderLatestNotification(),
	}, "\n"))

	focused := "-"
	if inst := m.s.focused(); inst != nil {
		focused = inst.Card().Task().ID
	}
	done := 0
	for _, inst := range m.s.cards {
		if inst.Card().Task().Completed {
			done++
		}
	}
	progress := ""
	if n := len(m.s.cards); n > 0 {
		progress = m.s.progress.ViewAs(float64(done) / float64(n))
	}
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskboard | tasks: %d done: %d | focused: %s", len(m.s.cards), done, focused),
		Progress:     progress,
		Board:        m.s.boardView.View(),
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer: fmt.Sprintf("keys: %s/%s move | enter edit | space done | %s add | %s delete | %s cmd | %s help | %s quit",
			m.Keys.Down, m.Keys.Up, m.Keys.Add, m.Keys.Delete, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}

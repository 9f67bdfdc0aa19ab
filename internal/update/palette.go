package update

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.s.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.s.commandInput, cmd = m.s.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.s.commandInput.Value()
	}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.s.commandInput.SetValue("")
	m.s.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	s := m.s
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := s.addTask(a.Text, false)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added task %s", task.ID)}, nil
		},
		Done: func(a commands.TargetArgs) (commands.Result, error) {
			inst := s.target(a.ID)
			if inst == nil {
				return commands.Result{}, noTask(a.ID)
			}
			s.blurEditing()
			inst.Card().SetCompleted(true)
			return commands.Result{Message: fmt.Sprintf("completed %s", inst.Card().Task().ID)}, nil
		},
		Edit: func(a commands.TargetArgs) (commands.Result, error) {
			inst := s.target(a.ID)
			if inst == nil {
				return commands.Result{}, noTask(a.ID)
			}
			if !inst.Card().Editing() {
				s.blurEditing()
				s.ring.focusCard(inst.Card().Task().ID)
				inst.ToggleEditMode()
			}
			return commands.Result{Message: fmt.Sprintf("editing %s", inst.Card().Task().ID)}, nil
		},
		Delete: func(a commands.TargetArgs) (commands.Result, error) {
			inst := s.target(a.ID)
			if inst == nil {
				return commands.Result{}, noTask(a.ID)
			}
			id := inst.Card().Task().ID
			if err := s.deleteTask(id); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("deleted %s", id)}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			if err := s.exportHTML(a.Path); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported board to %s", a.Path)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	s.log.Info("palette command", "command", string(cmd.Type), "result", res.Message)
	return m
}

func (s *session) exportHTML(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return s.board.ExportHTML(f)
}

func noTask(id string) error {
	if id == "" {
		return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task is focused"}
	}
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %s", id)}
}

package update

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/card"
	"github.com/sandeepkv93/taskboard/internal/markdown"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/styling"
	"github.com/sandeepkv93/taskboard/internal/views"
	"github.com/sandeepkv93/taskboard/internal/widget"
)

// rebuild recreates one widget per task, binding each to its index in the
// store. autoFocusID names a freshly added task that should take focus.
func (s *session) rebuild(autoFocusID string) error {
	tasks := s.board.Tasks()
	cards := make([]*widget.Instance, 0, len(tasks))
	for i, t := range tasks {
		w := widget.New(widget.Config{
			Bind:       board.PathTasks + "." + strconv.Itoa(i),
			StyleRules: widget.Bound[styling.Rules](board.PathStyleRules),
			AutoFocus:  widget.Literal(s.cfg.AutoFocus && t.ID == autoFocusID),
			IsNew:      widget.Literal(t.IsNew),
			OnSave:     s.onSave,
			OnKeyDown:  s.onKeyDown,
			OnError:    s.onWidgetError,
		})
		inst, err := w.Instantiate(s.store, card.Env{
			Editor: s.editor,
			Focus:  s.ring.handle(t.ID),
			Now:    s.now,
		})
		if err != nil {
			return err
		}
		cards = append(cards, inst)
	}
	s.cards = cards
	if s.index(s.ring.focused) < 0 {
		s.ring.focused = ""
		if len(cards) > 0 {
			s.ring.focused = cards[0].Card().Task().ID
		}
	}
	for _, inst := range cards {
		inst.Mount()
	}
	return nil
}

func (s *session) onSave(task model.Task, _ *widget.Instance) {
	if err := s.board.Save(s.ctx, task); err != nil {
		s.log.Error("save task", "id", task.ID, "err", err)
		s.errs = append(s.errs, err)
		return
	}
	s.saved++
}

func (s *session) onWidgetError(err error, inst *widget.Instance) {
	s.log.Error("write task", "path", inst.TaskPath(), "err", err)
	s.errs = append(s.errs, err)
}

func (s *session) onKeyDown(ev card.KeyEvent, _ *widget.Instance) {
	s.forwarded = append(s.forwarded, ev)
}

// onStoreWrite re-renders every card whose binding the write touched.
func (s *session) onStoreWrite(path string) {
	for _, inst := range s.cards {
		if tp := inst.TaskPath(); tp != "" && store.Covers(path, tp) {
			if err := inst.Refresh(); err != nil {
				s.errs = append(s.errs, err)
			}
		}
	}
}

func (s *session) index(id string) int {
	if id == "" {
		return -1
	}
	for i, inst := range s.cards {
		if inst.Card().Task().ID == id {
			return i
		}
	}
	return -1
}

func (s *session) focused() *widget.Instance {
	if i := s.index(s.ring.focused); i >= 0 {
		return s.cards[i]
	}
	return nil
}

func (s *session) editing() *widget.Instance {
	for _, inst := range s.cards {
		if inst.Card().Editing() {
			return inst
		}
	}
	return nil
}

// target resolves a command's task id, falling back to the focused card.
func (s *session) target(id string) *widget.Instance {
	if id == "" {
		return s.focused()
	}
	if i := s.index(id); i >= 0 {
		return s.cards[i]
	}
	return nil
}

// blurEditing closes an open editor the way losing focus would: the text
// is saved and the card returns to view mode.
func (s *session) blurEditing() {
	if inst := s.editing(); inst != nil {
		inst.Card().EditorBlur()
	}
	s.ring.editorFocused = false
	s.editor.Blur()
}

func (s *session) moveFocus(delta int) {
	if len(s.cards) == 0 {
		return
	}
	s.blurEditing()
	i := s.index(s.ring.focused)
	if i < 0 {
		i = 0
	} else {
		i = clamp(i+delta, 0, len(s.cards)-1)
	}
	s.ring.focusCard(s.cards[i].Card().Task().ID)
}

func (s *session) addTask(name string, edit bool) (model.Task, error) {
	s.blurEditing()
	task, err := s.board.Add(s.ctx, name)
	if err != nil {
		return model.Task{}, err
	}
	if !edit {
		task.IsNew = false
		if err := s.board.Save(s.ctx, task); err != nil {
			return model.Task{}, err
		}
	}
	s.ring.focused = task.ID
	return task, s.rebuild(task.ID)
}

func (s *session) deleteTask(id string) error {
	s.blurEditing()
	i := s.index(id)
	if err := s.board.Delete(s.ctx, id); err != nil {
		return err
	}
	s.ring.focused = ""
	if tasks := s.board.Tasks(); len(tasks) > 0 {
		s.ring.focused = tasks[clamp(i, 0, len(tasks)-1)].ID
	}
	return s.rebuild("")
}

// handleEditorKey delivers a key to the editing card and lets the textarea
// type whatever the card left unprevented.
func (s *session) handleEditorKey(inst *widget.Instance, msg tea.KeyMsg) tea.Cmd {
	ev := keyEvent(msg)
	c := inst.Card()
	c.HandleKey(&ev)
	if ev.Prevented() || !c.Editing() {
		return nil
	}
	cmd := s.editor.Update(msg)
	c.EditorChange()
	return cmd
}

// handleMouse maps a left click onto the card under the pointer.
func (s *session) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	i := s.cardAt(msg.Y - views.HeaderHeight + s.boardView.YOffset)
	if i < 0 {
		return
	}
	inst := s.cards[i]
	c := inst.Card()
	id := c.Task().ID
	ev := card.PointerEvent{}
	c.Click(&ev)

	if c.Editing() {
		return
	}
	if msg.X-boardInset < views.CheckboxWidth {
		s.blurEditing()
		s.ring.focusCard(id)
		c.CheckboxClick()
		return
	}

	now := s.now()
	double := s.lastClick.id == id && now.Sub(s.lastClick.at) < doubleClickWindow
	s.lastClick = clickRecord{id: id, at: now}
	if double {
		s.lastClick = clickRecord{}
		s.blurEditing()
		c.DoubleClick()
		return
	}
	if s.ring.focused == id && !s.ring.editorFocused {
		c.TouchStart(&ev)
		return
	}
	s.blurEditing()
	s.ring.focusCard(id)
}

// boardInset is the border and padding left of the board content.
const boardInset = 2

// cardAt returns the card drawn on row, or -1 for rows outside every card.
func (s *session) cardAt(row int) int {
	if row < 0 || row >= s.boardRows {
		return -1
	}
	for i := len(s.offsets) - 1; i >= 0; i-- {
		if row >= s.offsets[i] {
			return i
		}
	}
	return -1
}

func (s *session) cardWidth() int {
	return max(10, min(s.cfg.CardWidth, s.width-boardInset*2-views.CheckboxWidth))
}

func (s *session) renderBody(text string) string {
	if out, ok := s.rendered[text]; ok {
		return out
	}
	out := markdown.Terminal(text, s.cfg.MarkdownStyle, s.cardWidth())
	if len(s.rendered) > 512 {
		s.rendered = make(map[string]string)
	}
	s.rendered[text] = out
	return out
}

// sync redraws the cards into the board viewport and keeps the focused card
// in view.
func (s *session) sync() {
	rows := make([]string, 0, len(s.cards))
	for _, inst := range s.cards {
		vm := inst.Card().View()
		data := views.CardData{View: vm, Focused: vm.ID == "task-"+s.ring.focused}
		if vm.State == card.StateEdit {
			data.EditorView = s.editor.View()
		} else {
			data.Body = s.renderBody(vm.Text)
		}
		rows = append(rows, views.RenderCard(data))
	}
	content, offsets, total := views.RenderBoard(rows)
	s.offsets = offsets
	s.boardRows = total
	s.boardView.Width = s.width
	s.boardView.Height = s.boardHeight()
	s.boardView.SetContent(content)

	i := s.index(s.ring.focused)
	if i < 0 || i >= len(offsets) {
		return
	}
	top := offsets[i]
	bottom := total
	if i+1 < len(offsets) {
		bottom = offsets[i+1]
	}
	if top < s.boardView.YOffset {
		s.boardView.SetYOffset(top)
	} else if bottom > s.boardView.YOffset+s.boardView.Height {
		s.boardView.SetYOffset(bottom - s.boardView.Height)
	}
}

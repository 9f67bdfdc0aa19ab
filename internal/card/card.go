// Package card implements the editable task card: a read view that renders
// the task's markdown and a checkbox, and an in-place editor for the raw
// text. The card owns only its local UI state; every change to the task is
// emitted as an Intent for the owner to apply.
package card

import (
	"math"
	"strings"
	"time"

	"github.com/sandeepkv93/taskboard/internal/markdown"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/styling"
)

type State int

const (
	StateView State = iota
	StateEdit
)

func (s State) String() string {
	if s == StateEdit {
		return "edit"
	}
	return "view"
}

// Props is the immutable snapshot the card renders.
type Props struct {
	Task       model.Task
	StyleRules styling.Rules
	AutoFocus  bool
	// IsNew starts the card in edit mode.
	IsNew bool
}

// Env holds the host capabilities a card needs. Nil members fall back to
// inert implementations.
type Env struct {
	Editor Editor
	Focus  Focus
	Sink   Sink
	Now    func() time.Time
}

type Card struct {
	props Props
	env   Env

	state        State
	scrollHeight float64
}

func New(props Props, env Env) *Card {
	if env.Editor == nil {
		env.Editor = NewTextBuffer(1)
	}
	if env.Focus == nil {
		env.Focus = noFocus{}
	}
	if env.Sink == nil {
		env.Sink = SinkFunc(func(Intent) {})
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	c := &Card{props: props, env: env}
	if props.IsNew {
		c.state = StateEdit
		c.env.Editor.SetValue(props.Task.Name)
	}
	return c
}

func (c *Card) State() State              { return c.state }
func (c *Card) Editing() bool             { return c.state == StateEdit }
func (c *Card) ScrollHeight() float64     { return c.scrollHeight }
func (c *Card) Task() model.Task          { return c.props.Task }
func (c *Card) Editor() Editor            { return c.env.Editor }
func (c *Card) SetNow(f func() time.Time) { c.env.Now = f }

// Mount runs once the card is attached to the host surface. When focus was
// already inside the surrounding region the user was typing there, so the
// card opens straight into the editor.
func (c *Card) Mount() {
	if c.env.Focus.FocusWithinRegion() && !c.Editing() {
		c.ToggleEditMode()
	}
	c.autoFocus()
}

// SetProps re-renders the card with a new snapshot. An open editor keeps its
// text.
func (c *Card) SetProps(p Props) {
	c.props = p
	c.didUpdate()
}

// ToggleEditMode flips between view and edit. Entering edit loads the raw
// text and clears the cached height; focus follows the new mode.
func (c *Card) ToggleEditMode() {
	if c.state == StateEdit {
		c.state = StateView
	} else {
		c.state = StateEdit
		c.scrollHeight = 0
		c.env.Editor.SetValue(c.props.Task.Name)
	}
	c.didUpdate()
	if c.Editing() {
		c.env.Focus.FocusEditor()
	} else {
		c.env.Focus.FocusCard()
	}
}

// HandleKey delivers a keystroke the way it bubbles: editor first while
// editing, then the card itself unless propagation was stopped.
func (c *Card) HandleKey(ev *KeyEvent) {
	if c.Editing() {
		c.EditorKeyDown(ev)
		if ev.Stopped() {
			return
		}
	}
	c.KeyDown(ev)
}

// KeyDown handles a keystroke on the card element.
func (c *Card) KeyDown(ev *KeyEvent) {
	switch ev.Code {
	case KeyEnter, KeyI, KeyA:
		ev.StopPropagation()
		ev.PreventDefault()
		c.ToggleEditMode()
	case KeySpace, KeyX:
		ev.StopPropagation()
		ev.PreventDefault()
		c.SetCompleted(!c.props.Task.Completed)
	default:
		c.env.Sink.Dispatch(KeyForwarded{Event: *ev})
	}
}

// EditorKeyDown handles a keystroke inside the editor. Keys it leaves
// unprevented are for the editor itself to type.
func (c *Card) EditorKeyDown(ev *KeyEvent) {
	switch ev.Code {
	case KeyEnter:
		ev.StopPropagation()
		ev.PreventDefault()
		if ev.Ctrl {
			c.env.Editor.InsertNewline()
			c.didUpdate()
			return
		}
		c.Save()
		c.ToggleEditMode()
	case KeyEscape:
		c.Save()
		c.ToggleEditMode()
	default:
		ev.StopPropagation()
	}
}

// EditorBlur saves and leaves edit mode without moving focus.
func (c *Card) EditorBlur() {
	if !c.Editing() {
		return
	}
	c.Save()
	c.state = StateView
	c.didUpdate()
}

// EditorChange is called after the editor content changed.
func (c *Card) EditorChange() {
	c.didUpdate()
}

// Click keeps clicks from reaching ancestors; only links keep their
// default action.
func (c *Card) Click(ev *PointerEvent) {
	if !ev.OnLink {
		ev.PreventDefault()
	}
	ev.StopPropagation()
}

// TouchStart on an already focused card opens the editor.
func (c *Card) TouchStart(ev *PointerEvent) {
	if !c.Editing() && c.env.Focus.CardFocused() {
		c.ToggleEditMode()
		ev.StopPropagation()
		ev.PreventDefault()
	}
}

func (c *Card) DoubleClick() {
	c.ToggleEditMode()
}

func (c *Card) CheckboxClick() {
	c.SetCompleted(!c.props.Task.Completed)
}

func (c *Card) SetCompleted(completed bool) {
	t := c.props.Task.WithCompleted(completed, c.env.Now())
	c.props.Task = t
	c.env.Sink.Dispatch(CompletionToggled{Task: t})
}

// Save emits the editor's current text as a new record.
func (c *Card) Save() {
	t := c.props.Task.WithName(c.env.Editor.Value(), c.env.Now())
	c.props.Task = t
	c.env.Sink.Dispatch(TextSaved{Task: t})
}

func (c *Card) didUpdate() {
	if c.Editing() {
		ed := c.env.Editor
		ed.FitWidth()
		if ed.ScrollHeight() > ed.OffsetHeight() {
			c.scrollHeight = math.Ceil(ed.ScrollHeight())
			if s, ok := ed.(interface{ SetHeight(float64) }); ok {
				s.SetHeight(c.scrollHeight)
			}
		}
	}
	c.autoFocus()
}

func (c *Card) autoFocus() {
	if !c.props.AutoFocus && !c.Editing() {
		return
	}
	if c.Editing() {
		c.env.Focus.FocusEditor()
	} else {
		c.env.Focus.FocusCard()
	}
}

// ViewModel is everything a host needs to draw the card.
type ViewModel struct {
	ID            string
	ClassName     string
	State         State
	Completed     bool
	CheckboxClass string
	Text          string
	ContentHTML   string
	ContentClass  string
	Styles        styling.Styles
	EditorText    string
	EditorHeight  float64
}

func (c *Card) View() ViewModel {
	t := c.props.Task
	vm := ViewModel{
		ID:        "task-" + t.ID,
		ClassName: blockClass("task", map[string]bool{"edit": c.Editing(), "completed": t.Completed}),
		State:     c.state,
		Completed: t.Completed,
		Text:      t.Name,
	}
	if c.Editing() {
		vm.EditorText = c.env.Editor.Value()
		vm.EditorHeight = c.scrollHeight
		return vm
	}
	vm.Styles = styling.GetStyles(t.Name, c.props.StyleRules)
	vm.CheckboxClass = "cxe-checkbox-input"
	if t.Completed {
		vm.CheckboxClass += " cxs-checked"
	}
	vm.ContentHTML = markdown.HTML(t.Name)
	vm.ContentClass = strings.TrimSpace("cxe-task-content " + vm.Styles.ClassName)
	return vm
}

func blockClass(name string, states map[string]bool) string {
	parts := []string{"cxb-" + name}
	for _, s := range []string{"edit", "completed"} {
		if states[s] {
			parts = append(parts, "cxs-"+s)
		}
	}
	return strings.Join(parts, " ")
}

type noFocus struct{}

func (noFocus) FocusCard()              {}
func (noFocus) FocusEditor()            {}
func (noFocus) CardFocused() bool       { return false }
func (noFocus) FocusWithinRegion() bool { return false }

package card

import (
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/styling"
)

type fakeFocus struct {
	target   string
	inRegion bool
	calls    []string
}

func (f *fakeFocus) FocusCard()              { f.target = "card"; f.calls = append(f.calls, "card") }
func (f *fakeFocus) FocusEditor()            { f.target = "editor"; f.calls = append(f.calls, "editor") }
func (f *fakeFocus) CardFocused() bool       { return f.target == "card" }
func (f *fakeFocus) FocusWithinRegion() bool { return f.inRegion || f.target != "" }

type recorder struct {
	intents []Intent
}

func (r *recorder) Dispatch(in Intent) { r.intents = append(r.intents, in) }

func (r *recorder) saves() []model.Task {
	var out []model.Task
	for _, in := range r.intents {
		switch typed := in.(type) {
		case CompletionToggled:
			out = append(out, typed.Task)
		case TextSaved:
			out = append(out, typed.Task)
		}
	}
	return out
}

var fixedNow = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func newTestCard(t *testing.T, props Props) (*Card, *TextBuffer, *fakeFocus, *recorder) {
	t.Helper()
	buf := NewTextBuffer(20)
	focus := &fakeFocus{}
	rec := &recorder{}
	c := New(props, Env{
		Editor: buf,
		Focus:  focus,
		Sink:   rec,
		Now:    func() time.Time { return fixedNow },
	})
	return c, buf, focus, rec
}

func key(code KeyCode) *KeyEvent { return &KeyEvent{Code: code} }

func TestCheckboxTogglesCompletion(t *testing.T) {
	c, _, _, rec := newTestCard(t, Props{Task: model.Task{ID: "1", Name: "buy milk"}})

	c.CheckboxClick()

	saves := rec.saves()
	if len(saves) != 1 {
		t.Fatalf("expected exactly one save, got %d", len(saves))
	}
	want := model.Task{ID: "1", Name: "buy milk", Completed: true, CompletedDate: "2026-02-09T12:00:00.000Z"}
	if saves[0] != want {
		t.Fatalf("unexpected saved task: %+v", saves[0])
	}
	if _, ok := rec.intents[0].(CompletionToggled); !ok {
		t.Fatalf("expected CompletionToggled, got %T", rec.intents[0])
	}

	c.CheckboxClick()
	saves = rec.saves()
	if len(saves) != 2 || saves[1].Completed {
		t.Fatalf("expected second click to reopen the task: %+v", saves)
	}
}

func TestSpaceAndXToggleCompletion(t *testing.T) {
	for _, code := range []KeyCode{KeySpace, KeyX} {
		c, _, _, rec := newTestCard(t, Props{Task: model.Task{ID: "1", Name: "a"}})
		ev := key(code)
		c.HandleKey(ev)
		if !ev.Stopped() || !ev.Prevented() {
			t.Fatalf("key %d should stop and prevent", code)
		}
		saves := rec.saves()
		if len(saves) != 1 || !saves[0].Completed || saves[0].CompletedDate == "" {
			t.Fatalf("key %d: unexpected saves %+v", code, saves)
		}
		if c.Editing() {
			t.Fatalf("key %d should not enter edit mode", code)
		}
	}
}

func TestEnterIAEnterEditMode(t *testing.T) {
	for _, code := range []KeyCode{KeyEnter, KeyI, KeyA} {
		c, buf, focus, rec := newTestCard(t, Props{Task: model.Task{ID: "1", Name: "raw **text**"}})
		ev := key(code)
		c.HandleKey(ev)
		if !c.Editing() {
			t.Fatalf("key %d should enter edit mode", code)
		}
		if !ev.Stopped() || !ev.Prevented() {
			t.Fatalf("key %d should stop and prevent", code)
		}
		if buf.Value() != "raw **text**" {
			t.Fatalf("editor should hold raw text, got %q", buf.Value())
		}
		if focus.target != "editor" {
			t.Fatalf("editor should be focused, got %q", focus.target)
		}
		if len(rec.intents) != 0 {
			t.Fatalf("entering edit mode must not save: %+v", rec.intents)
		}
	}
}

func TestUnhandledKeysAreForwarded(t *testing.T) {
	c, _, _, rec := newTestCard(t, Props{Task: model.Task{ID: "1"}})
	ev := &KeyEvent{Code: KeyCode('J'), Text: "j"}
	c.HandleKey(ev)
	if ev.Stopped() || ev.Prevented() {
		t.Fatal("forwarded keys keep propagating")
	}
	if len(rec.intents) != 1 {
		t.Fatalf("expected one forwarded key, got %+v", rec.intents)
	}
	fw, ok := rec.intents[0].(KeyForwarded)
	if !ok || fw.Event.Text != "j" {
		t.Fatalf("unexpected intent: %#v", rec.intents[0])
	}
}

func TestBlurWithoutChangesStillSaves(t *testing.T) {
	c, _, focus, rec := newTestCard(t, Props{Task: model.Task{ID: "1", Name: "new", IsNew: true}, IsNew: true})
	if !c.Editing() {
		t.Fatal("new card should start in edit mode")
	}
	focus.calls = nil

	c.EditorBlur()

	if c.Editing() {
		t.Fatal("blur should leave edit mode")
	}
	saves := rec.saves()
	if len(saves) != 1 {
		t.Fatalf("expected one save, got %d", len(saves))
	}
	if saves[0].IsNew || saves[0].Name != "new" || saves[0].LastChange != "2026-02-09T12:00:00.000Z" {
		t.Fatalf("unexpected saved task: %+v", saves[0])
	}
	for _, call := range focus.calls {
		if call == "card" {
			t.Fatal("blur must not move focus to the card without autofocus")
		}
	}
}

func TestEscapeSavesCurrentValue(t *testing.T) {
	c, buf, focus, rec := newTestCard(t, Props{Task: model.Task{ID: "1", Name: "before"}})
	c.DoubleClick()
	buf.SetValue("after")

	ev := key(KeyEscape)
	c.HandleKey(ev)

	if c.Editing() {
		t.Fatal("escape should return to view mode")
	}
	if focus.target != "card" {
		t.Fatalf("card should regain focus, got %q", focus.target)
	}
	saves := rec.saves()
	if len(saves) != 1 || saves[0].Name != "after" {
		t.Fatalf("escape should save the editor text, got %+v", saves)
	}
	// Escape keeps bubbling to the card, which forwards it.
	last := rec.intents[len(rec.intents)-1]
	if fw, ok := last.(KeyForwarded); !ok || fw.Event.Code != KeyEscape {
		t.Fatalf("expected escape to be forwarded after leaving edit mode, got %#v", last)
	}
}

func TestEnterSavesAndLeavesEditMode(t *testing.T) {
	c, buf, focus, rec := newTestCard(t, Props{Task: model.Task{ID: "1", Name: "x"}})
	c.ToggleEditMode()
	buf.SetValue("y")

	ev := key(KeyEnter)
	c.HandleKey(ev)

	if c.Editing() || focus.target != "card" {
		t.Fatalf("expected view mode with card focus, editing=%v focus=%q", c.Editing(), focus.target)
	}
	if !ev.Stopped() || !ev.Prevented() {
		t.Fatal("enter in editor should stop and prevent")
	}
	if saves := rec.saves(); len(saves) != 1 || saves[0].Name != "y" {
		t.Fatalf("unexpected saves: %+v", saves)
	}
	if len(rec.intents) != 1 {
		t.Fatalf("enter must not bubble to the card: %+v", rec.intents)
	}
}

func TestCtrlEnterInsertsNewlineAtCaret(t *testing.T) {
	c, buf, _, rec := newTestCard(t, Props{Task: model.Task{ID: "1", Name: "hello world"}})
	c.ToggleEditMode()
	buf.Select(5, 6)

	ev := &KeyEvent{Code: KeyEnter, Ctrl: true}
	c.HandleKey(ev)

	if !c.Editing() {
		t.Fatal("ctrl+enter must stay in edit mode")
	}
	if len(rec.intents) != 0 {
		t.Fatalf("ctrl+enter must not save: %+v", rec.intents)
	}
	if buf.Value() != "hello\nworld" {
		t.Fatalf("unexpected editor value %q", buf.Value())
	}
	if start, end := buf.Selection(); start != 6 || end != 6 {
		t.Fatalf("caret should follow the newline, got %d..%d", start, end)
	}
	if c.ScrollHeight() != 40 {
		t.Fatalf("expected editor to grow to two lines, got %v", c.ScrollHeight())
	}
	if buf.OffsetHeight() != 40 {
		t.Fatalf("expected host height to follow, got %v", buf.OffsetHeight())
	}
}

func TestOtherEditorKeysStayInEditor(t *testing.T) {
	c, _, _, rec := newTestCard(t, Props{Task: model.Task{ID: "1"}})
	c.ToggleEditMode()
	ev := &KeyEvent{Code: KeyX, Text: "x"}
	c.HandleKey(ev)
	if !ev.Stopped() || ev.Prevented() {
		t.Fatal("typing keys stop propagating but keep their default")
	}
	if !c.Editing() || len(rec.intents) != 0 {
		t.Fatalf("typing x in the editor must not toggle completion: %+v", rec.intents)
	}
}

func TestEnteringEditClearsCachedHeight(t *testing.T) {
	c, buf, _, _ := newTestCard(t, Props{Task: model.Task{ID: "1", Name: "a\nb\nc"}})
	c.ToggleEditMode()
	if c.ScrollHeight() != 60 {
		t.Fatalf("expected three lines of height, got %v", c.ScrollHeight())
	}
	c.ToggleEditMode()
	buf.SetHeight(20)
	c.SetProps(Props{Task: model.Task{ID: "1", Name: "a"}})
	c.ToggleEditMode()
	if c.ScrollHeight() != 0 {
		t.Fatalf("expected cleared height for single line, got %v", c.ScrollHeight())
	}
}

func TestTouchStartOnFocusedCardOpensEditor(t *testing.T) {
	c, _, focus, _ := newTestCard(t, Props{Task: model.Task{ID: "1"}})

	ev := &PointerEvent{}
	c.TouchStart(ev)
	if c.Editing() || ev.Stopped() {
		t.Fatal("touch on an unfocused card should do nothing")
	}

	focus.FocusCard()
	ev = &PointerEvent{}
	c.TouchStart(ev)
	if !c.Editing() || !ev.Stopped() || !ev.Prevented() {
		t.Fatal("touch on a focused card should open the editor")
	}
}

func TestClickPreventsDefaultExceptOnLinks(t *testing.T) {
	c, _, _, _ := newTestCard(t, Props{Task: model.Task{ID: "1"}})
	ev := &PointerEvent{}
	c.Click(ev)
	if !ev.Prevented() || !ev.Stopped() {
		t.Fatal("plain click should be stopped and prevented")
	}
	link := &PointerEvent{OnLink: true}
	c.Click(link)
	if link.Prevented() || !link.Stopped() {
		t.Fatal("link click keeps its default action")
	}
}

func TestMountEntersEditWhenFocusInRegion(t *testing.T) {
	c, _, focus, _ := newTestCard(t, Props{Task: model.Task{ID: "1"}})
	focus.inRegion = true
	c.Mount()
	if !c.Editing() || focus.target != "editor" {
		t.Fatalf("expected edit mode with editor focus, editing=%v focus=%q", c.Editing(), focus.target)
	}

	n, _, nf, _ := newTestCard(t, Props{Task: model.Task{ID: "2"}, IsNew: true})
	nf.inRegion = true
	n.Mount()
	if !n.Editing() {
		t.Fatal("a new card mounted with focus in region stays in edit mode")
	}
}

func TestMountAutoFocus(t *testing.T) {
	c, _, focus, _ := newTestCard(t, Props{Task: model.Task{ID: "1"}, AutoFocus: true})
	c.Mount()
	if c.Editing() || focus.target != "card" {
		t.Fatalf("autofocus should focus the card, editing=%v focus=%q", c.Editing(), focus.target)
	}

	q, _, qf, _ := newTestCard(t, Props{Task: model.Task{ID: "2"}})
	q.Mount()
	if qf.target != "" {
		t.Fatalf("no autofocus should leave focus alone, got %q", qf.target)
	}
}

func TestViewModel(t *testing.T) {
	rules := styling.Rules{{Regex: "milk", ClassName: "dairy", Style: "color: white"}}
	c, _, _, _ := newTestCard(t, Props{
		Task:       model.Task{ID: "1", Name: "buy [milk](https://shop.example)", Completed: true},
		StyleRules: rules,
	})
	vm := c.View()
	if vm.ID != "task-1" {
		t.Fatalf("unexpected id %q", vm.ID)
	}
	if vm.ClassName != "cxb-task cxs-completed" {
		t.Fatalf("unexpected class %q", vm.ClassName)
	}
	if vm.CheckboxClass != "cxe-checkbox-input cxs-checked" {
		t.Fatalf("unexpected checkbox class %q", vm.CheckboxClass)
	}
	if vm.ContentClass != "cxe-task-content dairy" || vm.Styles.CSS() != "color: white" {
		t.Fatalf("unexpected content styling %q / %q", vm.ContentClass, vm.Styles.CSS())
	}
	if !strings.Contains(vm.ContentHTML, `target="_blank"`) || !strings.Contains(vm.ContentHTML, `rel="nofollow"`) {
		t.Fatalf("links should open in a new tab: %q", vm.ContentHTML)
	}

	c.ToggleEditMode()
	vm = c.View()
	if vm.ClassName != "cxb-task cxs-edit cxs-completed" || vm.ContentHTML != "" {
		t.Fatalf("unexpected edit view model: %+v", vm)
	}
	if vm.EditorText != "buy [milk](https://shop.example)" {
		t.Fatalf("editor should show raw text, got %q", vm.EditorText)
	}
}

func TestViewModelEmptyText(t *testing.T) {
	c, _, _, _ := newTestCard(t, Props{Task: model.Task{ID: "1"}})
	if got := c.View().ContentHTML; got != "<p>&nbsp;</p>" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

package widget

import (
	"fmt"

	"github.com/sandeepkv93/taskboard/internal/card"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/styling"
)

// Instance is the handle a host holds for one rendered widget. It is also
// the value passed back to OnSave and OnKeyDown.
type Instance struct {
	widget *Widget
	store  *store.Store
	data   Data
	card   *card.Card
}

func (i *Instance) Card() *card.Card { return i.card }
func (i *Instance) Data() Data       { return i.data }

// Mount attaches the card to the host surface.
func (i *Instance) Mount() { i.card.Mount() }

// ToggleEditMode lets the parent open or close the editor.
func (i *Instance) ToggleEditMode() { i.card.ToggleEditMode() }

// TaskPath is the store path the task is bound to, empty for literal tasks.
func (i *Instance) TaskPath() string { return i.widget.cfg.Task.Bind }

// Set writes a declared key. Bound keys go to the store; literal keys are
// updated on the widget's config so later resolves keep the value.
func (i *Instance) Set(key string, value any) error {
	cfg := &i.widget.cfg
	var bind string
	switch key {
	case KeyTask:
		bind = cfg.Task.Bind
		if bind == "" {
			t, ok := value.(model.Task)
			if !ok {
				return fmt.Errorf("widget: %s expects model.Task, got %T", key, value)
			}
			cfg.Task = Literal(t)
		}
	case KeyStyleRules:
		bind = cfg.StyleRules.Bind
		if bind == "" {
			r, ok := value.(styling.Rules)
			if !ok {
				return fmt.Errorf("widget: %s expects styling.Rules, got %T", key, value)
			}
			cfg.StyleRules = Literal(r)
		}
	case KeyAutoFocus, KeyIsNew:
		p := &cfg.AutoFocus
		if key == KeyIsNew {
			p = &cfg.IsNew
		}
		bind = p.Bind
		if bind == "" {
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("widget: %s expects bool, got %T", key, value)
			}
			*p = Literal(b)
		}
	default:
		return fmt.Errorf("widget: undeclared key %q", key)
	}
	if bind != "" {
		if err := i.store.Set(bind, value); err != nil {
			return err
		}
	}
	return i.Refresh()
}

// Refresh re-resolves the widget's data and re-renders the card.
func (i *Instance) Refresh() error {
	data, err := i.widget.resolve(i.store)
	if err != nil {
		return err
	}
	i.data = data
	i.card.SetProps(data.props())
	return nil
}

// Dispatch applies a card intent: record changes are written back and
// reported through OnSave; unhandled keys go to OnKeyDown when configured.
func (i *Instance) Dispatch(in card.Intent) {
	switch typed := in.(type) {
	case card.CompletionToggled:
		i.save(typed.Task)
	case card.TextSaved:
		i.save(typed.Task)
	case card.KeyForwarded:
		if i.widget.cfg.OnKeyDown != nil {
			i.widget.cfg.OnKeyDown(typed.Event, i)
		}
	}
}

// save writes the record back and reports it. A failed store write goes to
// OnError and still reaches OnSave, which owns persistence.
func (i *Instance) save(t model.Task) {
	if err := i.Set(KeyTask, t); err != nil && i.widget.cfg.OnError != nil {
		i.widget.cfg.OnError(err, i)
	}
	if i.widget.cfg.OnSave != nil {
		i.widget.cfg.OnSave(t, i)
	}
}

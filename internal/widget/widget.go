// Package widget is the declarative wrapper around a task card. It resolves
// the card's data from literal values or store bindings, creates the card,
// and turns the card's intents into store writes and host callbacks.
package widget

import (
	"encoding/json"
	"fmt"

	"github.com/sandeepkv93/taskboard/internal/card"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/styling"
)

// Configuration keys a task widget recognises.
const (
	KeyTask       = "task"
	KeyStyleRules = "styleRules"
	KeyAutoFocus  = "autoFocus"
	KeyIsNew      = "isNew"
)

// Prop is a configuration value given either literally or as a binding to
// a store path.
type Prop[T any] struct {
	Bind  string
	Value T
	set   bool
}

func Literal[T any](v T) Prop[T]       { return Prop[T]{Value: v, set: true} }
func Bound[T any](path string) Prop[T] { return Prop[T]{Bind: path, set: true} }

func (p Prop[T]) IsSet() bool { return p.set || p.Bind != "" }

func (p Prop[T]) resolve(s *store.Store) (T, error) {
	if p.Bind == "" {
		return p.Value, nil
	}
	var out T
	res := s.Get(p.Bind)
	if !res.Exists() {
		return out, nil
	}
	if err := json.Unmarshal([]byte(res.Raw), &out); err != nil {
		return out, fmt.Errorf("widget: decode %s: %w", p.Bind, err)
	}
	return out, nil
}

type (
	SaveFunc    func(task model.Task, inst *Instance)
	KeyDownFunc func(ev card.KeyEvent, inst *Instance)
)

// ErrorFunc receives store write and decode failures raised while applying
// a card intent.
type ErrorFunc func(err error, inst *Instance)

type Config struct {
	// Bind is shorthand for Task: Bound(Bind).
	Bind       string
	Task       Prop[model.Task]
	StyleRules Prop[styling.Rules]
	AutoFocus  Prop[bool]
	IsNew      Prop[bool]
	OnSave     SaveFunc
	OnKeyDown  KeyDownFunc
	OnError    ErrorFunc
}

type Widget struct {
	cfg Config
}

func New(cfg Config) *Widget {
	w := &Widget{cfg: cfg}
	w.init()
	return w
}

func (w *Widget) init() {
	if w.cfg.Bind != "" && !w.cfg.Task.IsSet() {
		w.cfg.Task = Bound[model.Task](w.cfg.Bind)
	}
}

// DeclaredKeys lists the data keys the widget resolves for its card.
func (w *Widget) DeclaredKeys() []string {
	return []string{KeyTask, KeyStyleRules, KeyAutoFocus, KeyIsNew}
}

func (w *Widget) Config() Config { return w.cfg }

// Data is the resolved snapshot handed to the card.
type Data struct {
	Task       model.Task
	StyleRules styling.Rules
	AutoFocus  bool
	IsNew      bool
}

func (d Data) props() card.Props {
	return card.Props{Task: d.Task, StyleRules: d.StyleRules, AutoFocus: d.AutoFocus, IsNew: d.IsNew}
}

func (w *Widget) resolve(s *store.Store) (Data, error) {
	var (
		d   Data
		err error
	)
	if d.Task, err = w.cfg.Task.resolve(s); err != nil {
		return Data{}, err
	}
	if d.StyleRules, err = w.cfg.StyleRules.resolve(s); err != nil {
		return Data{}, err
	}
	if d.AutoFocus, err = w.cfg.AutoFocus.resolve(s); err != nil {
		return Data{}, err
	}
	if d.IsNew, err = w.cfg.IsNew.resolve(s); err != nil {
		return Data{}, err
	}
	return d, nil
}

// Instantiate resolves the widget's data and creates its card. The env's
// Sink is replaced by the instance.
func (w *Widget) Instantiate(s *store.Store, env card.Env) (*Instance, error) {
	data, err := w.resolve(s)
	if err != nil {
		return nil, err
	}
	inst := &Instance{widget: w, store: s, data: data}
	env.Sink = inst
	inst.card = card.New(data.props(), env)
	return inst, nil
}

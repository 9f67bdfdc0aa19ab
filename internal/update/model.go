package update

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/card"
	"github.com/sandeepkv93/taskboard/internal/config"
	"github.com/sandeepkv93/taskboard/internal/logging"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/widget"
)

const doubleClickWindow = 400 * time.Millisecond

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Down    string
	Up      string
	Add     string
	Delete  string
	Palette string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// Model is the Bubble Tea host for the task board. Everything the cards
// hold references to lives in the shared session so value copies of the
// model stay consistent.
type Model struct {
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	s *session
}

type session struct {
	ctx   context.Context
	cfg   config.Config
	board *board.Board
	store *store.Store
	log   *log.Logger
	now   func() time.Time

	editor *textEditor
	ring   *focusRing
	cards  []*widget.Instance

	commandInput textinput.Model
	helpModel    help.Model
	progress     progress.Model
	boardView    viewport.Model
	offsets      []int
	boardRows    int
	width        int
	height       int
	rendered     map[string]string

	lastClick   clickRecord
	forwarded   []card.KeyEvent
	errs        []error
	saved       int
	unsubscribe func()
}

type clickRecord struct {
	id string
	at time.Time
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ReloadMsg asks the host to rebuild every card from the store, after an
// import for example.
type ReloadMsg struct{}

func New(ctx context.Context, b *board.Board, cfg config.Config, logger *log.Logger) (Model, error) {
	if b == nil {
		return Model{}, errors.New("update: board is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	s := &session{
		ctx:      ctx,
		cfg:      cfg,
		board:    b,
		store:    b.Store(),
		log:      logger,
		now:      time.Now,
		editor:   newTextEditor(cfg.CardWidth, cfg.EditorMaxHeight),
		width:    cfg.CardWidth + 10,
		height:   24,
		rendered: make(map[string]string),
	}
	s.ring = &focusRing{editor: s.editor}
	s.initBubbleComponents()
	s.unsubscribe = s.store.Subscribe(s.onStoreWrite)

	m := Model{
		Keys: GlobalKeyMap{
			Down:    "j",
			Up:      "k",
			Add:     "o",
			Delete:  "d",
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		s: s,
	}
	if err := s.rebuild(""); err != nil {
		return Model{}, err
	}
	s.sync()
	return m, nil
}

// SetNow replaces the clock used for timestamps and click timing.
func (m Model) SetNow(fn func() time.Time) {
	m.s.now = fn
	m.s.board.SetNow(fn)
	for _, inst := range m.s.cards {
		inst.Card().SetNow(fn)
	}
}

// Close detaches the model from the store.
func (m Model) Close() {
	if m.s.unsubscribe != nil {
		m.s.unsubscribe()
		m.s.unsubscribe = nil
	}
}

func (s *session) initBubbleComponents() {
	s.commandInput = textinput.New()
	s.commandInput.Placeholder = "add <text> | done [id] | edit [id] | delete [id] | export <path>"
	s.commandInput.Prompt = "/"
	s.commandInput.CharLimit = 256

	s.helpModel = help.New()
	s.helpModel.ShowAll = true

	s.progress = progress.New(progress.WithWidth(20), progress.WithSolidFill("10"))

	s.boardView = viewport.New(s.width, s.boardHeight())
}

func (s *session) boardHeight() int {
	return max(3, s.height-6)
}

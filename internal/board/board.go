// Package board is the host application model: the ordered task list in the
// reactive store, kept in step with the sqlite repository.
package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sandeepkv93/taskboard/internal/card"
	"github.com/sandeepkv93/taskboard/internal/logging"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/styling"
	"github.com/sandeepkv93/taskboard/internal/views"
)

// Store paths owned by the board.
const (
	PathTasks      = "tasks"
	PathStyleRules = "styleRules"
	PathAutoFocus  = "autoFocus"
)

var ErrInvalidImport = errors.New("board: invalid import")

type Board struct {
	repo  storage.Repository
	store *store.Store
	log   *log.Logger
	now   func() time.Time
}

// Open loads every persisted task into the store under PathTasks.
func Open(ctx context.Context, repo storage.Repository, st *store.Store, logger *log.Logger) (*Board, error) {
	if repo == nil || st == nil {
		return nil, errors.New("board: repository and store are required")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	b := &Board{repo: repo, store: st, log: logger, now: time.Now}

	rows, err := repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, fromRow(row))
	}
	if err := st.Set(PathTasks, tasks); err != nil {
		return nil, err
	}
	if !st.Get(PathStyleRules).Exists() {
		if err := st.Set(PathStyleRules, styling.Rules{}); err != nil {
			return nil, err
		}
	}
	logger.Debug("board opened", "tasks", len(tasks))
	return b, nil
}

func (b *Board) SetNow(fn func() time.Time) { b.now = fn }
func (b *Board) Store() *store.Store        { return b.store }

// Tasks decodes the current task list from the store.
func (b *Board) Tasks() []model.Task {
	out := make([]model.Task, 0)
	res := b.store.Get(PathTasks)
	if !res.IsArray() {
		return out
	}
	if err := json.Unmarshal([]byte(res.Raw), &out); err != nil {
		b.log.Error("decode tasks", "err", err)
		return []model.Task{}
	}
	return out
}

func (b *Board) StyleRules() styling.Rules {
	var rules styling.Rules
	res := b.store.Get(PathStyleRules)
	if !res.Exists() {
		return rules
	}
	if err := json.Unmarshal([]byte(res.Raw), &rules); err != nil {
		b.log.Warn("decode style rules", "err", err)
		return nil
	}
	return rules
}

// Index returns the position of the task with id, or -1.
func (b *Board) Index(id string) int {
	for i, res := range b.store.Get(PathTasks).Array() {
		if res.Get("id").String() == id {
			return i
		}
	}
	return -1
}

// Path is the store path a widget binds to for the task with id.
func (b *Board) Path(id string) string {
	idx := b.Index(id)
	if idx < 0 {
		return ""
	}
	return PathTasks + "." + strconv.Itoa(idx)
}

// Add appends a new task and persists it. The returned task carries IsNew so
// its card opens in edit mode.
func (b *Board) Add(ctx context.Context, name string) (model.Task, error) {
	task := model.Task{ID: uuid.NewString(), Name: name, IsNew: true}
	position := len(b.store.Get(PathTasks).Array())
	if err := b.repo.CreateTask(ctx, toRow(task, position, b.now())); err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	if err := b.store.Set(PathTasks+".-1", task); err != nil {
		return model.Task{}, err
	}
	b.log.Info("task added", "id", task.ID)
	return task, nil
}

// Save replaces the record with the same id and upserts it. Unknown ids are
// appended.
func (b *Board) Save(ctx context.Context, task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}
	idx := b.Index(task.ID)
	path := PathTasks + ".-1"
	if idx >= 0 {
		path = PathTasks + "." + strconv.Itoa(idx)
	} else {
		idx = len(b.store.Get(PathTasks).Array())
	}
	if err := b.repo.UpsertTask(ctx, toRow(task, idx, b.now())); err != nil {
		return fmt.Errorf("save task %s: %w", task.ID, err)
	}
	if err := b.store.Set(path, task); err != nil {
		return err
	}
	b.log.Debug("task saved", "id", task.ID, "completed", task.Completed)
	return nil
}

// SetCompleted marks the task with id and saves it.
func (b *Board) SetCompleted(ctx context.Context, id string, completed bool) (model.Task, error) {
	task, err := b.get(id)
	if err != nil {
		return model.Task{}, err
	}
	task = task.WithCompleted(completed, b.now())
	return task, b.Save(ctx, task)
}

// Rename replaces the text of the task with id and saves it.
func (b *Board) Rename(ctx context.Context, id, name string) (model.Task, error) {
	task, err := b.get(id)
	if err != nil {
		return model.Task{}, err
	}
	task = task.WithName(name, b.now())
	return task, b.Save(ctx, task)
}

// Delete removes the task and renumbers the positions of the tasks after it.
func (b *Board) Delete(ctx context.Context, id string) error {
	idx := b.Index(id)
	if idx < 0 {
		return fmt.Errorf("delete task %s: %w", id, storage.ErrNotFound)
	}
	if err := b.repo.DeleteTask(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if err := b.store.Delete(PathTasks + "." + strconv.Itoa(idx)); err != nil {
		return err
	}
	tasks := b.Tasks()
	for i := idx; i < len(tasks); i++ {
		if err := b.repo.UpsertTask(ctx, toRow(tasks[i], i, b.now())); err != nil {
			return fmt.Errorf("reorder task %s: %w", tasks[i].ID, err)
		}
	}
	b.log.Info("task deleted", "id", id)
	return nil
}

// Import reads a JSON array of tasks, validates it and saves every record.
// Nothing is written unless the whole document is valid.
func (b *Board) Import(ctx context.Context, r io.Reader) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read import: %w", err)
	}
	schema, err := compileImportSchema()
	if err != nil {
		return 0, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	if err := schema.Validate(doc); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidImport, strings.Join(schemaMessages(err), "; "))
	}

	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	for i, task := range tasks {
		if err := task.Validate(); err != nil {
			return 0, fmt.Errorf("%w: /%d: %v", ErrInvalidImport, i, err)
		}
	}
	for i, task := range tasks {
		task.IsNew = false
		if err := b.Save(ctx, task); err != nil {
			return i, err
		}
	}
	b.log.Info("tasks imported", "count", len(tasks))
	return len(tasks), nil
}

// Views renders every task as a view-mode card.
func (b *Board) Views() []card.ViewModel {
	rules := b.StyleRules()
	tasks := b.Tasks()
	out := make([]card.ViewModel, 0, len(tasks))
	for _, t := range tasks {
		t.IsNew = false
		out = append(out, card.New(card.Props{Task: t, StyleRules: rules}, card.Env{}).View())
	}
	return out
}

// ExportHTML writes the board as a standalone HTML page.
func (b *Board) ExportHTML(w io.Writer) error {
	return views.RenderBoardHTML(w, "taskboard", b.Views())
}

func (b *Board) get(id string) (model.Task, error) {
	idx := b.Index(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("task %s: %w", id, storage.ErrNotFound)
	}
	return b.Tasks()[idx], nil
}

func fromRow(row storage.Task) model.Task {
	out := model.Task{ID: row.ID, Name: row.Name, Completed: row.Completed}
	if row.CompletedAt != nil {
		out.CompletedDate = model.FormatTimestamp(*row.CompletedAt)
	}
	if row.LastChangeAt != nil {
		out.LastChange = model.FormatTimestamp(*row.LastChangeAt)
	}
	return out
}

// toRow converts a task for storage. Timestamps were validated by
// model.Task.Validate, so unparsable values are stored as null.
func toRow(t model.Task, position int, createdAt time.Time) storage.Task {
	row := storage.Task{
		ID:        t.ID,
		Name:      t.Name,
		Completed: t.Completed,
		Position:  position,
		CreatedAt: createdAt,
	}
	if ts, err := model.ParseTimestamp(t.CompletedDate); err == nil && t.CompletedDate != "" {
		row.CompletedAt = &ts
	}
	if ts, err := model.ParseTimestamp(t.LastChange); err == nil && t.LastChange != "" {
		row.LastChangeAt = &ts
	}
	return row
}

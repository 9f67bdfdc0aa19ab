package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 form used for every stored timestamp:
// UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var (
	ErrMissingID        = errors.New("model: task id is required")
	ErrInvalidTimestamp = errors.New("model: invalid task timestamp")
)

type Task struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Completed     bool   `json:"completed"`
	CompletedDate string `json:"completedDate,omitempty"`
	LastChange    string `json:"lastChange,omitempty"`
	IsNew         bool   `json:"isNew,omitempty"`
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func ParseTimestamp(s string) (time.Time, error) {
	out, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return out.UTC(), nil
}

// WithCompleted returns a copy with the completion flag set and the
// completion date stamped, whether or not the flag actually changed.
func (t Task) WithCompleted(completed bool, now time.Time) Task {
	out := t
	out.Completed = completed
	out.CompletedDate = FormatTimestamp(now)
	return out
}

// WithName returns a copy carrying the edited text. The transient IsNew
// marker is dropped on the first save.
func (t Task) WithName(name string, now time.Time) Task {
	out := t
	out.Name = name
	out.LastChange = FormatTimestamp(now)
	out.IsNew = false
	return out
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	if t.CompletedDate != "" {
		if _, err := ParseTimestamp(t.CompletedDate); err != nil {
			return fmt.Errorf("completedDate: %w", err)
		}
	}
	if t.LastChange != "" {
		if _, err := ParseTimestamp(t.LastChange); err != nil {
			return fmt.Errorf("lastChange: %w", err)
		}
	}
	return nil
}

// UnmarshalJSON accepts numeric ids as well as strings so records written by
// other tools keep their identity.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var raw struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Task(raw.plain)
	t.ID = ""
	if len(raw.ID) == 0 || string(raw.ID) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw.ID, &s); err == nil {
		t.ID = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw.ID, &n); err != nil {
		return fmt.Errorf("model: task id must be a string or number: %s", raw.ID)
	}
	if i, err := n.Int64(); err == nil {
		t.ID = strconv.FormatInt(i, 10)
		return nil
	}
	t.ID = n.String()
	return nil
}

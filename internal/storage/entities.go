package storage

import "time"

type Task struct {
	ID           string
	Name         string
	Completed    bool
	CompletedAt  *time.Time
	LastChangeAt *time.Time
	Position     int
	CreatedAt    time.Time
}

type TaskListFilter struct {
	Completed *bool
	Limit     int
	Offset    int
}

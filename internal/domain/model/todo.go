package model

import "time"

// TodoStatus represents the workflow state of a todo.
type TodoStatus string

const (
	TodoStatusTodo       TodoStatus = "todo"
	TodoStatusInProgress TodoStatus = "in_progress"
	TodoStatusReview     TodoStatus = "review"
	TodoStatusDone       TodoStatus = "done"
)

// TodoPriority represents the urgency of a todo, ascending.
type TodoPriority int

const (
	TodoPriorityLow    TodoPriority = 1
	TodoPriorityMedium TodoPriority = 2
	TodoPriorityHigh   TodoPriority = 3
	TodoPriorityUrgent TodoPriority = 4
)

// Todo represents a remote task as returned by the task API.
type Todo struct {
	ID          string
	Title       string
	Description string
	IsCompleted bool
	Status      TodoStatus
	Priority    TodoPriority
	DueDate     *time.Time
	CompletedAt *time.Time
	ProjectID   string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tags        []Tag
}

// TodoDraft holds the fields for creating a todo.
type TodoDraft struct {
	Title       string
	Description string
	Status      TodoStatus
	Priority    TodoPriority
	DueDate     *time.Time
	ProjectID   string
	TagIDs      []string
}

// TodoPatch holds optional fields for a partial todo update.
// Nil fields are left unchanged by the server.
type TodoPatch struct {
	Title       *string
	Description *string
	IsCompleted *bool
	Status      *TodoStatus
	Priority    *TodoPriority
	DueDate     *time.Time
	ProjectID   *string
	TagIDs      []string
}

// TodoFilter narrows a todo listing. Nil/empty fields are not applied.
type TodoFilter struct {
	Status      *TodoStatus
	IsCompleted *bool
	Priority    *TodoPriority
	ProjectID   string
	TagID       string
}

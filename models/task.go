package models

import "time"

type TaskStatus string

const (
	TaskOpen      TaskStatus = "open"
	TaskSubmitted TaskStatus = "submitted"
	TaskGraded    TaskStatus = "graded"
)

type Task struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	AssigneeID string     `json:"assignee_id"`
	Title      string     `json:"title"`
	Notes      string     `json:"notes,omitempty"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	Status     TaskStatus `json:"status"`
	Grade      string     `json:"grade,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

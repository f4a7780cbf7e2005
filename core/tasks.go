package core

import (
	"errors"
	"time"

	"homeroom/models"
	"homeroom/store"
	"homeroom/utils"
)

// TaskService is the productivity side: assignable tasks with a simple
// open -> submitted -> graded lifecycle.
type TaskService struct {
	tasks store.TaskStore
	users store.UserStore

	now func() time.Time
}

func NewTaskService(s store.Stores) *TaskService {
	return &TaskService{tasks: s.Tasks, users: s.Users, now: time.Now}
}

func (s *TaskService) Create(ownerID, assigneeID, title, notes string, dueAt *time.Time) (*models.Task, error) {
	if title == "" {
		return nil, invalidf("task title is required")
	}
	if assigneeID == "" {
		assigneeID = ownerID
	}
	if assigneeID != ownerID {
		exists, err := s.users.Exists(assigneeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, notFoundf("assignee not found")
		}
	}

	now := s.now()
	t := &models.Task{
		ID:         utils.GenerateUUID(),
		OwnerID:    ownerID,
		AssigneeID: assigneeID,
		Title:      title,
		Notes:      notes,
		DueAt:      dueAt,
		Status:     models.TaskOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.tasks.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Get(id string) (*models.Task, error) {
	t, err := s.tasks.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundf("task not found")
		}
		return nil, err
	}
	return t, nil
}

// Submit moves an open task to submitted; only the assignee may submit.
func (s *TaskService) Submit(id, byUserID string) (*models.Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if t.AssigneeID != byUserID {
		return nil, forbiddenf("only the assignee can submit")
	}
	if t.Status != models.TaskOpen {
		return nil, conflictf("task already %s", t.Status)
	}
	t.Status = models.TaskSubmitted
	t.UpdatedAt = s.now()
	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Grade records the grade on a submitted task; only the owner may grade.
func (s *TaskService) Grade(id, byUserID, grade string) (*models.Task, error) {
	if grade == "" {
		return nil, invalidf("grade is required")
	}
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != byUserID {
		return nil, forbiddenf("only the owner can grade")
	}
	if t.Status != models.TaskSubmitted {
		return nil, conflictf("task is %s, not submitted", t.Status)
	}
	t.Status = models.TaskGraded
	t.Grade = grade
	t.UpdatedAt = s.now()
	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Update(id, byUserID, title, notes string, dueAt *time.Time) (*models.Task, error) {
	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if t.OwnerID != byUserID {
		return nil, forbiddenf("only the owner can update a task")
	}
	if title != "" {
		t.Title = title
	}
	if notes != "" {
		t.Notes = notes
	}
	if dueAt != nil {
		t.DueAt = dueAt
	}
	t.UpdatedAt = s.now()
	if err := s.tasks.Update(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(id, byUserID string) error {
	t, err := s.Get(id)
	if err != nil {
		return err
	}
	if t.OwnerID != byUserID {
		return forbiddenf("only the owner can delete a task")
	}
	return s.tasks.Delete(id)
}

func (s *TaskService) ListOwned(ownerID string) ([]models.Task, error) {
	return s.tasks.ListByOwner(ownerID)
}

func (s *TaskService) ListAssigned(assigneeID string) ([]models.Task, error) {
	return s.tasks.ListByAssignee(assigneeID)
}

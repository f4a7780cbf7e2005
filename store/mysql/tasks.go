package mysql

import (
	"database/sql"

	"homeroom/models"
)

type taskStore struct {
	db *sql.DB
}

const taskCols = "id, owner_id, assignee_id, title, notes, due_at, status, grade, created_at, updated_at"

func (s *taskStore) Create(t *models.Task) error {
	_, err := s.db.Exec(
		"INSERT INTO tasks ("+taskCols+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		t.ID, t.OwnerID, t.AssigneeID, t.Title, t.Notes, t.DueAt, t.Status, t.Grade, t.CreatedAt, t.UpdatedAt,
	)
	return translate(err)
}

func (s *taskStore) Get(id string) (*models.Task, error) {
	row := s.db.QueryRow("SELECT "+taskCols+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row.Scan)
	if err != nil {
		return nil, translate(err)
	}
	return t, nil
}

func (s *taskStore) Update(t *models.Task) error {
	res, err := s.db.Exec(
		"UPDATE tasks SET assignee_id = ?, title = ?, notes = ?, due_at = ?, status = ?, grade = ?, updated_at = ? WHERE id = ?",
		t.AssigneeID, t.Title, t.Notes, t.DueAt, t.Status, t.Grade, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (s *taskStore) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (s *taskStore) ListByOwner(ownerID string) ([]models.Task, error) {
	return s.list("SELECT "+taskCols+" FROM tasks WHERE owner_id = ? ORDER BY created_at DESC", ownerID)
}

func (s *taskStore) ListByAssignee(assigneeID string) ([]models.Task, error) {
	return s.list("SELECT "+taskCols+" FROM tasks WHERE assignee_id = ? ORDER BY created_at DESC", assigneeID)
}

func (s *taskStore) list(query string, arg interface{}) ([]models.Task, error) {
	rows, err := s.db.Query(query, arg)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func scanTask(scan func(...interface{}) error) (*models.Task, error) {
	var t models.Task
	var due sql.NullTime
	var notes, grade sql.NullString
	if err := scan(&t.ID, &t.OwnerID, &t.AssigneeID, &t.Title, &notes, &due, &t.Status, &grade, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.Notes = notes.String
	t.Grade = grade.String
	if due.Valid {
		t.DueAt = &due.Time
	}
	return &t, nil
}

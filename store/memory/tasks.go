package memory

import (
	"sort"

	"homeroom/models"
	"homeroom/store"
)

type taskStore struct {
	b *Backend
}

func (s *taskStore) Create(t *models.Task) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if _, ok := s.b.tasks[t.ID]; ok {
		return store.ErrDuplicate
	}
	cp := *t
	s.b.tasks[t.ID] = &cp
	return nil
}

func (s *taskStore) Get(id string) (*models.Task, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	t, ok := s.b.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *taskStore) Update(t *models.Task) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if _, ok := s.b.tasks[t.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *t
	s.b.tasks[t.ID] = &cp
	return nil
}

func (s *taskStore) Delete(id string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if _, ok := s.b.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.b.tasks, id)
	return nil
}

func (s *taskStore) ListByOwner(ownerID string) ([]models.Task, error) {
	return s.list(func(t *models.Task) bool { return t.OwnerID == ownerID })
}

func (s *taskStore) ListByAssignee(assigneeID string) ([]models.Task, error) {
	return s.list(func(t *models.Task) bool { return t.AssigneeID == assigneeID })
}

func (s *taskStore) list(match func(*models.Task) bool) ([]models.Task, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	var out []models.Task
	for _, t := range s.b.tasks {
		if match(t) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

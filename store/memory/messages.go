package memory

import (
	"time"

	"homeroom/models"
	"homeroom/store"
)

type messageStore struct {
	b *Backend
}

func (s *messageStore) Create(m *models.Message) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if _, ok := s.b.messages[m.ID]; ok {
		return store.ErrDuplicate
	}
	s.b.messages[m.ID] = m.Clone()
	return nil
}

func (s *messageStore) Get(id string) (*models.Message, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	m, ok := s.b.messages[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return m.Clone(), nil
}

func (s *messageStore) Update(m *models.Message) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if _, ok := s.b.messages[m.ID]; !ok {
		return store.ErrNotFound
	}
	s.b.messages[m.ID] = m.Clone()
	return nil
}

func (s *messageStore) Delete(id string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if _, ok := s.b.messages[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.b.messages, id)
	return nil
}

func (s *messageStore) MarkRead(id, userID string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	m, ok := s.b.messages[id]
	if !ok {
		return store.ErrNotFound
	}
	if !m.HasRead(userID) {
		m.ReadBy = append(m.ReadBy, userID)
	}
	return nil
}

func (s *messageStore) ListDirect(userA, userB string, limit int, before time.Time) ([]models.Message, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	var out []models.Message
	for _, m := range s.b.messages {
		if m.Kind != models.KindDirect {
			continue
		}
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, *m.Clone())
		}
	}
	return window(out, limit, before), nil
}

func (s *messageStore) ListGroup(groupID string, limit int, before time.Time) ([]models.Message, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	var out []models.Message
	for _, m := range s.b.messages {
		if m.Kind == models.KindGroup && m.GroupID == groupID {
			out = append(out, *m.Clone())
		}
	}
	return window(out, limit, before), nil
}

func (s *messageStore) ListDirectInvolving(userID string) ([]models.Message, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	var out []models.Message
	for _, m := range s.b.messages {
		if m.Kind != models.KindDirect {
			continue
		}
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, *m.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *messageStore) ListGroups(groupIDs []string) ([]models.Message, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	wanted := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		wanted[id] = true
	}

	var out []models.Message
	for _, m := range s.b.messages {
		if m.Kind == models.KindGroup && wanted[m.GroupID] {
			out = append(out, *m.Clone())
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func window(msgs []models.Message, limit int, before time.Time) []models.Message {
	if !before.IsZero() {
		filtered := msgs[:0]
		for _, m := range msgs {
			if m.CreatedAt.Before(before) {
				filtered = append(filtered, m)
			}
		}
		msgs = filtered
	}
	sortNewestFirst(msgs)
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[:limit]
	}
	return msgs
}

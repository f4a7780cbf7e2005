package memory

import (
	"sort"
	"strings"

	"homeroom/models"
	"homeroom/store"
)

type userStore struct {
	b *Backend
}

func (s *userStore) Create(u *models.User) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if _, ok := s.b.users[u.ID]; ok {
		return store.ErrDuplicate
	}
	for _, existing := range s.b.users {
		if existing.Handle == u.Handle {
			return store.ErrDuplicate
		}
	}
	cp := *u
	s.b.users[u.ID] = &cp
	return nil
}

func (s *userStore) Get(id string) (*models.User, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	u, ok := s.b.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *userStore) GetByHandle(handle string) (*models.User, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	for _, u := range s.b.users {
		if u.Handle == handle {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *userStore) Exists(id string) (bool, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()
	_, ok := s.b.users[id]
	return ok, nil
}

func (s *userStore) Update(u *models.User) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if _, ok := s.b.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *u
	s.b.users[u.ID] = &cp
	return nil
}

func (s *userStore) List(exceptID string) ([]models.User, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	var users []models.User
	for _, u := range s.b.users {
		if u.ID == exceptID {
			continue
		}
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Handle < users[j].Handle })
	return users, nil
}

func (s *userStore) Search(query string, limit int) ([]models.User, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	q := strings.ToLower(query)
	var users []models.User
	for _, u := range s.b.users {
		if strings.Contains(strings.ToLower(u.Handle), q) ||
			strings.Contains(strings.ToLower(u.DisplayName), q) {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Handle < users[j].Handle })
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (s *userStore) FriendIDs(userID string) ([]string, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	ids := make([]string, 0, len(s.b.friendSets[userID]))
	for id := range s.b.friendSets[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *userStore) AddFriend(a, b string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	s.addToSet(a, b)
	s.addToSet(b, a)
	return nil
}

func (s *userStore) RemoveFriend(a, b string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	delete(s.b.friendSets[a], b)
	delete(s.b.friendSets[b], a)
	return nil
}

func (s *userStore) addToSet(owner, friend string) {
	if s.b.friendSets[owner] == nil {
		s.b.friendSets[owner] = make(map[string]bool)
	}
	s.b.friendSets[owner][friend] = true
}

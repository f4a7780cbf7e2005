package memory

import (
	"sort"

	"homeroom/models"
	"homeroom/store"
)

type friendshipStore struct {
	b *Backend
}

func (s *friendshipStore) Create(f *models.Friendship) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	key := pairKey(f.PartyLow, f.PartyHigh)
	if _, ok := s.b.pairs[key]; ok {
		return store.ErrDuplicate
	}
	cp := *f
	s.b.friendships[f.ID] = &cp
	s.b.pairs[key] = f.ID
	return nil
}

func (s *friendshipStore) Get(id string) (*models.Friendship, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	f, ok := s.b.friendships[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (s *friendshipStore) GetByPair(low, high string) (*models.Friendship, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	id, ok := s.b.pairs[pairKey(low, high)]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *s.b.friendships[id]
	return &cp, nil
}

func (s *friendshipStore) Update(f *models.Friendship) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if _, ok := s.b.friendships[f.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *f
	s.b.friendships[f.ID] = &cp
	return nil
}

func (s *friendshipStore) Delete(id string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	f, ok := s.b.friendships[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.b.pairs, pairKey(f.PartyLow, f.PartyHigh))
	delete(s.b.friendships, id)
	return nil
}

func (s *friendshipStore) ListByParty(userID string) ([]models.Friendship, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	var out []models.Friendship
	for _, f := range s.b.friendships {
		if f.HasParty(userID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

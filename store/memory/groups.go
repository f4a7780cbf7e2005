package memory

import (
	"sort"

	"homeroom/models"
	"homeroom/store"
)

type groupStore struct {
	b *Backend
}

func cloneGroup(g *models.Group) *models.Group {
	cp := *g
	cp.Members = append([]models.GroupMember(nil), g.Members...)
	return &cp
}

func (s *groupStore) Create(g *models.Group) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	if _, ok := s.b.groups[g.ID]; ok {
		return store.ErrDuplicate
	}
	if _, ok := s.b.invites[g.InviteCode]; ok {
		return store.ErrDuplicate
	}
	s.b.groups[g.ID] = cloneGroup(g)
	s.b.invites[g.InviteCode] = g.ID
	return nil
}

func (s *groupStore) Get(id string) (*models.Group, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	g, ok := s.b.groups[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneGroup(g), nil
}

func (s *groupStore) GetByInviteCode(code string) (*models.Group, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	id, ok := s.b.invites[code]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneGroup(s.b.groups[id]), nil
}

func (s *groupStore) Update(g *models.Group) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	old, ok := s.b.groups[g.ID]
	if !ok {
		return store.ErrNotFound
	}
	// membership and invite code change through their own operations
	cp := cloneGroup(old)
	cp.Name = g.Name
	cp.Description = g.Description
	cp.OwnerID = g.OwnerID
	cp.UpdatedAt = g.UpdatedAt
	s.b.groups[g.ID] = cp
	return nil
}

func (s *groupStore) Delete(id string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	g, ok := s.b.groups[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.b.invites, g.InviteCode)
	delete(s.b.groups, id)
	return nil
}

func (s *groupStore) AddMember(groupID string, m models.GroupMember) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	g, ok := s.b.groups[groupID]
	if !ok {
		return store.ErrNotFound
	}
	if g.IsMember(m.UserID) {
		return store.ErrDuplicate
	}
	g.Members = append(g.Members, m)
	return nil
}

func (s *groupStore) RemoveMember(groupID, userID string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	g, ok := s.b.groups[groupID]
	if !ok {
		return store.ErrNotFound
	}
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *groupStore) UpdateMemberRole(groupID, userID string, role models.GroupRole) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	g, ok := s.b.groups[groupID]
	if !ok {
		return store.ErrNotFound
	}
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			g.Members[i].Role = role
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *groupStore) SetInviteCode(groupID, code string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	g, ok := s.b.groups[groupID]
	if !ok {
		return store.ErrNotFound
	}
	if owner, taken := s.b.invites[code]; taken && owner != groupID {
		return store.ErrDuplicate
	}
	delete(s.b.invites, g.InviteCode)
	g.InviteCode = code
	s.b.invites[code] = groupID
	return nil
}

func (s *groupStore) ListByMember(userID string) ([]models.Group, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	var out []models.Group
	for _, g := range s.b.groups {
		if g.IsMember(userID) {
			out = append(out, *cloneGroup(g))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

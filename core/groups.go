package core

import (
	"errors"
	"time"

	"homeroom/models"
	"homeroom/store"
	"homeroom/utils"
)

// GroupService is the membership registry: roster, per-member role, and
// the invite-code join flow. Policy that belongs to the caller (owner
// cannot leave, who may manage members) is enforced at the handler layer.
type GroupService struct {
	groups store.GroupStore
	users  store.UserStore

	now func() time.Time
}

func NewGroupService(s store.Stores) *GroupService {
	return &GroupService{groups: s.Groups, users: s.Users, now: time.Now}
}

func validRole(r models.GroupRole) bool {
	switch r {
	case models.RoleAdmin, models.RoleModerator, models.RoleMember:
		return true
	}
	return false
}

// Create builds the group with the owner as first member in role admin,
// then every distinct known member id. Unknown ids are skipped.
func (s *GroupService) Create(name, description, ownerID string, memberIDs []string) (*models.Group, error) {
	if name == "" {
		return nil, invalidf("group name is required")
	}
	if err := s.requireUser(ownerID); err != nil {
		return nil, err
	}

	now := s.now()
	g := &models.Group{
		ID:          utils.GenerateUUID(),
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		InviteCode:  utils.GenerateInviteCode(),
		Members: []models.GroupMember{
			{UserID: ownerID, Role: models.RoleAdmin, JoinedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	seen := map[string]bool{ownerID: true}
	for _, id := range memberIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if exists, err := s.users.Exists(id); err != nil || !exists {
			continue
		}
		g.Members = append(g.Members, models.GroupMember{
			UserID: id, Role: models.RoleMember, JoinedAt: now,
		})
	}

	for attempt := 0; ; attempt++ {
		err := s.groups.Create(g)
		if err == nil {
			return g, nil
		}
		// invite codes are random; retry a fresh one on collision
		if errors.Is(err, store.ErrDuplicate) && attempt < 3 {
			g.InviteCode = utils.GenerateInviteCode()
			continue
		}
		return nil, err
	}
}

func (s *GroupService) Get(groupID string) (*models.Group, error) {
	g, err := s.groups.Get(groupID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundf("group not found")
		}
		return nil, err
	}
	return g, nil
}

func (s *GroupService) ListForUser(userID string) ([]models.Group, error) {
	return s.groups.ListByMember(userID)
}

func (s *GroupService) AddMember(groupID, userID string, role models.GroupRole) error {
	if role == "" {
		role = models.RoleMember
	}
	if !validRole(role) {
		return invalidf("unknown role %q", role)
	}
	if err := s.requireUser(userID); err != nil {
		return err
	}

	err := s.groups.AddMember(groupID, models.GroupMember{
		UserID: userID, Role: role, JoinedAt: s.now(),
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return notFoundf("group not found")
	case errors.Is(err, store.ErrDuplicate):
		return conflictf("already a member")
	}
	return err
}

// RemoveMember deletes the roster entry. It deliberately does not guard
// the owner: owner removal policy (only via delete or ownership transfer)
// belongs to the caller.
func (s *GroupService) RemoveMember(groupID, userID string) error {
	err := s.groups.RemoveMember(groupID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("group or member not found")
	}
	return err
}

// UpdateRole changes a member's role. The owner's role is immutable here;
// ownership moves only through TransferOwnership.
func (s *GroupService) UpdateRole(groupID, userID string, role models.GroupRole) error {
	if !validRole(role) {
		return invalidf("unknown role %q", role)
	}

	g, err := s.Get(groupID)
	if err != nil {
		return err
	}
	if g.OwnerID == userID {
		return forbiddenf("cannot change the owner's role")
	}

	err = s.groups.UpdateMemberRole(groupID, userID, role)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("member not found")
	}
	return err
}

// JoinByInviteCode adds the user with the default role. Both a bad code
// and an existing membership are reported without revealing which, so the
// code cannot be used to probe membership.
func (s *GroupService) JoinByInviteCode(code, userID string) (*models.Group, error) {
	g, err := s.groups.GetByInviteCode(code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundf("invalid invite code")
		}
		return nil, err
	}
	if err := s.AddMember(g.ID, userID, models.RoleMember); err != nil {
		if KindOf(err) == KindConflict {
			return nil, conflictf("invalid code or already joined")
		}
		return nil, err
	}
	return s.Get(g.ID)
}

// RegenerateInviteCode replaces the code; the old one is invalid at once.
func (s *GroupService) RegenerateInviteCode(groupID string) (string, error) {
	for attempt := 0; ; attempt++ {
		code := utils.GenerateInviteCode()
		err := s.groups.SetInviteCode(groupID, code)
		switch {
		case err == nil:
			return code, nil
		case errors.Is(err, store.ErrNotFound):
			return "", notFoundf("group not found")
		case errors.Is(err, store.ErrDuplicate) && attempt < 3:
			continue
		default:
			return "", err
		}
	}
}

// TransferOwnership makes an existing member the owner and promotes them
// to admin. The previous owner stays on the roster as admin.
func (s *GroupService) TransferOwnership(groupID, newOwnerID string) (*models.Group, error) {
	g, err := s.Get(groupID)
	if err != nil {
		return nil, err
	}
	if !g.IsMember(newOwnerID) {
		return nil, notFoundf("new owner is not a member")
	}
	if g.OwnerID == newOwnerID {
		return g, nil
	}

	if err := s.groups.UpdateMemberRole(groupID, newOwnerID, models.RoleAdmin); err != nil {
		return nil, err
	}
	g.OwnerID = newOwnerID
	g.UpdatedAt = s.now()
	if err := s.groups.Update(g); err != nil {
		return nil, err
	}
	return s.Get(groupID)
}

func (s *GroupService) UpdateInfo(groupID, name, description string) (*models.Group, error) {
	g, err := s.Get(groupID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		g.Name = name
	}
	if description != "" {
		g.Description = description
	}
	g.UpdatedAt = s.now()
	if err := s.groups.Update(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GroupService) Delete(groupID string) error {
	err := s.groups.Delete(groupID)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("group not found")
	}
	return err
}

func (s *GroupService) requireUser(id string) error {
	exists, err := s.users.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return notFoundf("user not found")
	}
	return nil
}

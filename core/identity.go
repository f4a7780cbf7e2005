package core

import (
	"errors"
	"time"

	"homeroom/models"
	"homeroom/store"
	"homeroom/utils"
)

// Presence answers whether a user has a live connection; the websocket
// hub implements it.
type Presence interface {
	IsOnline(userID string) bool
}

type offlinePresence struct{}

func (offlinePresence) IsOnline(string) bool { return false }

// IdentityService fronts the user store: registration, credential checks,
// and the read-only summaries the rest of the core materializes friends
// from. The password transform is opaque; only hash-and-verify is exposed.
type IdentityService struct {
	users    store.UserStore
	presence Presence

	now func() time.Time
}

func NewIdentityService(s store.Stores, p Presence) *IdentityService {
	if p == nil {
		p = offlinePresence{}
	}
	return &IdentityService{users: s.Users, presence: p, now: time.Now}
}

func (s *IdentityService) Register(handle, password, displayName string) (*models.User, error) {
	if handle == "" || password == "" {
		return nil, invalidf("handle and password are required")
	}
	if displayName == "" {
		displayName = handle
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &models.User{
		ID:          utils.GenerateUUID(),
		Handle:      handle,
		DisplayName: displayName,
		Password:    hash,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.users.Create(u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, &Error{Kind: KindAlreadyExists, Message: "handle already taken"}
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies the handle's credential. Both unknown handle and
// bad password come back Forbidden with the same message.
func (s *IdentityService) Authenticate(handle, password string) (*models.User, error) {
	u, err := s.users.GetByHandle(handle)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, forbiddenf("invalid handle or password")
		}
		return nil, err
	}
	if !utils.CheckPassword(u.Password, password) {
		return nil, forbiddenf("invalid handle or password")
	}
	return u, nil
}

func (s *IdentityService) Exists(id string) (bool, error) {
	return s.users.Exists(id)
}

func (s *IdentityService) Get(id string) (*models.User, error) {
	u, err := s.users.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundf("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *IdentityService) FindByHandle(handle string) (*models.User, error) {
	u, err := s.users.GetByHandle(handle)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundf("user not found")
		}
		return nil, err
	}
	return u, nil
}

// Summary materializes the read-only view with presence and the symmetric
// friend set.
func (s *IdentityService) Summary(id string) (*models.UserSummary, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	friendIDs, err := s.users.FriendIDs(id)
	if err != nil {
		return nil, err
	}
	return &models.UserSummary{
		ID:          u.ID,
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
		IsOnline:    s.presence.IsOnline(id),
		FriendIDs:   friendIDs,
	}, nil
}

func (s *IdentityService) List(exceptID string) ([]models.User, error) {
	return s.users.List(exceptID)
}

func (s *IdentityService) Search(query string, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 20 {
		limit = 20
	}
	return s.users.Search(query, limit)
}

func (s *IdentityService) UpdateProfile(id, displayName, avatar string) (*models.User, error) {
	u, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if displayName != "" {
		u.DisplayName = displayName
	}
	if avatar != "" {
		u.Avatar = avatar
	}
	u.UpdatedAt = s.now()
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

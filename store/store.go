// Package store defines the persistence boundary shared by the MySQL and
// in-memory backends. Core services speak only these interfaces; anything
// with real semantics (canonical pair keys, derived indexes, idempotent
// read marking) lives above them in core.
package store

import (
	"errors"
	"time"

	"homeroom/models"
)

var (
	ErrNotFound  = errors.New("store: not found")
	ErrDuplicate = errors.New("store: duplicate record")
)

type UserStore interface {
	Create(u *models.User) error
	Get(id string) (*models.User, error)
	GetByHandle(handle string) (*models.User, error)
	Exists(id string) (bool, error)
	Update(u *models.User) error
	List(exceptID string) ([]models.User, error)
	Search(query string, limit int) ([]models.User, error)

	// FriendIDs is the materialized symmetric friend set. AddFriend and
	// RemoveFriend are idempotent so the two per-party writes of an accept
	// or unfriend can be retried safely.
	FriendIDs(userID string) ([]string, error)
	AddFriend(a, b string) error
	RemoveFriend(a, b string) error
}

type FriendshipStore interface {
	// Create fails with ErrDuplicate if a record for the same canonical
	// pair already exists; uniqueness on (party_low, party_high) is the
	// serialization point for concurrent requests.
	Create(f *models.Friendship) error
	Get(id string) (*models.Friendship, error)
	GetByPair(low, high string) (*models.Friendship, error)
	Update(f *models.Friendship) error
	Delete(id string) error
	ListByParty(userID string) ([]models.Friendship, error)
}

type GroupStore interface {
	Create(g *models.Group) error
	Get(id string) (*models.Group, error)
	GetByInviteCode(code string) (*models.Group, error)
	Update(g *models.Group) error
	Delete(id string) error
	// AddMember fails with ErrDuplicate on an existing (group, user) pair.
	AddMember(groupID string, m models.GroupMember) error
	RemoveMember(groupID, userID string) error
	UpdateMemberRole(groupID, userID string, role models.GroupRole) error
	SetInviteCode(groupID, code string) error
	ListByMember(userID string) ([]models.Group, error)
}

type MessageStore interface {
	Create(m *models.Message) error
	Get(id string) (*models.Message, error)
	Update(m *models.Message) error
	Delete(id string) error
	// MarkRead adds userID to the message's read set; reapplying is a no-op.
	MarkRead(id, userID string) error

	// ListDirect returns direct messages for the unordered pair, newest
	// first, filtered to created_at < before when before is non-zero.
	ListDirect(userA, userB string, limit int, before time.Time) ([]models.Message, error)
	ListGroup(groupID string, limit int, before time.Time) ([]models.Message, error)

	// ListDirectInvolving returns every direct message with userID as
	// sender or receiver; the conversation index derives its rows from it.
	ListDirectInvolving(userID string) ([]models.Message, error)
	ListGroups(groupIDs []string) ([]models.Message, error)
}

type TaskStore interface {
	Create(t *models.Task) error
	Get(id string) (*models.Task, error)
	Update(t *models.Task) error
	Delete(id string) error
	ListByOwner(ownerID string) ([]models.Task, error)
	ListByAssignee(assigneeID string) ([]models.Task, error)
}

// Stores bundles one backend's implementations for wiring.
type Stores struct {
	Users       UserStore
	Friendships FriendshipStore
	Groups      GroupStore
	Messages    MessageStore
	Tasks       TaskStore
}

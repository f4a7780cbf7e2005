package models

import "time"

type GroupRole string

const (
	RoleAdmin     GroupRole = "admin"
	RoleModerator GroupRole = "moderator"
	RoleMember    GroupRole = "member"
)

type GroupMember struct {
	UserID   string    `json:"user_id"`
	Role     GroupRole `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

type Group struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	OwnerID     string        `json:"owner_id"`
	InviteCode  string        `json:"-"`
	Members     []GroupMember `json:"members"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (g *Group) Member(userID string) (*GroupMember, bool) {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return &g.Members[i], true
		}
	}
	return nil, false
}

func (g *Group) IsMember(userID string) bool {
	_, ok := g.Member(userID)
	return ok
}

// GroupResponse exposes the invite code, so it is only returned to members.
type GroupResponse struct {
	Group
	InviteCode string `json:"invite_code"`
}

func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{Group: *g, InviteCode: g.InviteCode}
}

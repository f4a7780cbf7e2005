package models

import "time"

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipDeclined FriendshipStatus = "declined"
	FriendshipBlocked  FriendshipStatus = "blocked"
)

// Friendship is the single record for an unordered pair of users.
// PartyLow < PartyHigh, so {A,B} and {B,A} map to the same row.
type Friendship struct {
	ID          string           `json:"id"`
	PartyLow    string           `json:"party_low"`
	PartyHigh   string           `json:"party_high"`
	Status      FriendshipStatus `json:"status"`
	InitiatedBy string           `json:"initiated_by"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// PairKey normalizes two user ids into the canonical order.
func PairKey(a, b string) (low, high string) {
	if a > b {
		return b, a
	}
	return a, b
}

func (f *Friendship) HasParty(userID string) bool {
	return f.PartyLow == userID || f.PartyHigh == userID
}

// OtherParty returns the opposite side of the pair, or "" if userID is
// not a party.
func (f *Friendship) OtherParty(userID string) string {
	switch userID {
	case f.PartyLow:
		return f.PartyHigh
	case f.PartyHigh:
		return f.PartyLow
	}
	return ""
}

type FriendshipWithUser struct {
	Friendship
	User UserResponse `json:"user"`
}

package core

import (
	"errors"
	"time"

	"homeroom/models"
	"homeroom/store"
	"homeroom/utils"
)

type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionDecline Decision = "decline"
)

// FriendService is the friendship ledger. Every read and write goes
// through the canonical pair key, so an unordered pair {A,B} maps to at
// most one record no matter who initiated or who is asking.
type FriendService struct {
	friendships store.FriendshipStore
	users       store.UserStore
	notifier    Notifier

	now func() time.Time
}

func NewFriendService(s store.Stores, n Notifier) *FriendService {
	return &FriendService{
		friendships: s.Friendships,
		users:       s.Users,
		notifier:    n,
		now:         time.Now,
	}
}

// SendRequest creates a pending friendship from fromID towards toID. If a
// record already exists for the pair, the error reports its status and
// initiator so the caller knows whether to wait, accept, or give up.
func (s *FriendService) SendRequest(fromID, toID string) (*models.Friendship, error) {
	if fromID == toID {
		return nil, invalidf("cannot send a friend request to yourself")
	}
	if err := s.requireUser(toID); err != nil {
		return nil, err
	}

	low, high := models.PairKey(fromID, toID)

	existing, err := s.friendships.GetByPair(low, high)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return s.reuseOrReject(existing, fromID)
	}

	now := s.now()
	f := &models.Friendship{
		ID:          utils.GenerateUUID(),
		PartyLow:    low,
		PartyHigh:   high,
		Status:      models.FriendshipPending,
		InitiatedBy: fromID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.friendships.Create(f); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// lost a concurrent race for the pair; act on the winner's state
			winner, gerr := s.friendships.GetByPair(low, high)
			if gerr != nil {
				return nil, gerr
			}
			return s.reuseOrReject(winner, fromID)
		}
		return nil, err
	}

	s.notifier.Notify(&Event{
		Type:       EventFriendRequest,
		Recipients: []string{toID},
		Payload:    f,
		CreatedAt:  now,
	})
	return f, nil
}

// reuseOrReject resolves a SendRequest that found an existing record. A
// declined record is reset to pending under the new initiator; everything
// else is surfaced as a typed failure carrying the existing state.
func (s *FriendService) reuseOrReject(existing *models.Friendship, fromID string) (*models.Friendship, error) {
	detail := func(kind Kind, msg string) *Error {
		return &Error{Kind: kind, Message: msg, Status: existing.Status, InitiatedBy: existing.InitiatedBy}
	}

	switch existing.Status {
	case models.FriendshipAccepted:
		return nil, detail(KindAlreadyExists, "already friends")
	case models.FriendshipPending:
		if existing.InitiatedBy == fromID {
			return nil, detail(KindAlreadyExists, "friend request already sent")
		}
		return nil, detail(KindAlreadyExists, "friend request already pending from the other party")
	case models.FriendshipBlocked:
		return nil, detail(KindForbidden, "cannot send friend request")
	case models.FriendshipDeclined:
		existing.Status = models.FriendshipPending
		existing.InitiatedBy = fromID
		existing.UpdatedAt = s.now()
		if err := s.friendships.Update(existing); err != nil {
			return nil, err
		}
		s.notifier.Notify(&Event{
			Type:       EventFriendRequest,
			Recipients: []string{existing.OtherParty(fromID)},
			Payload:    existing,
			CreatedAt:  existing.UpdatedAt,
		})
		return existing, nil
	}
	return nil, conflictf("friendship in unexpected state %q", existing.Status)
}

// Respond accepts or declines a pending request. Only the non-initiating
// party may respond.
func (s *FriendService) Respond(pairID, byUserID string, decision Decision) (*models.Friendship, error) {
	if decision != DecisionAccept && decision != DecisionDecline {
		return nil, invalidf("unknown decision %q", decision)
	}

	f, err := s.friendships.Get(pairID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundf("friend request not found")
		}
		return nil, err
	}
	if !f.HasParty(byUserID) {
		return nil, forbiddenf("not a party to this friendship")
	}
	if f.InitiatedBy == byUserID {
		return nil, forbiddenf("cannot respond to your own friend request")
	}
	switch f.Status {
	case models.FriendshipPending:
	case models.FriendshipBlocked:
		return nil, forbiddenf("friendship is blocked")
	default:
		return nil, conflictf("friend request already resolved")
	}

	now := s.now()
	if decision == DecisionAccept {
		f.Status = models.FriendshipAccepted
	} else {
		f.Status = models.FriendshipDeclined
	}
	f.UpdatedAt = now
	if err := s.friendships.Update(f); err != nil {
		return nil, err
	}

	if decision == DecisionAccept {
		// materialize the symmetric friend sets; idempotent, so a retry
		// after a partial failure converges
		if err := s.users.AddFriend(f.PartyLow, f.PartyHigh); err != nil {
			return nil, err
		}
		s.notifier.Notify(&Event{
			Type:       EventFriendAccepted,
			Recipients: []string{f.InitiatedBy},
			Payload:    f,
			CreatedAt:  now,
		})
	}
	return f, nil
}

// ListFriends returns the other party of every accepted friendship.
func (s *FriendService) ListFriends(userID string) ([]string, error) {
	all, err := s.friendships.ListByParty(userID)
	if err != nil {
		return nil, err
	}
	var ids []string
	for i := range all {
		if all[i].Status == models.FriendshipAccepted {
			ids = append(ids, all[i].OtherParty(userID))
		}
	}
	return ids, nil
}

// ListIncoming returns pending requests initiated by the other party.
func (s *FriendService) ListIncoming(userID string) ([]models.Friendship, error) {
	return s.listPending(userID, false)
}

// ListOutgoing returns pending requests the user initiated.
func (s *FriendService) ListOutgoing(userID string) ([]models.Friendship, error) {
	return s.listPending(userID, true)
}

func (s *FriendService) listPending(userID string, initiated bool) ([]models.Friendship, error) {
	all, err := s.friendships.ListByParty(userID)
	if err != nil {
		return nil, err
	}
	var out []models.Friendship
	for _, f := range all {
		if f.Status != models.FriendshipPending {
			continue
		}
		if (f.InitiatedBy == userID) == initiated {
			out = append(out, f)
		}
	}
	return out, nil
}

// Remove deletes the pair's record from any status: unfriend, withdraw a
// pending request, or lift a block by deletion.
func (s *FriendService) Remove(pairID, byUserID string) error {
	f, err := s.friendships.Get(pairID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFoundf("friendship not found")
		}
		return err
	}
	if !f.HasParty(byUserID) {
		return forbiddenf("not a party to this friendship")
	}
	if err := s.friendships.Delete(pairID); err != nil {
		return err
	}
	if f.Status == models.FriendshipAccepted {
		return s.users.RemoveFriend(f.PartyLow, f.PartyHigh)
	}
	return nil
}

// Block marks the pair blocked from any prior state, creating the record
// if none exists. InitiatedBy records who blocked. There is no transition
// out of blocked other than Remove.
func (s *FriendService) Block(fromID, toID string) (*models.Friendship, error) {
	if fromID == toID {
		return nil, invalidf("cannot block yourself")
	}
	if err := s.requireUser(toID); err != nil {
		return nil, err
	}

	low, high := models.PairKey(fromID, toID)
	now := s.now()

	f, err := s.friendships.GetByPair(low, high)
	switch {
	case err == nil:
		wasAccepted := f.Status == models.FriendshipAccepted
		f.Status = models.FriendshipBlocked
		f.InitiatedBy = fromID
		f.UpdatedAt = now
		if err := s.friendships.Update(f); err != nil {
			return nil, err
		}
		if wasAccepted {
			if err := s.users.RemoveFriend(low, high); err != nil {
				return nil, err
			}
		}
		return f, nil
	case errors.Is(err, store.ErrNotFound):
		f = &models.Friendship{
			ID:          utils.GenerateUUID(),
			PartyLow:    low,
			PartyHigh:   high,
			Status:      models.FriendshipBlocked,
			InitiatedBy: fromID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.friendships.Create(f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, err
	}
}

// Get returns the pair's record if byUserID is a party to it.
func (s *FriendService) Get(pairID, byUserID string) (*models.Friendship, error) {
	f, err := s.friendships.Get(pairID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundf("friendship not found")
		}
		return nil, err
	}
	if !f.HasParty(byUserID) {
		return nil, forbiddenf("not a party to this friendship")
	}
	return f, nil
}

func (s *FriendService) requireUser(id string) error {
	exists, err := s.users.Exists(id)
	if err != nil {
		return err
	}
	if !exists {
		return notFoundf("user not found")
	}
	return nil
}

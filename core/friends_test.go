package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeroom/models"
)

func TestSendRequestAndAccept(t *testing.T) {
	s := testStores(t, "alice", "bob")
	svc := NewFriendService(s, NopNotifier{})

	f, err := svc.SendRequest("alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipPending, f.Status)
	assert.Equal(t, "alice", f.InitiatedBy)
	assert.Equal(t, "alice", f.PartyLow)
	assert.Equal(t, "bob", f.PartyHigh)

	accepted, err := svc.Respond(f.ID, "bob", DecisionAccept)
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipAccepted, accepted.Status)

	// both parties see each other, in both the ledger and the friend sets
	for _, tc := range []struct{ who, other string }{
		{"alice", "bob"},
		{"bob", "alice"},
	} {
		friends, err := svc.ListFriends(tc.who)
		require.NoError(t, err)
		assert.Equal(t, []string{tc.other}, friends)

		ids, err := s.Users.FriendIDs(tc.who)
		require.NoError(t, err)
		assert.Equal(t, []string{tc.other}, ids)
	}
}

func TestSendRequestValidation(t *testing.T) {
	s := testStores(t, "alice")
	svc := NewFriendService(s, NopNotifier{})

	_, err := svc.SendRequest("alice", "alice")
	assert.Equal(t, KindInvalid, KindOf(err))

	_, err = svc.SendRequest("alice", "nobody")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestSendRequestDuplicate(t *testing.T) {
	s := testStores(t, "alice", "bob")
	svc := NewFriendService(s, NopNotifier{})

	_, err := svc.SendRequest("alice", "bob")
	require.NoError(t, err)

	// same direction again
	_, err = svc.SendRequest("alice", "bob")
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindAlreadyExists, ce.Kind)
	assert.Equal(t, models.FriendshipPending, ce.Status)
	assert.Equal(t, "alice", ce.InitiatedBy)

	// crossed request from the other side hits the same record
	_, err = svc.SendRequest("bob", "alice")
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindAlreadyExists, ce.Kind)
	assert.Equal(t, "alice", ce.InitiatedBy)

	// only one record exists for the pair
	all, err := s.Friendships.ListByParty("bob")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRespondPolicy(t *testing.T) {
	s := testStores(t, "alice", "bob", "carol")
	svc := NewFriendService(s, NopNotifier{})

	f, err := svc.SendRequest("alice", "bob")
	require.NoError(t, err)

	_, err = svc.Respond(f.ID, "alice", DecisionAccept)
	assert.Equal(t, KindForbidden, KindOf(err), "initiator cannot respond")

	_, err = svc.Respond(f.ID, "carol", DecisionAccept)
	assert.Equal(t, KindForbidden, KindOf(err), "third party cannot respond")

	_, err = svc.Respond(f.ID, "bob", Decision("maybe"))
	assert.Equal(t, KindInvalid, KindOf(err))

	_, err = svc.Respond("missing", "bob", DecisionAccept)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.Respond(f.ID, "bob", DecisionAccept)
	require.NoError(t, err)

	// resolved requests cannot be answered again
	_, err = svc.Respond(f.ID, "bob", DecisionDecline)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestDeclinedRequestCanBeReissued(t *testing.T) {
	s := testStores(t, "alice", "bob")
	svc := NewFriendService(s, NopNotifier{})

	f, err := svc.SendRequest("alice", "bob")
	require.NoError(t, err)
	_, err = svc.Respond(f.ID, "bob", DecisionDecline)
	require.NoError(t, err)

	// either side may re-open the pair; the record is reused, not duplicated
	again, err := svc.SendRequest("bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, f.ID, again.ID)
	assert.Equal(t, models.FriendshipPending, again.Status)
	assert.Equal(t, "bob", again.InitiatedBy)

	_, err = svc.Respond(again.ID, "alice", DecisionAccept)
	require.NoError(t, err)
}

func TestBlockStopsRequests(t *testing.T) {
	s := testStores(t, "alice", "bob")
	svc := NewFriendService(s, NopNotifier{})

	f, err := svc.Block("alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, models.FriendshipBlocked, f.Status)
	assert.Equal(t, "alice", f.InitiatedBy)

	_, err = svc.SendRequest("bob", "alice")
	assert.Equal(t, KindForbidden, KindOf(err))
	_, err = svc.SendRequest("alice", "bob")
	assert.Equal(t, KindForbidden, KindOf(err))

	// removal is the only way out of blocked
	require.NoError(t, svc.Remove(f.ID, "alice"))
	_, err = svc.SendRequest("bob", "alice")
	require.NoError(t, err)
}

func TestBlockExistingFriendshipDropsFriendSets(t *testing.T) {
	s := testStores(t, "alice", "bob")
	svc := NewFriendService(s, NopNotifier{})

	f, err := svc.SendRequest("alice", "bob")
	require.NoError(t, err)
	_, err = svc.Respond(f.ID, "bob", DecisionAccept)
	require.NoError(t, err)

	_, err = svc.Block("bob", "alice")
	require.NoError(t, err)

	ids, err := s.Users.FriendIDs("alice")
	require.NoError(t, err)
	assert.Empty(t, ids)

	friends, err := svc.ListFriends("bob")
	require.NoError(t, err)
	assert.Empty(t, friends)
}

func TestRemoveUnfriends(t *testing.T) {
	s := testStores(t, "alice", "bob", "carol")
	svc := NewFriendService(s, NopNotifier{})

	f, err := svc.SendRequest("alice", "bob")
	require.NoError(t, err)
	_, err = svc.Respond(f.ID, "bob", DecisionAccept)
	require.NoError(t, err)

	assert.Equal(t, KindForbidden, KindOf(svc.Remove(f.ID, "carol")))

	require.NoError(t, svc.Remove(f.ID, "bob"))
	friends, err := svc.ListFriends("alice")
	require.NoError(t, err)
	assert.Empty(t, friends)

	assert.Equal(t, KindNotFound, KindOf(svc.Remove(f.ID, "bob")))
}

func TestListIncomingOutgoing(t *testing.T) {
	s := testStores(t, "alice", "bob", "carol")
	svc := NewFriendService(s, NopNotifier{})
	svc.now = stepClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	_, err := svc.SendRequest("alice", "bob")
	require.NoError(t, err)
	_, err = svc.SendRequest("carol", "alice")
	require.NoError(t, err)

	in, err := svc.ListIncoming("alice")
	require.NoError(t, err)
	require.Len(t, in, 1)
	assert.Equal(t, "carol", in[0].InitiatedBy)

	out, err := svc.ListOutgoing("alice")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "bob", out[0].OtherParty("alice"))
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeroom/store/memory"
)

type stubPresence map[string]bool

func (p stubPresence) IsOnline(userID string) bool { return p[userID] }

func TestRegisterAndAuthenticate(t *testing.T) {
	s := memory.New().Stores()
	svc := NewIdentityService(s, nil)

	u, err := svc.Register("alice", "s3cret", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.DisplayName, "display name defaults to the handle")
	assert.NotEqual(t, "s3cret", u.Password, "password is stored hashed")

	_, err = svc.Register("alice", "other", "Alice II")
	assert.Equal(t, KindAlreadyExists, KindOf(err))

	_, err = svc.Register("", "x", "")
	assert.Equal(t, KindInvalid, KindOf(err))

	got, err := svc.Authenticate("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Authenticate("alice", "wrong")
	assert.Equal(t, KindForbidden, KindOf(err))
	_, err = svc.Authenticate("nobody", "s3cret")
	assert.Equal(t, KindForbidden, KindOf(err))
}

func TestSummary(t *testing.T) {
	s := memory.New().Stores()
	svc := NewIdentityService(s, stubPresence{})

	u, err := svc.Register("alice", "pw", "Alice")
	require.NoError(t, err)
	other, err := svc.Register("bob", "pw", "Bob")
	require.NoError(t, err)
	require.NoError(t, s.Users.AddFriend(u.ID, other.ID))

	sum, err := svc.Summary(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", sum.Handle)
	assert.False(t, sum.IsOnline)
	assert.Equal(t, []string{other.ID}, sum.FriendIDs)

	svc = NewIdentityService(s, stubPresence{u.ID: true})
	sum, err = svc.Summary(u.ID)
	require.NoError(t, err)
	assert.True(t, sum.IsOnline)

	_, err = svc.Summary("missing")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	s := memory.New().Stores()
	svc := NewIdentityService(s, nil)

	u, err := svc.Register("alice", "pw", "Alice")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(u.ID, "Alice L.", "/files/avatar.png")
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", updated.DisplayName)
	assert.Equal(t, "/files/avatar.png", updated.Avatar)

	// empty fields leave the current values alone
	updated, err = svc.UpdateProfile(u.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice L.", updated.DisplayName)
}

func TestSearch(t *testing.T) {
	s := memory.New().Stores()
	svc := NewIdentityService(s, nil)

	for _, h := range []string{"alice", "alina", "bob"} {
		_, err := svc.Register(h, "pw", "")
		require.NoError(t, err)
	}

	found, err := svc.Search("ali", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = svc.Search("ali", 1)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeroom/models"
)

func TestCreateGroup(t *testing.T) {
	s := testStores(t, "alice", "bob", "carol")
	svc := NewGroupService(s)

	g, err := svc.Create("study hall", "evening sessions", "alice", []string{"bob", "bob", "alice", "ghost"})
	require.NoError(t, err)
	assert.NotEmpty(t, g.InviteCode)

	// owner first and admin; duplicates and unknown ids dropped
	require.Len(t, g.Members, 2)
	assert.Equal(t, "alice", g.Members[0].UserID)
	assert.Equal(t, models.RoleAdmin, g.Members[0].Role)
	assert.Equal(t, "bob", g.Members[1].UserID)
	assert.Equal(t, models.RoleMember, g.Members[1].Role)

	_, err = svc.Create("", "", "alice", nil)
	assert.Equal(t, KindInvalid, KindOf(err))

	_, err = svc.Create("x", "", "ghost", nil)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestJoinByInviteCode(t *testing.T) {
	s := testStores(t, "alice", "bob", "carol")
	svc := NewGroupService(s)

	g, err := svc.Create("study hall", "", "alice", nil)
	require.NoError(t, err)

	joined, err := svc.JoinByInviteCode(g.InviteCode, "bob")
	require.NoError(t, err)
	assert.True(t, joined.IsMember("bob"))
	m, ok := joined.Member("bob")
	require.True(t, ok)
	assert.Equal(t, models.RoleMember, m.Role)

	_, err = svc.JoinByInviteCode(g.InviteCode, "bob")
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = svc.JoinByInviteCode("nonsense", "carol")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestRegenerateInviteCode(t *testing.T) {
	s := testStores(t, "alice", "bob")
	svc := NewGroupService(s)

	g, err := svc.Create("study hall", "", "alice", nil)
	require.NoError(t, err)
	old := g.InviteCode

	code, err := svc.RegenerateInviteCode(g.ID)
	require.NoError(t, err)
	assert.NotEqual(t, old, code)

	// the old code is dead immediately
	_, err = svc.JoinByInviteCode(old, "bob")
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = svc.JoinByInviteCode(code, "bob")
	require.NoError(t, err)

	_, err = svc.RegenerateInviteCode("missing")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestMembershipChanges(t *testing.T) {
	s := testStores(t, "alice", "bob", "carol")
	svc := NewGroupService(s)

	g, err := svc.Create("study hall", "", "alice", nil)
	require.NoError(t, err)

	require.NoError(t, svc.AddMember(g.ID, "bob", ""))
	assert.Equal(t, KindConflict, KindOf(svc.AddMember(g.ID, "bob", models.RoleMember)))
	assert.Equal(t, KindNotFound, KindOf(svc.AddMember(g.ID, "ghost", models.RoleMember)))
	assert.Equal(t, KindNotFound, KindOf(svc.AddMember("missing", "carol", models.RoleMember)))
	assert.Equal(t, KindInvalid, KindOf(svc.AddMember(g.ID, "carol", models.GroupRole("king"))))

	require.NoError(t, svc.UpdateRole(g.ID, "bob", models.RoleModerator))
	got, err := svc.Get(g.ID)
	require.NoError(t, err)
	bob, ok := got.Member("bob")
	require.True(t, ok)
	assert.Equal(t, models.RoleModerator, bob.Role)

	// the owner's role only moves with ownership
	assert.Equal(t, KindForbidden, KindOf(svc.UpdateRole(g.ID, "alice", models.RoleMember)))

	require.NoError(t, svc.RemoveMember(g.ID, "bob"))
	assert.Equal(t, KindNotFound, KindOf(svc.RemoveMember(g.ID, "bob")))

	got, err = svc.Get(g.ID)
	require.NoError(t, err)
	assert.False(t, got.IsMember("bob"))
}

func TestTransferOwnership(t *testing.T) {
	s := testStores(t, "alice", "bob", "carol")
	svc := NewGroupService(s)

	g, err := svc.Create("study hall", "", "alice", []string{"bob"})
	require.NoError(t, err)

	_, err = svc.TransferOwnership(g.ID, "carol")
	assert.Equal(t, KindNotFound, KindOf(err), "non-members cannot receive ownership")

	got, err := svc.TransferOwnership(g.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.OwnerID)
	bob, ok := got.Member("bob")
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, bob.Role)
	// previous owner keeps their seat
	alice, ok := got.Member("alice")
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, alice.Role)
}

func TestListForUser(t *testing.T) {
	s := testStores(t, "alice", "bob")
	svc := NewGroupService(s)

	g1, err := svc.Create("one", "", "alice", []string{"bob"})
	require.NoError(t, err)
	_, err = svc.Create("two", "", "alice", nil)
	require.NoError(t, err)

	groups, err := svc.ListForUser("bob")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, g1.ID, groups[0].ID)

	groups, err = svc.ListForUser("alice")
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestDeleteGroup(t *testing.T) {
	s := testStores(t, "alice")
	svc := NewGroupService(s)

	g, err := svc.Create("study hall", "", "alice", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(g.ID))
	_, err = svc.Get(g.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindNotFound, KindOf(svc.Delete(g.ID)))
}

package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeroom/models"
)

func TestLatestPerConversationDirect(t *testing.T) {
	s := testStores(t, "alice", "bob", "carol")
	msgs := NewMessageService(s, NopNotifier{})
	msgs.now = stepClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	idx := NewIndexService(s)

	_, err := msgs.Post("alice", models.KindDirect, "bob", "first", nil)
	require.NoError(t, err)
	_, err = msgs.Post("bob", models.KindDirect, "alice", "second", nil)
	require.NoError(t, err)
	_, err = msgs.Post("carol", models.KindDirect, "alice", "third", nil)
	require.NoError(t, err)

	rows, err := idx.LatestPerConversation("alice")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// newest conversation first: carol, then bob with the pair's latest
	assert.Equal(t, "carol", rows[0].ConversationID)
	assert.Equal(t, models.KindDirect, rows[0].Kind)
	assert.Equal(t, "third", rows[0].LastMessage.Content)
	assert.True(t, rows[0].Unread)

	assert.Equal(t, "bob", rows[1].ConversationID)
	assert.Equal(t, "second", rows[1].LastMessage.Content)
	assert.True(t, rows[1].Unread)

	// from bob's side the same pair row is already read: bob sent it
	rows, err = idx.LatestPerConversation("bob")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0].ConversationID)
	assert.False(t, rows[0].Unread)
}

func TestLatestPerConversationGroup(t *testing.T) {
	s := testStores(t, "alice", "bob")
	groups := NewGroupService(s)
	msgs := NewMessageService(s, NopNotifier{})
	msgs.now = stepClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	idx := NewIndexService(s)

	g, err := groups.Create("study hall", "", "alice", []string{"bob"})
	require.NoError(t, err)

	_, err = msgs.Post("bob", models.KindGroup, g.ID, "hello", nil)
	require.NoError(t, err)
	latest, err := msgs.Post("alice", models.KindGroup, g.ID, "hi", nil)
	require.NoError(t, err)

	rows, err := idx.LatestPerConversation("alice")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, g.ID, rows[0].ConversationID)
	assert.Equal(t, models.KindGroup, rows[0].Kind)
	assert.Equal(t, "hi", rows[0].LastMessage.Content)
	assert.Equal(t, latest.CreatedAt, rows[0].LastMessageAt)
	assert.False(t, rows[0].Unread, "alice sent the latest message")

	rows, err = idx.LatestPerConversation("bob")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Unread)

	require.NoError(t, msgs.MarkRead(latest.ID, "bob"))
	rows, err = idx.LatestPerConversation("bob")
	require.NoError(t, err)
	assert.False(t, rows[0].Unread)
}

func TestLeftGroupDisappearsFromIndex(t *testing.T) {
	s := testStores(t, "alice", "bob")
	groups := NewGroupService(s)
	msgs := NewMessageService(s, NopNotifier{})
	idx := NewIndexService(s)

	g, err := groups.Create("study hall", "", "alice", []string{"bob"})
	require.NoError(t, err)
	_, err = msgs.Post("alice", models.KindGroup, g.ID, "hello", nil)
	require.NoError(t, err)

	rows, err := idx.LatestPerConversation("bob")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	require.NoError(t, groups.RemoveMember(g.ID, "bob"))

	// the messages still exist, but the conversation is gone for bob
	rows, err = idx.LatestPerConversation("bob")
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = idx.LatestPerConversation("alice")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestEqualTimestampTieBreak(t *testing.T) {
	s := testStores(t, "alice", "bob")
	msgs := NewMessageService(s, NopNotifier{})
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs.now = func() time.Time { return fixed }
	idx := NewIndexService(s)

	m1, err := msgs.Post("alice", models.KindDirect, "bob", "one", nil)
	require.NoError(t, err)
	m2, err := msgs.Post("alice", models.KindDirect, "bob", "two", nil)
	require.NoError(t, err)

	want := m1.ID
	if m2.ID > m1.ID {
		want = m2.ID
	}

	// the pick is arbitrary but must be the same on every query
	for i := 0; i < 5; i++ {
		rows, err := idx.LatestPerConversation("bob")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, want, rows[0].LastMessage.ID)
	}
}

func TestUnreadCounts(t *testing.T) {
	s := testStores(t, "alice", "bob", "carol")
	groups := NewGroupService(s)
	msgs := NewMessageService(s, NopNotifier{})
	msgs.now = stepClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	idx := NewIndexService(s)

	g, err := groups.Create("study hall", "", "alice", []string{"bob"})
	require.NoError(t, err)

	_, err = msgs.Post("bob", models.KindDirect, "alice", "one", nil)
	require.NoError(t, err)
	_, err = msgs.Post("carol", models.KindDirect, "alice", "two", nil)
	require.NoError(t, err)
	groupMsg, err := msgs.Post("bob", models.KindGroup, g.ID, "three", nil)
	require.NoError(t, err)
	// alice's own message never counts against her
	_, err = msgs.Post("alice", models.KindGroup, g.ID, "four", nil)
	require.NoError(t, err)

	counts, err := idx.UnreadCounts("alice")
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Direct)
	assert.Equal(t, 1, counts.Group)
	assert.Equal(t, 3, counts.Total)

	require.NoError(t, msgs.MarkRead(groupMsg.ID, "alice"))
	counts, err = idx.UnreadCounts("alice")
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Direct)
	assert.Equal(t, 0, counts.Group)
	assert.Equal(t, 2, counts.Total)

	// carol is not in the group; only her direct thread is visible
	counts, err = idx.UnreadCounts("carol")
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Direct)
	assert.Equal(t, 0, counts.Group)
}

package core

import (
	"sort"

	"homeroom/models"
	"homeroom/store"
)

// IndexService derives the conversation overview from source messages and
// current group memberships at query time. Nothing here is persisted, so
// the view cannot drift from the messages it is computed over: an edit,
// delete, or membership change is reflected on the next read with no
// invalidation path to maintain.
type IndexService struct {
	messages store.MessageStore
	groups   store.GroupStore
}

func NewIndexService(s store.Stores) *IndexService {
	return &IndexService{messages: s.Messages, groups: s.Groups}
}

// newer orders messages by created_at; equal timestamps fall back to the
// lexicographically greater id. Arbitrary, but stable across queries.
func newer(a, b *models.Message) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// LatestPerConversation returns one row per direct partner and per group
// the user currently belongs to, newest conversation first. Groups the
// user has left never appear, even while their old messages persist.
func (s *IndexService) LatestPerConversation(userID string) ([]models.ConversationRow, error) {
	direct, err := s.messages.ListDirectInvolving(userID)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]*models.Message)
	for i := range direct {
		m := &direct[i]
		partner := m.ReceiverID
		if m.SenderID != userID {
			partner = m.SenderID
		}
		if cur, ok := latest[partner]; !ok || newer(m, cur) {
			latest[partner] = m
		}
	}

	var rows []models.ConversationRow
	for partner, m := range latest {
		rows = append(rows, models.ConversationRow{
			ConversationID: partner,
			Kind:           models.KindDirect,
			LastMessage:    m,
			LastMessageAt:  m.CreatedAt,
			Unread:         !m.HasRead(userID),
		})
	}

	memberGroups, err := s.groups.ListByMember(userID)
	if err != nil {
		return nil, err
	}
	groupIDs := make([]string, len(memberGroups))
	for i := range memberGroups {
		groupIDs[i] = memberGroups[i].ID
	}
	groupMsgs, err := s.messages.ListGroups(groupIDs)
	if err != nil {
		return nil, err
	}

	latestGroup := make(map[string]*models.Message)
	for i := range groupMsgs {
		m := &groupMsgs[i]
		if cur, ok := latestGroup[m.GroupID]; !ok || newer(m, cur) {
			latestGroup[m.GroupID] = m
		}
	}
	for groupID, m := range latestGroup {
		rows = append(rows, models.ConversationRow{
			ConversationID: groupID,
			Kind:           models.KindGroup,
			LastMessage:    m,
			LastMessageAt:  m.CreatedAt,
			Unread:         !m.HasRead(userID),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return newer(rows[i].LastMessage, rows[j].LastMessage)
	})
	return rows, nil
}

// UnreadCounts counts direct messages addressed to the user and group
// messages in current member groups that the user has not read. Senders
// are seeded into their own read sets, so own messages never count.
func (s *IndexService) UnreadCounts(userID string) (*models.UnreadCounts, error) {
	counts := &models.UnreadCounts{}

	direct, err := s.messages.ListDirectInvolving(userID)
	if err != nil {
		return nil, err
	}
	for i := range direct {
		if direct[i].ReceiverID == userID && !direct[i].HasRead(userID) {
			counts.Direct++
		}
	}

	memberGroups, err := s.groups.ListByMember(userID)
	if err != nil {
		return nil, err
	}
	groupIDs := make([]string, len(memberGroups))
	for i := range memberGroups {
		groupIDs[i] = memberGroups[i].ID
	}
	groupMsgs, err := s.messages.ListGroups(groupIDs)
	if err != nil {
		return nil, err
	}
	for i := range groupMsgs {
		if !groupMsgs[i].HasRead(userID) {
			counts.Group++
		}
	}

	counts.Total = counts.Direct + counts.Group
	return counts, nil
}

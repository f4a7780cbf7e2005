package core

import (
	"errors"
	"time"

	"homeroom/models"
	"homeroom/store"
	"homeroom/utils"
)

// MessageService owns individual messages: posting, edit, delete, read
// receipts, and the paginated per-conversation fetches.
type MessageService struct {
	messages store.MessageStore
	groups   store.GroupStore
	users    store.UserStore
	notifier Notifier

	now func() time.Time
}

func NewMessageService(s store.Stores, n Notifier) *MessageService {
	return &MessageService{
		messages: s.Messages,
		groups:   s.Groups,
		users:    s.Users,
		notifier: n,
		now:      time.Now,
	}
}

// Post validates the kind/target pairing and the target's existence before
// anything is persisted; a returned message is always fully applied. The
// read set is seeded with the sender for both kinds, so one's own messages
// never count as unread.
func (s *MessageService) Post(senderID string, kind models.MessageKind, targetID, content string, attachments []models.Attachment) (*models.Message, error) {
	if content == "" && len(attachments) == 0 {
		return nil, invalidf("message is empty")
	}
	if targetID == "" {
		return nil, invalidf("message target is required")
	}

	now := s.now()
	m := &models.Message{
		ID:          utils.GenerateUUID(),
		SenderID:    senderID,
		Kind:        kind,
		Content:     content,
		Attachments: attachments,
		ReadBy:      []string{senderID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var recipients []string
	switch kind {
	case models.KindDirect:
		if targetID == senderID {
			return nil, invalidf("cannot message yourself")
		}
		exists, err := s.users.Exists(targetID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, notFoundf("receiver not found")
		}
		m.ReceiverID = targetID
		recipients = []string{targetID}

	case models.KindGroup:
		g, err := s.groups.Get(targetID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, notFoundf("group not found")
			}
			return nil, err
		}
		if !g.IsMember(senderID) {
			return nil, forbiddenf("not a member of this group")
		}
		m.GroupID = targetID
		for _, member := range g.Members {
			if member.UserID != senderID {
				recipients = append(recipients, member.UserID)
			}
		}

	default:
		return nil, invalidf("unknown message kind %q", kind)
	}

	if err := s.messages.Create(m); err != nil {
		return nil, err
	}

	s.notifier.Notify(&Event{
		Type:       EventMessagePosted,
		Recipients: recipients,
		Payload:    m,
		CreatedAt:  now,
	})
	return m, nil
}

func (s *MessageService) Get(id string) (*models.Message, error) {
	m, err := s.messages.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFoundf("message not found")
		}
		return nil, err
	}
	return m, nil
}

// Edit replaces the content and flags the message edited. Whether the
// editor is the original sender is the caller's policy check.
func (s *MessageService) Edit(id, newContent string) (*models.Message, error) {
	if newContent == "" {
		return nil, invalidf("message content is required")
	}
	m, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	m.Content = newContent
	m.Edited = true
	m.UpdatedAt = s.now()
	if err := s.messages.Update(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MessageService) Delete(id string) error {
	err := s.messages.Delete(id)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("message not found")
	}
	return err
}

// MarkRead is an idempotent set union; marking twice changes nothing.
func (s *MessageService) MarkRead(id, userID string) error {
	err := s.messages.MarkRead(id, userID)
	if errors.Is(err, store.ErrNotFound) {
		return notFoundf("message not found")
	}
	return err
}

// FetchDirect returns the pair's direct messages newest first, optionally
// bounded to created_at < before.
func (s *MessageService) FetchDirect(userA, userB string, limit int, before time.Time) ([]models.Message, error) {
	return s.messages.ListDirect(userA, userB, normalizeLimit(limit), before)
}

func (s *MessageService) FetchGroup(groupID string, limit int, before time.Time) ([]models.Message, error) {
	return s.messages.ListGroup(groupID, normalizeLimit(limit), before)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 100 {
		return 100
	}
	return limit
}

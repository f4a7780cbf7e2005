package models

import "time"

type MessageKind string

const (
	KindDirect MessageKind = "direct"
	KindGroup  MessageKind = "group"
)

// Attachment carries only a reference URL plus metadata; the bytes live
// with the external file store.
type Attachment struct {
	URL      string `json:"url"`
	Name     string `json:"name,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// Message is a tagged variant: KindDirect sets ReceiverID, KindGroup sets
// GroupID, never both. Constructors in core enforce the pairing.
type Message struct {
	ID          string       `json:"id"`
	SenderID    string       `json:"sender_id"`
	Kind        MessageKind  `json:"kind"`
	ReceiverID  string       `json:"receiver_id,omitempty"`
	GroupID     string       `json:"group_id,omitempty"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
	ReadBy      []string     `json:"read_by"`
	Edited      bool         `json:"edited"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (m *Message) HasRead(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Target returns the conversation the message belongs to: the receiver id
// for direct messages, the group id for group ones.
func (m *Message) Target() string {
	if m.Kind == KindDirect {
		return m.ReceiverID
	}
	return m.GroupID
}

func (m *Message) Clone() *Message {
	c := *m
	c.ReadBy = append([]string(nil), m.ReadBy...)
	c.Attachments = append([]Attachment(nil), m.Attachments...)
	return &c
}

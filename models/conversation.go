package models

import "time"

// ConversationRow is a derived view: recomputed from messages and group
// memberships at query time, never persisted.
type ConversationRow struct {
	ConversationID string      `json:"conversation_id"`
	Kind           MessageKind `json:"kind"`
	LastMessage    *Message    `json:"last_message"`
	LastMessageAt  time.Time   `json:"last_message_at"`
	Unread         bool        `json:"unread"`
}

type UnreadCounts struct {
	Direct int `json:"direct"`
	Group  int `json:"group"`
	Total  int `json:"total"`
}

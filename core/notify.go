package core

import "time"

const (
	EventFriendRequest  = "friend.request"
	EventFriendAccepted = "friend.accepted"
	EventMessagePosted  = "message.posted"
)

// Event is a fire-and-forget notification record. The core only emits
// these; delivery and formatting belong to the transport collaborator.
type Event struct {
	Type       string      `json:"type"`
	Recipients []string    `json:"-"`
	Payload    interface{} `json:"payload"`
	CreatedAt  time.Time   `json:"created_at"`
}

type Notifier interface {
	Notify(e *Event)
}

// NopNotifier drops everything; used in tests and when no hub is wired.
type NopNotifier struct{}

func (NopNotifier) Notify(*Event) {}

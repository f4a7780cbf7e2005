package websocket

import (
	"encoding/json"
	"sync"

	"homeroom/core"
	"homeroom/logger"
)

// Hub fans core events out to connected clients. It is the delivery
// collaborator: the core hands it fire-and-forget event records and this
// package owns transport. It also answers presence queries.
type Hub struct {
	clients    map[string]*Client
	userConns  map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	messages *core.MessageService
	log      *logger.Logger
}

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type ClientMessage struct {
	Action    string `json:"action"`
	Kind      string `json:"kind,omitempty"`
	TargetID  string `json:"target_id,omitempty"`
	Content   string `json:"content,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}

var HubInstance *Hub

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		userConns:  make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Bind attaches the conversation store after construction; the hub is the
// message service's notifier, so the two cannot be built in one step.
func (h *Hub) Bind(messages *core.MessageService) {
	h.messages = messages
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			if h.userConns[client.UserID] == nil {
				h.userConns[client.UserID] = make(map[*Client]bool)
			}
			h.userConns[client.UserID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				if h.userConns[client.UserID] != nil {
					delete(h.userConns[client.UserID], client)
					if len(h.userConns[client.UserID]) == 0 {
						delete(h.userConns, client.UserID)
					}
				}
				close(client.Send)
			}
			h.mu.Unlock()
		}
	}
}

// Notify implements core.Notifier. Best effort: clients with a full send
// buffer are dropped rather than blocking the core.
func (h *Hub) Notify(e *core.Event) {
	h.SendToUsers(e.Recipients, &Message{Event: e.Type, Data: e.Payload})
}

func (h *Hub) SendToUser(userID string, msg *Message) {
	h.SendToUsers([]string{userID}, msg)
}

func (h *Hub) SendToUsers(userIDs []string, msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, userID := range userIDs {
		for client := range h.userConns[userID] {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// IsOnline implements core.Presence.
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.userConns[userID]) > 0
}

func InitHub(log *logger.Logger) {
	HubInstance = NewHub(log)
	go HubInstance.Run()
}

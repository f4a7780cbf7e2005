// Package memory is the zero-infrastructure backend: the same store
// interfaces as the MySQL backend, held in process memory. It backs tests
// and single-node demo runs.
package memory

import (
	"sort"
	"sync"

	"homeroom/models"
	"homeroom/store"
)

type Backend struct {
	mu sync.RWMutex

	users      map[string]*models.User
	friendSets map[string]map[string]bool

	friendships map[string]*models.Friendship
	pairs       map[string]string // "low|high" -> friendship id

	groups  map[string]*models.Group
	invites map[string]string // invite code -> group id

	messages map[string]*models.Message
	tasks    map[string]*models.Task
}

func New() *Backend {
	return &Backend{
		users:       make(map[string]*models.User),
		friendSets:  make(map[string]map[string]bool),
		friendships: make(map[string]*models.Friendship),
		pairs:       make(map[string]string),
		groups:      make(map[string]*models.Group),
		invites:     make(map[string]string),
		messages:    make(map[string]*models.Message),
		tasks:       make(map[string]*models.Task),
	}
}

func (b *Backend) Stores() store.Stores {
	return store.Stores{
		Users:       &userStore{b},
		Friendships: &friendshipStore{b},
		Groups:      &groupStore{b},
		Messages:    &messageStore{b},
		Tasks:       &taskStore{b},
	}
}

func pairKey(low, high string) string {
	return low + "|" + high
}

// sortNewestFirst orders by created_at descending; equal timestamps fall
// back to the lexicographically greater id, matching the conversation
// index tie-break.
func sortNewestFirst(msgs []models.Message) {
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID > msgs[j].ID
		}
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
}

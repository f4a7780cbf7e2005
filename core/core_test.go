package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"homeroom/models"
	"homeroom/store"
	"homeroom/store/memory"
)

func testStores(t *testing.T, userIDs ...string) store.Stores {
	t.Helper()

	s := memory.New().Stores()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, id := range userIDs {
		err := s.Users.Create(&models.User{
			ID:          id,
			Handle:      id,
			DisplayName: id,
			Password:    "hash",
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		require.NoError(t, err)
	}
	return s
}

// stepClock returns a now func that advances one second per call.
func stepClock(start time.Time) func() time.Time {
	cur := start
	return func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKey(t *testing.T) {
	low, high := PairKey("bob", "alice")
	assert.Equal(t, "alice", low)
	assert.Equal(t, "bob", high)

	// same order either way in
	low2, high2 := PairKey("alice", "bob")
	assert.Equal(t, low, low2)
	assert.Equal(t, high, high2)
}

func TestOtherParty(t *testing.T) {
	f := &Friendship{PartyLow: "alice", PartyHigh: "bob"}

	assert.Equal(t, "bob", f.OtherParty("alice"))
	assert.Equal(t, "alice", f.OtherParty("bob"))
	assert.Equal(t, "", f.OtherParty("carol"))
	assert.True(t, f.HasParty("alice"))
	assert.False(t, f.HasParty("carol"))
}

package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateInviteCode returns a random 16-hex-char group invite code.
func GenerateInviteCode() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		panic("failed to generate random code: " + err.Error())
	}
	return hex.EncodeToString(bytes)
}

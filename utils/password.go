package utils

import "golang.org/x/crypto/bcrypt"

// The credential transform is opaque to the rest of the code: hash on the
// way in, verify on the way back, nothing else.

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

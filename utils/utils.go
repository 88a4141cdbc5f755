package utils

import (
	"crypto/rand"
	"math/big"
)

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomPassword builds a random temporary password of the
// given length for accounts created through the approval flow.
func GenerateRandomPassword(length int) string {
	if length <= 0 {
		length = 12
	}

	password := make([]byte, length)
	for i := range password {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			password[i] = passwordCharset[0]
			continue
		}
		password[i] = passwordCharset[n.Int64()]
	}

	return string(password)
}

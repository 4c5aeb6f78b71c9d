package utils

import (
	"math/rand"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"

// GeneratePassword builds a random initial password of the given length from
// the allowed character set. The random source is injected so callers can
// seed it deterministically in tests.
func GeneratePassword(r *rand.Rand, length int) string {
	if length <= 0 {
		length = 12
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = passwordCharset[r.Intn(len(passwordCharset))]
	}
	return string(b)
}

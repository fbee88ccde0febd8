package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

const (
	saltLength  = 8
	tokenLength = 32
)

func GenerateSalt() string {
	return randomHex(saltLength)
}

// GenerateToken returns a random URL-safe token for email links.
func GenerateToken() string {
	return randomHex(tokenLength)
}

// HashPassword digests salt+password before bcrypt, which rejects inputs
// over 72 bytes.
func HashPassword(password string, salt string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(digest(password, salt), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func ComparePasswords(hash string, password string, salt string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), digest(password, salt))
}

func digest(password string, salt string) []byte {
	sum := sha256.Sum256([]byte(salt + password))
	return []byte(hex.EncodeToString(sum[:]))
}

func randomHex(length int) string {
	buffer := make([]byte, length)
	if _, err := rand.Read(buffer); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buffer)
}

package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor applied when hashing passwords.
const BcryptCost = 12

// HashPassword hashes a raw password with bcrypt. The raw password is never stored.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword verifies a raw password against a stored bcrypt hash.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

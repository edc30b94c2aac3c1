package auth

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

// ErrWeakPassword is returned for passwords shorter than MinPasswordLen or
// longer than bcrypt accepts.
var ErrWeakPassword = errors.New("auth: password must be 6 to 72 bytes")

// Cost is the bcrypt cost used by HashPassword. Tests lower it.
var Cost = bcrypt.DefaultCost

// HashPassword returns a bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	if utf8.RuneCountInString(password) < MinPasswordLen || len(password) > 72 {
		return "", ErrWeakPassword
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a bcrypt hashed password with its possible plaintext equivalent.
func CheckPassword(hash string, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted one-way hash. There is deliberately no
// function that recovers or exposes a stored password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

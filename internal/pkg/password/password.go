package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed   = errors.New("password hashing failed")
	ErrMismatch        = errors.New("password mismatch")
	ErrInvalidPassword = errors.New("invalid password")
)

const MinLength = 8

func Hash(raw string) (string, error) {
	if len(raw) < MinLength {
		return "", ErrInvalidPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashed), nil
}

func Compare(hashed, raw string) error {
	if hashed == "" || raw == "" {
		return ErrInvalidPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}

	return nil
}

package otp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"tyreplus-backend/internal/domain/identity"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("no active otp challenge")
	ErrExpired           = errors.New("otp challenge expired")
	ErrAttemptsExhausted = errors.New("otp attempts exhausted")
	ErrInvalidCode       = errors.New("invalid otp code")
	ErrAlreadyConsumed   = errors.New("otp challenge already consumed")
)

const CodeLength = 4

// Challenge is a single OTP issued for a mobile number. At most one
// active (unexpired, unconsumed) challenge exists per mobile; issuing a
// new one supersedes the old.
type Challenge struct {
	id                uuid.UUID
	mobile            identity.Mobile
	codeHash          string
	attemptsRemaining int
	consumed          bool
	createdAt         time.Time
	expiresAt         time.Time
}

// GenerateCode returns a zero-padded numeric code of CodeLength digits.
func GenerateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < CodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeLength, n), nil
}

// HashCode hashes the plaintext code for storage. A 4-digit space gains
// nothing from a slow hash; the point is only to keep plaintext codes out
// of the table.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func NewChallenge(mobile identity.Mobile, code string, attemptBudget int, ttl time.Duration, now time.Time) *Challenge {
	return &Challenge{
		id:                uuid.New(),
		mobile:            mobile,
		codeHash:          HashCode(code),
		attemptsRemaining: attemptBudget,
		consumed:          false,
		createdAt:         now,
		expiresAt:         now.Add(ttl),
	}
}

func Reconstruct(
	id uuid.UUID,
	mobile identity.Mobile,
	codeHash string,
	attemptsRemaining int,
	consumed bool,
	createdAt, expiresAt time.Time,
) *Challenge {
	return &Challenge{
		id:                id,
		mobile:            mobile,
		codeHash:          codeHash,
		attemptsRemaining: attemptsRemaining,
		consumed:          consumed,
		createdAt:         createdAt,
		expiresAt:         expiresAt,
	}
}

// CheckVerifiable reports whether a verify attempt may proceed at all.
// Order matters: consumed and exhausted challenges are rejected even when
// still inside the expiry window.
func (c *Challenge) CheckVerifiable(now time.Time) error {
	if c.consumed {
		return ErrAlreadyConsumed
	}
	if c.attemptsRemaining <= 0 {
		return ErrAttemptsExhausted
	}
	if now.After(c.expiresAt) {
		return ErrExpired
	}
	return nil
}

// Matches compares the candidate code in constant time.
func (c *Challenge) Matches(code string) bool {
	candidate := HashCode(code)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(c.codeHash)) == 1
}

// WithinCooldown reports whether a resend would arrive inside the
// anti-hammering window.
func (c *Challenge) WithinCooldown(now time.Time, cooldown time.Duration) bool {
	return !c.consumed && now.Before(c.createdAt.Add(cooldown))
}

func (c *Challenge) ID() uuid.UUID            { return c.id }
func (c *Challenge) Mobile() identity.Mobile  { return c.mobile }
func (c *Challenge) CodeHash() string         { return c.codeHash }
func (c *Challenge) AttemptsRemaining() int   { return c.attemptsRemaining }
func (c *Challenge) Consumed() bool           { return c.consumed }
func (c *Challenge) CreatedAt() time.Time     { return c.createdAt }
func (c *Challenge) ExpiresAt() time.Time     { return c.expiresAt }

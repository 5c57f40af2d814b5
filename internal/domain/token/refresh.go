package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("refresh token not found")
	ErrExpired  = errors.New("refresh token expired")
	ErrRevoked  = errors.New("refresh token revoked")
)

// GenerateOpaque returns a random refresh token string. Only its hash is
// stored; losing the plaintext means re-login.
func GenerateOpaque() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Refresh is a stored, revocable refresh token record.
type Refresh struct {
	id         uuid.UUID
	identityID uuid.UUID
	tokenHash  string
	revoked    bool
	createdAt  time.Time
	expiresAt  time.Time
}

func NewRefresh(identityID uuid.UUID, plaintext string, ttl time.Duration, now time.Time) *Refresh {
	return &Refresh{
		id:         uuid.New(),
		identityID: identityID,
		tokenHash:  Hash(plaintext),
		createdAt:  now,
		expiresAt:  now.Add(ttl),
	}
}

func Reconstruct(id, identityID uuid.UUID, tokenHash string, revoked bool, createdAt, expiresAt time.Time) *Refresh {
	return &Refresh{
		id:         id,
		identityID: identityID,
		tokenHash:  tokenHash,
		revoked:    revoked,
		createdAt:  createdAt,
		expiresAt:  expiresAt,
	}
}

// CheckUsable rejects revoked tokens before expired ones so a revoked
// token never reads as merely stale.
func (r *Refresh) CheckUsable(now time.Time) error {
	if r.revoked {
		return ErrRevoked
	}
	if now.After(r.expiresAt) {
		return ErrExpired
	}
	return nil
}

func (r *Refresh) MatchesHash(candidateHash string) bool {
	return subtle.ConstantTimeCompare([]byte(candidateHash), []byte(r.tokenHash)) == 1
}

func (r *Refresh) Revoke() {
	r.revoked = true
}

func (r *Refresh) ID() uuid.UUID         { return r.id }
func (r *Refresh) IdentityID() uuid.UUID { return r.identityID }
func (r *Refresh) TokenHash() string     { return r.tokenHash }
func (r *Refresh) Revoked() bool         { return r.revoked }
func (r *Refresh) CreatedAt() time.Time  { return r.createdAt }
func (r *Refresh) ExpiresAt() time.Time  { return r.expiresAt }

package identity

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidMobile = errors.New("invalid mobile number")
	ErrInvalidEmail  = errors.New("invalid email")
)

// Indian mobile numbers: exactly 10 digits.
var mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type Mobile string

func NewMobile(s string) (Mobile, error) {
	if !mobilePattern.MatchString(s) {
		return "", ErrInvalidMobile
	}
	return Mobile(s), nil
}

func (m Mobile) String() string {
	return string(m)
}

// Identity is a customer or dealer account. Guest identities created on
// first OTP verification carry a placeholder name and no email.
type Identity struct {
	id           uuid.UUID
	mobile       Mobile
	role         Role
	name         string
	email        *string
	passwordHash *string
	verifiedAt   *time.Time
	createdAt    time.Time
}

func NewGuest(mobile Mobile, role Role, now time.Time) *Identity {
	name := "Guest Customer"
	if role == RoleDealer {
		name = "Guest Dealer"
	}
	verified := now
	return &Identity{
		id:         uuid.New(),
		mobile:     mobile,
		role:       role,
		name:       name,
		verifiedAt: &verified,
		createdAt:  now,
	}
}

func NewDealer(mobile Mobile, name, email, passwordHash string, now time.Time) (*Identity, error) {
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	verified := now
	return &Identity{
		id:           uuid.New(),
		mobile:       mobile,
		role:         RoleDealer,
		name:         name,
		email:        &email,
		passwordHash: &passwordHash,
		verifiedAt:   &verified,
		createdAt:    now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	mobile Mobile,
	role Role,
	name string,
	email *string,
	passwordHash *string,
	verifiedAt *time.Time,
	createdAt time.Time,
) *Identity {
	return &Identity{
		id:           id,
		mobile:       mobile,
		role:         role,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		verifiedAt:   verifiedAt,
		createdAt:    createdAt,
	}
}

func (i *Identity) ID() uuid.UUID          { return i.id }
func (i *Identity) Mobile() Mobile         { return i.mobile }
func (i *Identity) Role() Role             { return i.role }
func (i *Identity) Name() string           { return i.name }
func (i *Identity) Email() *string         { return i.email }
func (i *Identity) PasswordHash() *string  { return i.passwordHash }
func (i *Identity) VerifiedAt() *time.Time { return i.verifiedAt }
func (i *Identity) CreatedAt() time.Time   { return i.createdAt }

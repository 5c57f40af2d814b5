package identity

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role distinguishes the two identity kinds sharing the auth stack.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDealer   Role = "dealer"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleDealer:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

package domain

import (
	"errors"
	"time"
)

// SystemUserID owns the per-currency clearing accounts. It is reserved
// at migration time and never exposed through the user API.
const SystemUserID = "system"

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrUserBlocked  = errors.New("user is blocked")
	ErrSystemUser   = errors.New("operation not allowed on the system user")
)

// UserStatus controls whether a user may move money.
type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// IsValid checks if the status is a known user status.
func (s UserStatus) IsValid() bool {
	return s == UserStatusActive || s == UserStatusBlocked
}

// User owns one account per supported currency. Blocked users keep
// their balances but cannot apply or roll back transactions.
type User struct {
	ID        string
	Name      string
	Status    UserStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateActive checks if the user may move money.
func (u *User) ValidateActive() error {
	if u.Status == UserStatusBlocked {
		return ErrUserBlocked
	}
	return nil
}

// IsSystem reports whether this is the reserved clearing-account owner.
func (u *User) IsSystem() bool {
	return u.ID == SystemUserID
}

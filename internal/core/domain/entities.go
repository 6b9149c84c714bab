package domain

import "time"

// Role represents a user role in the system
type Role string

const (
	RoleStudent Role = "student"
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// Identity is the resolved result of a validated token: the user the
// claims point at, plus the claims the token carried.
type Identity struct {
	UserID    uint
	Email     string
	Role      Role
	Confirmed bool
	JTI       string
}

// User represents a user in the domain layer
type User struct {
	ID                uint
	Email             string
	Password          string // hashed
	Role              Role
	Confirmed         bool
	ConfirmedOn       *time.Time
	HasUsablePassword bool
	RegisteredOn      time.Time
}

// TokenPair represents an access and refresh token issued together
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RecruitmentWindow is the time range a club accepts new members in,
// either a recruiting period or an application deadline depending on
// the club's mode.
type RecruitmentWindow struct {
	Start *time.Time
	End   *time.Time
}

// Contains reports whether the instant falls strictly inside the window.
// A window with a missing bound contains nothing.
func (w RecruitmentWindow) Contains(t time.Time) bool {
	if w.Start == nil || w.End == nil {
		return false
	}
	return w.Start.Before(t) && w.End.After(t)
}

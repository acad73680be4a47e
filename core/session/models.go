package session

import (
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// LoginRoute is the navigation target for unauthenticated visitors.
const LoginRoute = "/login"

// PermissionAll grants every capability.
const PermissionAll = "all"

var (
	// errors
	ErrNoSession          = errors.New("no active session")
	ErrNotFound           = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginInFlight      = errors.New("a login attempt is already in progress")
)

// User is the authenticated portal account as persisted in the session record.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Department  string    `json:"department"`
	Permissions []string  `json:"permissions"`
	LastLogin   time.Time `json:"lastLogin"` // UTC
}

// HasPermission reports whether the user carries the given capability.
func (u *User) HasPermission(perm string) bool {
	for _, p := range u.Permissions {
		if p == perm || p == PermissionAll {
			return true
		}
	}
	return false
}

// Credential is one entry of the portal's account allow-list.
// In this demo the list is fixed; a production deployment would resolve
// credentials against the upstream identity backend instead.
type Credential struct {
	ID               string
	Email            string // unique, compared case-insensitively
	Name             string
	Role             string
	Department       string
	Permissions      []string
	PasswordHash     []byte
	TwoFactorEnabled bool
}

// CheckPassword compares a clear-text password against the credential's hash.
func (c *Credential) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(pwd))
}

// User builds the session record for this credential, stamped at t.
func (c *Credential) User(t time.Time) User {
	perms := make([]string, len(c.Permissions))
	copy(perms, c.Permissions)
	return User{
		ID:          c.ID,
		Email:       c.Email,
		Name:        c.Name,
		Role:        c.Role,
		Department:  c.Department,
		Permissions: perms,
		LastLogin:   t.UTC(),
	}
}

// UserPatch defines what information may be shallow-merged into the current
// session record. Nil fields are left untouched.
type UserPatch struct {
	Name        *string  `json:"name"`
	Role        *string  `json:"role"`
	Department  *string  `json:"department"`
	Permissions []string `json:"permissions"`
}

// HashPassword hashes a clear-text password for a directory entry.
func HashPassword(pwd string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
}

func mustHashPassword(pwd string) []byte {
	hash, err := HashPassword(pwd)
	if err != nil {
		panic(err)
	}
	return hash
}

package session

import "strings"

// Directory is the fixed credential allow-list the demo login validates
// against. A real deployment swaps this for the identity backend.
type Directory []Credential

// Lookup finds a credential by its email, compared case-insensitively.
// The identifier is expected to be cleaned (trimmed, lowered) already.
func (d Directory) Lookup(identifier string) (Credential, error) {
	for _, cred := range d {
		if strings.ToLower(cred.Email) == identifier {
			return cred, nil
		}
	}
	return Credential{}, ErrNotFound
}

// LookupID finds a credential by its account ID.
func (d Directory) LookupID(id string) (Credential, error) {
	for _, cred := range d {
		if cred.ID == id {
			return cred, nil
		}
	}
	return Credential{}, ErrNotFound
}

// DemoSecret is the shared demo password every directory entry accepts.
const DemoSecret = "123456"

// DemoDirectory returns the built-in allow-list.
func DemoDirectory() Directory {
	hash := mustHashPassword(DemoSecret)
	return Directory{
		{
			ID:           "SA001",
			Email:        "admin@megatechsolutions.org",
			Name:         "Dr. Adewale Ogunleye",
			Role:         "super_admin",
			Department:   "Platform Administration",
			Permissions:  []string{PermissionAll},
			PasswordHash: hash,
		},
		{
			ID:               "SA002",
			Email:            "ops@megatechsolutions.org",
			Name:             "Ngozi Eze",
			Role:             "super_admin",
			Department:       "Operations",
			Permissions:      []string{"schools", "tickets", "reports"},
			PasswordHash:     hash,
			TwoFactorEnabled: true,
		},
	}
}

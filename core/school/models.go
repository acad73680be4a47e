package school

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/megatechsolutions/superadmin/core"
)

// Account statuses shared by schools and admins.
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

var (
	// errors
	ErrNotFound    = errors.New("record not found")
	ErrEmailExists = errors.New("a record with this email already exists")
)

// School is one customer school on the platform.
type School struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	Students  int       `json:"students"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}

// Admin is a school-level administrator account.
type Admin struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	SchoolID  string    `json:"schoolId"`
	School    string    `json:"school"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"` // UTC
}

// Student is one enrolled student record, read-only in this portal.
type Student struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	SchoolID string `json:"schoolId"`
	School   string `json:"school"`
	Class    string `json:"class"`
	Status   string `json:"status"`
}

// Stats aggregates the dashboard headline numbers.
type Stats struct {
	Schools       int `json:"schools"`
	Admins        int `json:"admins"`
	Students      int `json:"students"`
	ActiveTickets int `json:"activeTickets"`
}

// NewSchool contains information needed to onboard a school.
type NewSchool struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Plan    string `json:"plan" validate:"required,alphanum_"`
}

func (ns *NewSchool) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return validate.Struct(ns)
}

// NewAdmin contains information needed to create a school admin.
type NewAdmin struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	SchoolID string `json:"schoolId" validate:"required"`
}

func (na *NewAdmin) Validate(validate *validator.Validate) error {
	na.Name = core.CleanString(na.Name)
	na.Email = core.CleanString(na.Email, true /* lower */)
	na.SchoolID = core.CleanString(na.SchoolID)
	return validate.Struct(na)
}

// UpdateAdmin defines what information may be provided to modify an admin.
// Empty fields are left untouched.
type UpdateAdmin struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (ua *UpdateAdmin) Validate(validate *validator.Validate) error {
	ua.Name = core.CleanString(ua.Name)
	ua.Email = core.CleanString(ua.Email, true /* lower */)
	return validate.Struct(ua)
}

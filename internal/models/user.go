package models

import (
	"time"
)

// Role is the closed set of account roles
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ValidRoles defines allowed user roles
var ValidRoles = map[Role]bool{
	RoleAdmin: true,
	RoleUser:  true,
}

// ParseRole returns the role named by s
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, ValidRoles[r]
}

// IsAdmin reports whether the role is admin
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// DateLayout is the wire and storage format of birth dates
const DateLayout = "2006-01-02"

// User represents an account in the system
type User struct {
	ID              string     `json:"id" db:"id"`
	FirstName       string     `json:"firstName" db:"first_name"`
	LastName        string     `json:"lastName" db:"last_name"`
	BirthDate       string     `json:"birthDate" db:"birth_date"`
	City            string     `json:"city" db:"city"`
	Country         string     `json:"country" db:"country"`
	Avatar          string     `json:"avatar" db:"avatar"`
	Company         string     `json:"company" db:"company"`
	JobPosition     string     `json:"jobPosition" db:"job_position"`
	Mobile          string     `json:"mobile" db:"mobile"`
	Username        string     `json:"username" db:"username"`
	Email           string     `json:"email" db:"email"`
	PasswordHash    string     `json:"-" db:"password"` // never expose hash in JSON
	Role            Role       `json:"role" db:"role"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt" db:"email_verified_at"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}

// GeneratedProfile is a synthetic profile produced by the generator. The
// password is plaintext; profiles are output artifacts and never stored as is.
type GeneratedProfile struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	BirthDate   string `json:"birthDate"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Avatar      string `json:"avatar"`
	Company     string `json:"company"`
	JobPosition string `json:"jobPosition"`
	Mobile      string `json:"mobile"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
}

// CandidateRecord is one batch import element before validation
type CandidateRecord struct {
	FirstName   string `json:"firstName" validate:"required,max=255"`
	LastName    string `json:"lastName" validate:"required,max=255"`
	BirthDate   string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	City        string `json:"city" validate:"required,max=255"`
	Country     string `json:"country" validate:"required,len=2"`
	Avatar      string `json:"avatar" validate:"required,url"`
	Company     string `json:"company" validate:"required,max=255"`
	JobPosition string `json:"jobPosition" validate:"required,max=255"`
	Mobile      string `json:"mobile" validate:"required,max=255"`
	Username    string `json:"username" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=6,max=10"`
	Role        string `json:"role" validate:"required,oneof=admin user"`
}

// ImportOutcome tallies one batch import call. Total always equals
// Imported + Failed.
type ImportOutcome struct {
	Total    int `json:"total"`
	Imported int `json:"imported"`
	Failed   int `json:"failed"`
}

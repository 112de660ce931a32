package model

import "time"

// User represents a registered customer or staff member of the studio portal.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	CompanyName  string
	PasswordHash string
	IsStaff      bool
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Subject returns the caller identity derived from the user record.
func (u *User) Subject() Subject {
	return Subject{ID: u.ID, IsStaff: u.IsStaff}
}

// ProfilePatch lists profile fields a user may change on their own record.
// Nil fields are left untouched.
type ProfilePatch struct {
	Email       *string
	FirstName   *string
	LastName    *string
	Phone       *string
	CompanyName *string
}

// Empty reports whether the patch carries no changes.
func (p ProfilePatch) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil && p.Phone == nil && p.CompanyName == nil
}

// Registration is the self-service sign up payload.
type Registration struct {
	Username    string `json:"username" validate:"required,notblank,max=150"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Password2   string `json:"password2" validate:"required,eqfield=Password"`
	FirstName   string `json:"first_name" validate:"max=150"`
	LastName    string `json:"last_name" validate:"max=150"`
	Phone       string `json:"phone" validate:"max=15"`
	CompanyName string `json:"company_name" validate:"max=100"`
}

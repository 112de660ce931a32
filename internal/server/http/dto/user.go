package dto

import "time"

// RegisterRequest is the sign up payload.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Password2   string `json:"password2"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
}

// ProfileUpdateRequest lists editable profile fields. Absent fields stay unchanged.
type ProfileUpdateRequest struct {
	Email       *string `json:"email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"company_name"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	CompanyName string    `json:"company_name"`
	IsStaff     bool      `json:"is_staff"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegisterResponse returns the new account with its first token pair.
type RegisterResponse struct {
	User UserResponse `json:"user"`
	TokenPairResponse
}

package models

import "time"

type User struct {
	ID                int        `json:"id" db:"id"`
	Username          string     `json:"username" db:"username"`
	Email             string     `json:"email" db:"email"`
	Password          string     `json:"password,omitempty" db:"-"` // Только при регистрации и входе
	PasswordHash      string     `json:"-" db:"password_hash"`
	FirstName         string     `json:"first_name" db:"first_name"`
	LastName          string     `json:"last_name" db:"last_name"`
	ContactNumber     string     `json:"contact_number" db:"contact_number"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	EmailVerified     bool       `json:"email_verified" db:"email_verified"`
	VerificationToken string     `json:"-" db:"verification_token"`
	LastLogin         *time.Time `json:"last_login,omitempty" db:"last_login"`
}

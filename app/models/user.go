package models

import (
	"errors"
	"time"
)

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return err
	}

	if u.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (u *User) BeforeCreate() {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
}

// ValidateRegistration validates a registration request.
func ValidateRegistration(req *CreateUserRequest) error {
	return validate.Struct(req)
}

// ValidateLogin validates a login request.
func ValidateLogin(req *LoginRequest) error {
	return validate.Struct(req)
}

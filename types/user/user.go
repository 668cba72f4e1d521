package user

import (
	"strings"

	"travel-portal/constants"
	"travel-portal/services/validation"
)

// User is the user service's view of an account.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"userName"`
	Email         string `json:"userEmail"`
	Role          string `json:"role"`
	ContactNumber string `json:"contactNumber"`
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	UserName        string `json:"userName" validate:"notblank,max=100"`
	UserEmail       string `json:"userEmail" validate:"required,email"`
	UserPassword    string `json:"userPassword" validate:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	ContactNumber   string `json:"contactNumber" validate:"phone"`
	Role            string `json:"role" validate:"omitempty,oneof=USER TRAVEL_AGENT"`
}

// Validate checks the form before anything is sent to the user service.
func (r *RegisterRequest) Validate() error {
	r.UserName = strings.TrimSpace(r.UserName)
	r.UserEmail = strings.TrimSpace(r.UserEmail)
	r.ContactNumber = strings.TrimSpace(r.ContactNumber)
	if r.Role == "" {
		r.Role = constants.RoleUser
	}

	errs := validation.Struct(r)
	if r.ConfirmPassword != r.UserPassword {
		errs["confirmPassword"] = validation.MismatchMessage
	}
	return errs.OrNil()
}

// RegisterPayload is what the user service receives; the confirmation
// field never leaves this service.
type RegisterPayload struct {
	UserName      string `json:"userName"`
	UserEmail     string `json:"userEmail"`
	UserPassword  string `json:"userPassword"`
	ContactNumber string `json:"contactNumber"`
	Role          string `json:"role"`
}

func (r RegisterRequest) Payload() RegisterPayload {
	return RegisterPayload{
		UserName:      r.UserName,
		UserEmail:     r.UserEmail,
		UserPassword:  r.UserPassword,
		ContactNumber: r.ContactNumber,
		Role:          r.Role,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validation.Struct(r).OrNil()
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AdminCreateRequest lets an administrator create any role.
type AdminCreateRequest struct {
	UserName      string `json:"userName" validate:"notblank,max=100"`
	UserEmail     string `json:"userEmail" validate:"required,email"`
	UserPassword  string `json:"userPassword" validate:"password"`
	ContactNumber string `json:"contactNumber" validate:"phone"`
	Role          string `json:"role" validate:"required,oneof=USER ADMIN TRAVEL_AGENT"`
}

func (r *AdminCreateRequest) Validate() error {
	return validation.Struct(r).OrNil()
}

func (r AdminCreateRequest) Payload() RegisterPayload {
	return RegisterPayload{
		UserName:      strings.TrimSpace(r.UserName),
		UserEmail:     strings.TrimSpace(r.UserEmail),
		UserPassword:  r.UserPassword,
		ContactNumber: strings.TrimSpace(r.ContactNumber),
		Role:          r.Role,
	}
}

// UpdateRequest is a profile edit; empty fields are left unchanged.
type UpdateRequest struct {
	UserName      string `json:"userName,omitempty" validate:"omitempty,max=100"`
	UserEmail     string `json:"userEmail,omitempty" validate:"omitempty,email"`
	ContactNumber string `json:"contactNumber,omitempty" validate:"omitempty,phone"`
	Role          string `json:"role,omitempty" validate:"omitempty,oneof=USER ADMIN TRAVEL_AGENT"`
}

func (r *UpdateRequest) Validate() error {
	return validation.Struct(r).OrNil()
}

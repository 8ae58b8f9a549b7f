package user

import (
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

type UserResponse struct {
	SubjectID string    `json:"subject_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(u User) UserResponse {
	return UserResponse{
		SubjectID: u.SubjectID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// UpdateUserRequest is the admin partial update. Only role and active flag
// are mutable; everything else is owned by the identity provider.
type UpdateUserRequest struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Role != nil && !IsValidRole(Role(*r.Role)) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be employee, hr_manager or admin"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SyncUserRequest is the identity provider webhook payload.
type SyncUserRequest struct {
	Type string       `json:"type"`
	Data SyncUserData `json:"data"`
}

type SyncUserData struct {
	ID             string      `json:"id"`
	EmailAddresses []SyncEmail `json:"email_addresses"`
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
}

type SyncEmail struct {
	EmailAddress string           `json:"email_address"`
	Verification SyncVerification `json:"verification"`
}

type SyncVerification struct {
	Status string `json:"status"`
}

// VerifiedEmail returns the first verified email address in the payload.
func (d SyncUserData) VerifiedEmail() string {
	for _, e := range d.EmailAddresses {
		if e.Verification.Status == "verified" {
			return e.EmailAddress
		}
	}
	return ""
}

type SyncUserResponse struct {
	Message string        `json:"message"`
	User    *UserResponse `json:"user,omitempty"`
}

package department

import (
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

type DepartmentResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	ManagerSubjectID *string   `json:"manager"`
	ManagerEmail     *string   `json:"manager_email"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToDepartmentResponse(d Department) DepartmentResponse {
	return DepartmentResponse{
		ID:               d.ID,
		Name:             d.Name,
		ManagerSubjectID: d.ManagerSubjectID,
		ManagerEmail:     d.ManagerEmail,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type CreateDepartmentRequest struct {
	Name             string  `json:"name"`
	ManagerSubjectID *string `json:"manager,omitempty"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateDepartmentRequest is a partial update; an empty manager clears it.
type UpdateDepartmentRequest struct {
	Name             *string `json:"name,omitempty"`
	ManagerSubjectID *string `json:"manager,omitempty"`
}

func (r *UpdateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

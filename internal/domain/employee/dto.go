package employee

import (
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/domain/salary"
	"github.com/peoplehq/hrms-backend-go/internal/domain/title"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

type ProfileResponse struct {
	User                user.UserResponse             `json:"user"`
	DepartmentID        *string                       `json:"department_id"`
	DepartmentName      *string                       `json:"department_name"`
	JobTitle            string                        `json:"job_title"`
	HireDate            *string                       `json:"hire_date"`
	PhoneNumber         string                        `json:"phone_number"`
	Address             string                        `json:"address"`
	OnboardingStatus    string                        `json:"onboarding_status"`
	OnboardingStartDate *string                       `json:"onboarding_start_date"`
	CurrentSalary       *salary.SalaryResponse        `json:"current_salary,omitempty"`
	CurrentTitle        *title.TitleHistoryResponse   `json:"current_title,omitempty"`
	UpdatedAt           time.Time                     `json:"updated_at"`
}

func ToProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		User:                user.ToUserResponse(p.User),
		DepartmentID:        p.DepartmentID,
		DepartmentName:      p.DepartmentName,
		JobTitle:            p.JobTitle,
		HireDate:            formatDate(p.HireDate),
		PhoneNumber:         p.PhoneNumber,
		Address:             p.Address,
		OnboardingStatus:    string(p.OnboardingStatus),
		OnboardingStartDate: formatDate(p.OnboardingStartDate),
		UpdatedAt:           p.UpdatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// DirectoryEntry is the reduced row returned by the employee directory.
type DirectoryEntry struct {
	SubjectID      string  `json:"subject_id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	JobTitle       string  `json:"job_title"`
	DepartmentName *string `json:"department_name"`
}

// DirectoryFilter narrows the directory search. All filters are optional;
// only employees with active accounts are ever returned.
type DirectoryFilter struct {
	DepartmentID *string
	Title        *string
	Search       *string
}

// UpdateProfileRequest is the HR partial update. The field set is the
// explicit allow-list of what HR may change; user identity fields are not
// part of it. An empty department_id clears the assignment.
type UpdateProfileRequest struct {
	DepartmentID        *string `json:"department_id,omitempty"`
	JobTitle            *string `json:"job_title,omitempty"`
	HireDate            *string `json:"hire_date,omitempty"`
	PhoneNumber         *string `json:"phone_number,omitempty"`
	Address             *string `json:"address,omitempty"`
	OnboardingStatus    *string `json:"onboarding_status,omitempty"`
	OnboardingStartDate *string `json:"onboarding_start_date,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.JobTitle != nil && validator.IsEmpty(*r.JobTitle) {
		errs = append(errs, validator.ValidationError{Field: "job_title", Message: "must not be empty"})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.OnboardingStartDate != nil {
		if _, ok := validator.IsValidDate(*r.OnboardingStartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "onboarding_start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.OnboardingStatus != nil && !IsValidOnboardingStatus(OnboardingStatus(*r.OnboardingStatus)) {
		errs = append(errs, validator.ValidationError{Field: "onboarding_status", Message: "must be Pending, Scheduled, InProgress, Completed or Cancelled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

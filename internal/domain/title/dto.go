package title

import (
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

type TitleHistoryResponse struct {
	ID                string    `json:"id"`
	EmployeeSubjectID string    `json:"employee"`
	JobTitle          string    `json:"job_title"`
	StartDate         string    `json:"start_date"`
	EndDate           *string   `json:"end_date"`
	CreatedAt         time.Time `json:"created_at"`
}

func ToTitleHistoryResponse(t TitleHistory) TitleHistoryResponse {
	resp := TitleHistoryResponse{
		ID:                t.ID,
		EmployeeSubjectID: t.EmployeeSubjectID,
		JobTitle:          t.JobTitle,
		StartDate:         t.StartDate.Format("2006-01-02"),
		CreatedAt:         t.CreatedAt,
	}
	if t.EndDate != nil {
		s := t.EndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}

type CreateTitleHistoryRequest struct {
	EmployeeSubjectID string  `json:"employee"`
	JobTitle          string  `json:"job_title"`
	StartDate         string  `json:"start_date"`
	EndDate           *string `json:"end_date,omitempty"`
}

func (r *CreateTitleHistoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeSubjectID) {
		errs = append(errs, validator.ValidationError{Field: "employee", Message: "is required"})
	}
	if validator.IsEmpty(r.JobTitle) {
		errs = append(errs, validator.ValidationError{Field: "job_title", Message: "is required"})
	}
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.EndDate != nil {
		end, ok := validator.IsValidDate(*r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		} else if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTitleHistoryRequest struct {
	JobTitle  *string `json:"job_title,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (r *UpdateTitleHistoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.JobTitle != nil && validator.IsEmpty(*r.JobTitle) {
		errs = append(errs, validator.ValidationError{Field: "job_title", Message: "must not be empty"})
	}
	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TitleFilter narrows title history listings to one employee.
type TitleFilter struct {
	EmployeeSubjectID *string
}

package salary

import (
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SalaryResponse struct {
	ID                string          `json:"id"`
	EmployeeSubjectID string          `json:"employee"`
	Amount            decimal.Decimal `json:"amount"`
	EffectiveDate     string          `json:"effective_date"`
	IsCurrent         bool            `json:"is_current"`
	CreatedAt         time.Time       `json:"created_at"`
}

func ToSalaryResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:                s.ID,
		EmployeeSubjectID: s.EmployeeSubjectID,
		Amount:            s.Amount,
		EffectiveDate:     s.EffectiveDate.Format("2006-01-02"),
		IsCurrent:         s.IsCurrent,
		CreatedAt:         s.CreatedAt,
	}
}

type CreateSalaryRequest struct {
	EmployeeSubjectID string          `json:"employee"`
	Amount            decimal.Decimal `json:"amount"`
	EffectiveDate     string          `json:"effective_date"`
}

func (r *CreateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeSubjectID) {
		errs = append(errs, validator.ValidationError{Field: "employee", Message: "is required"})
	}
	if r.Amount.IsNegative() || r.Amount.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSalaryRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	EffectiveDate *string          `json:"effective_date,omitempty"`
	IsCurrent     *bool            `json:"is_current,omitempty"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Amount != nil && (r.Amount.IsNegative() || r.Amount.IsZero()) {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if r.EffectiveDate != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SalaryFilter narrows salary listings to one employee.
type SalaryFilter struct {
	EmployeeSubjectID *string
}

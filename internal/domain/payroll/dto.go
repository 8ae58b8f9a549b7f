package payroll

import (
	"time"

	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PayRunResponse struct {
	ID          string     `json:"id"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	PayDate     string     `json:"pay_date"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at"`
}

func ToPayRunResponse(r PayRun) PayRunResponse {
	return PayRunResponse{
		ID:          r.ID,
		StartDate:   r.StartDate.Format("2006-01-02"),
		EndDate:     r.EndDate.Format("2006-01-02"),
		PayDate:     r.PayDate.Format("2006-01-02"),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		ProcessedAt: r.ProcessedAt,
	}
}

type CreatePayRunRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	PayDate   string `json:"pay_date"`
}

func (r *CreatePayRunRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	pay, okPay := validator.IsValidDate(r.PayDate)
	if !okPay {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "cannot be before start_date"})
	}
	if okEnd && okPay && pay.Before(end) {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "cannot be before end_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ProcessResultResponse summarizes one processing attempt.
type ProcessResultResponse struct {
	Message      string `json:"message"`
	StubsCreated int    `json:"stubs_created"`
	Status       string `json:"status"`
}

// PayStubAdminResponse is the HR/admin view of a stub.
type PayStubAdminResponse struct {
	ID                string          `json:"id"`
	PayRunID          string          `json:"pay_run"`
	EmployeeSubjectID string          `json:"employee"`
	EmployeeEmail     *string         `json:"employee_email"`
	EmployeeName      *string         `json:"employee_name"`
	GrossPay          decimal.Decimal `json:"gross_pay"`
	Deductions        decimal.Decimal `json:"deductions"`
	NetPay            decimal.Decimal `json:"net_pay"`
	CreatedAt         time.Time       `json:"created_at"`
}

func ToPayStubAdminResponse(s PayStub) PayStubAdminResponse {
	return PayStubAdminResponse{
		ID:                s.ID,
		PayRunID:          s.PayRunID,
		EmployeeSubjectID: s.EmployeeSubjectID,
		EmployeeEmail:     s.EmployeeEmail,
		EmployeeName:      s.EmployeeName,
		GrossPay:          s.GrossPay,
		Deductions:        s.Deductions,
		NetPay:            s.NetPay,
		CreatedAt:         s.CreatedAt,
	}
}

// PayStubEmployeeResponse is the reduced self-service view; internal ids of
// the run and employee are not exposed.
type PayStubEmployeeResponse struct {
	ID          string          `json:"id"`
	PayDate     string          `json:"pay_date"`
	PeriodStart string          `json:"period_start_date"`
	PeriodEnd   string          `json:"period_end_date"`
	GrossPay    decimal.Decimal `json:"gross_pay"`
	Deductions  decimal.Decimal `json:"deductions"`
	NetPay      decimal.Decimal `json:"net_pay"`
}

func ToPayStubEmployeeResponse(s PayStub) PayStubEmployeeResponse {
	resp := PayStubEmployeeResponse{
		ID:         s.ID,
		GrossPay:   s.GrossPay,
		Deductions: s.Deductions,
		NetPay:     s.NetPay,
	}
	if s.PayDate != nil {
		resp.PayDate = s.PayDate.Format("2006-01-02")
	}
	if s.PeriodStart != nil {
		resp.PeriodStart = s.PeriodStart.Format("2006-01-02")
	}
	if s.PeriodEnd != nil {
		resp.PeriodEnd = s.PeriodEnd.Format("2006-01-02")
	}
	return resp
}

// StubFilter narrows admin stub listings.
type StubFilter struct {
	PayRunID          *string
	EmployeeSubjectID *string
}

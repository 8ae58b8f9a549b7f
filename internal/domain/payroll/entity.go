package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum. Lifecycle: Pending -> Processing -> Completed | Failed.
// The terminal states and Processing are never re-entered.
type RunStatus string

const (
	RunStatusPending    RunStatus = "Pending"
	RunStatusProcessing RunStatus = "Processing"
	RunStatusCompleted  RunStatus = "Completed"
	RunStatusFailed     RunStatus = "Failed"
)

// PayRun is one payroll cycle covering a date range.
type PayRun struct {
	ID          string
	StartDate   time.Time
	EndDate     time.Time
	PayDate     time.Time
	Status      RunStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// PayStub is one employee's pay for one run. Stubs are generated during
// processing, never edited afterwards, and survive employee removal.
type PayStub struct {
	ID                string
	PayRunID          string
	EmployeeSubjectID string
	GrossPay          decimal.Decimal
	Deductions        decimal.Decimal
	NetPay            decimal.Decimal
	CreatedAt         time.Time

	// Joined fields
	EmployeeEmail *string
	EmployeeName  *string
	PayDate       *time.Time
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
}

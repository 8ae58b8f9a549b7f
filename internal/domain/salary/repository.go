package salary

import "context"

type SalaryRepository interface {
	Create(ctx context.Context, s Salary) (Salary, error)
	GetByID(ctx context.Context, id string) (Salary, error)
	List(ctx context.Context, filter SalaryFilter) ([]Salary, error)
	Update(ctx context.Context, id string, req UpdateSalaryRequest) (Salary, error)
	Delete(ctx context.Context, id string) error
	// ClearCurrent flips every current row of the employee to non-current,
	// optionally sparing one row. Runs inside the caller's transaction.
	ClearCurrent(ctx context.Context, employeeSubjectID string, exceptID *string) error
	GetCurrent(ctx context.Context, employeeSubjectID string) (Salary, error)
	// ListCurrent returns the current salary row of every employee that has one.
	ListCurrent(ctx context.Context) ([]Salary, error)
}

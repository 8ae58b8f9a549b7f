package salary

import "context"

type SalaryService interface {
	// Create inserts a new salary row as the employee's current one,
	// atomically demoting any previous current row.
	Create(ctx context.Context, req CreateSalaryRequest) (SalaryResponse, error)
	Get(ctx context.Context, id string) (SalaryResponse, error)
	List(ctx context.Context, filter SalaryFilter) ([]SalaryResponse, error)
	// Update applies a partial update; setting is_current promotes the row
	// and demotes all others in one transaction.
	Update(ctx context.Context, id string, req UpdateSalaryRequest) (SalaryResponse, error)
	Delete(ctx context.Context, id string) error
}

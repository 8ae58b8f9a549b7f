package payroll

import "context"

type PayrollService interface {
	// Runs
	CreateRun(ctx context.Context, req CreatePayRunRequest) (PayRunResponse, error)
	GetRun(ctx context.Context, id string) (PayRunResponse, error)
	ListRuns(ctx context.Context) ([]PayRunResponse, error)
	DeleteRun(ctx context.Context, id string) error

	// ProcessRun advances a Pending run to a terminal state, generating one
	// stub per active employee with a current salary.
	ProcessRun(ctx context.Context, id string) (ProcessResultResponse, error)

	// Stubs
	ListStubs(ctx context.Context, filter StubFilter) ([]PayStubAdminResponse, error)
	ListMyStubs(ctx context.Context, employeeSubjectID string) ([]PayStubEmployeeResponse, error)
}

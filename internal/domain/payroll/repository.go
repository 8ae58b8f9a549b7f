package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// Runs
	CreateRun(ctx context.Context, run PayRun) (PayRun, error)
	GetRunByID(ctx context.Context, id string) (PayRun, error)
	ListRuns(ctx context.Context) ([]PayRun, error)
	DeleteRun(ctx context.Context, id string) error
	// MarkRunProcessing transitions Pending -> Processing with a
	// compare-and-set; it reports false when the run was not Pending, so two
	// concurrent process calls cannot both proceed.
	MarkRunProcessing(ctx context.Context, id string) (bool, error)
	// FinishRun records the terminal status and processed timestamp.
	FinishRun(ctx context.Context, id string, status RunStatus, processedAt time.Time) error

	// Stubs
	CreateStub(ctx context.Context, stub PayStub) (PayStub, error)
	ListStubs(ctx context.Context, filter StubFilter) ([]PayStub, error)
	ListStubsByEmployee(ctx context.Context, employeeSubjectID string) ([]PayStub, error)
}

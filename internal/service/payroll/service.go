package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/employee"
	"github.com/peoplehq/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplehq/hrms-backend-go/internal/domain/salary"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
	"github.com/peoplehq/hrms-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	salaryRepo   salary.SalaryRepository
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	salaryRepo salary.SalaryRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		salaryRepo:   salaryRepo,
	}
}

// CreateRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreateRun(ctx context.Context, req payroll.CreatePayRunRequest) (payroll.PayRunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayRunResponse{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	payDate, _ := validator.IsValidDate(req.PayDate)

	created, err := s.payrollRepo.CreateRun(ctx, payroll.PayRun{
		StartDate: startDate,
		EndDate:   endDate,
		PayDate:   payDate,
		Status:    payroll.RunStatusPending,
	})
	if err != nil {
		return payroll.PayRunResponse{}, err
	}
	return payroll.ToPayRunResponse(created), nil
}

// GetRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.PayRunResponse, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, id)
	if err != nil {
		return payroll.PayRunResponse{}, err
	}
	return payroll.ToPayRunResponse(run), nil
}

// ListRuns implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRuns(ctx context.Context) ([]payroll.PayRunResponse, error) {
	runs, err := s.payrollRepo.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay runs: %w", err)
	}

	responses := make([]payroll.PayRunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, payroll.ToPayRunResponse(run))
	}
	return responses, nil
}

// DeleteRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) DeleteRun(ctx context.Context, id string) error {
	return s.payrollRepo.DeleteRun(ctx, id)
}

// ProcessRun implements payroll.PayrollService. The Pending -> Processing
// transition is a compare-and-set, so of two concurrent calls exactly one
// proceeds; the loser gets ErrInvalidRunState. Stub generation runs in a
// single transaction. Any failure flips the run to Failed with a recorded
// timestamp and surfaces the error.
func (s *PayrollServiceImpl) ProcessRun(ctx context.Context, id string) (payroll.ProcessResultResponse, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, id)
	if err != nil {
		return payroll.ProcessResultResponse{}, err
	}
	if run.Status != payroll.RunStatusPending {
		return payroll.ProcessResultResponse{}, payroll.ErrInvalidRunState
	}

	won, err := s.payrollRepo.MarkRunProcessing(ctx, id)
	if err != nil {
		return payroll.ProcessResultResponse{}, err
	}
	if !won {
		return payroll.ProcessResultResponse{}, payroll.ErrInvalidRunState
	}

	stubsCreated, procErr := s.generateStubs(ctx, run)

	status := payroll.RunStatusCompleted
	if procErr != nil {
		status = payroll.RunStatusFailed
	}
	if err := s.payrollRepo.FinishRun(ctx, id, status, time.Now().UTC()); err != nil {
		return payroll.ProcessResultResponse{}, fmt.Errorf("failed to record run outcome: %w", err)
	}

	if procErr != nil {
		return payroll.ProcessResultResponse{}, fmt.Errorf("%w: %w", payroll.ErrProcessingFailed, procErr)
	}

	return payroll.ProcessResultResponse{
		Message:      fmt.Sprintf("pay run processed, %d stubs created", stubsCreated),
		StubsCreated: stubsCreated,
		Status:       string(status),
	}, nil
}

func (s *PayrollServiceImpl) generateStubs(ctx context.Context, run payroll.PayRun) (int, error) {
	var stubsCreated int

	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		employees, err := s.employeeRepo.ListActive(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list active employees: %w", err)
		}
		if len(employees) == 0 {
			return nil
		}

		currentSalaries, err := s.salaryRepo.ListCurrent(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list current salaries: %w", err)
		}
		salaryBySubject := make(map[string]salary.Salary, len(currentSalaries))
		for _, row := range currentSalaries {
			salaryBySubject[row.EmployeeSubjectID] = row
		}

		for _, emp := range employees {
			current, ok := salaryBySubject[emp.SubjectID]
			if !ok {
				// No compensation on record yet; skip, not an error.
				continue
			}

			gross, deductions, net := computePay(current.Amount, run.StartDate, run.EndDate)
			_, err := s.payrollRepo.CreateStub(txCtx, payroll.PayStub{
				PayRunID:          run.ID,
				EmployeeSubjectID: emp.SubjectID,
				GrossPay:          gross,
				Deductions:        deductions,
				NetPay:            net,
			})
			if err != nil {
				if errors.Is(err, payroll.ErrDuplicatePayStub) {
					return fmt.Errorf("employee %s already has a stub for this run: %w", emp.SubjectID, err)
				}
				return fmt.Errorf("failed to create stub for %s: %w", emp.SubjectID, err)
			}
			stubsCreated++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return stubsCreated, nil
}

// ListStubs implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListStubs(ctx context.Context, filter payroll.StubFilter) ([]payroll.PayStubAdminResponse, error) {
	stubs, err := s.payrollRepo.ListStubs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stubs: %w", err)
	}

	responses := make([]payroll.PayStubAdminResponse, 0, len(stubs))
	for _, stub := range stubs {
		responses = append(responses, payroll.ToPayStubAdminResponse(stub))
	}
	return responses, nil
}

// ListMyStubs implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMyStubs(ctx context.Context, employeeSubjectID string) ([]payroll.PayStubEmployeeResponse, error) {
	stubs, err := s.payrollRepo.ListStubsByEmployee(ctx, employeeSubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stubs: %w", err)
	}

	responses := make([]payroll.PayStubEmployeeResponse, 0, len(stubs))
	for _, stub := range stubs {
		responses = append(responses, payroll.ToPayStubEmployeeResponse(stub))
	}
	return responses, nil
}

package salary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/employee"
	"github.com/peoplehq/hrms-backend-go/internal/domain/salary"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
	"github.com/peoplehq/hrms-backend-go/internal/repository/postgresql"
)

type SalaryServiceImpl struct {
	db           *database.DB
	salaryRepo   salary.SalaryRepository
	employeeRepo employee.EmployeeRepository
}

func NewSalaryService(
	db *database.DB,
	salaryRepo salary.SalaryRepository,
	employeeRepo employee.EmployeeRepository,
) salary.SalaryService {
	return &SalaryServiceImpl{
		db:           db,
		salaryRepo:   salaryRepo,
		employeeRepo: employeeRepo,
	}
}

// Create implements salary.SalaryService. The new row becomes the
// employee's current salary; the previous one is demoted in the same
// transaction so at most one current row is ever observable.
func (s *SalaryServiceImpl) Create(ctx context.Context, req salary.CreateSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	if _, err := s.employeeRepo.GetBySubjectID(ctx, req.EmployeeSubjectID); err != nil {
		if errors.Is(err, employee.ErrProfileNotFound) {
			return salary.SalaryResponse{}, salary.ErrEmployeeNotFound
		}
		return salary.SalaryResponse{}, fmt.Errorf("failed to check employee: %w", err)
	}

	effectiveDate, _ := validator.IsValidDate(req.EffectiveDate)

	var created salary.Salary
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.salaryRepo.ClearCurrent(txCtx, req.EmployeeSubjectID, nil); err != nil {
			return err
		}

		var err error
		created, err = s.salaryRepo.Create(txCtx, salary.Salary{
			EmployeeSubjectID: req.EmployeeSubjectID,
			Amount:            req.Amount,
			EffectiveDate:     effectiveDate,
			IsCurrent:         true,
		})
		return err
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	return salary.ToSalaryResponse(created), nil
}

// Get implements salary.SalaryService.
func (s *SalaryServiceImpl) Get(ctx context.Context, id string) (salary.SalaryResponse, error) {
	row, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}
	return salary.ToSalaryResponse(row), nil
}

// List implements salary.SalaryService.
func (s *SalaryServiceImpl) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.SalaryResponse, error) {
	rows, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}

	responses := make([]salary.SalaryResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, salary.ToSalaryResponse(row))
	}
	return responses, nil
}

// Update implements salary.SalaryService. Promoting a row to current demotes
// every other row of the same employee in the same transaction.
func (s *SalaryServiceImpl) Update(ctx context.Context, id string, req salary.UpdateSalaryRequest) (salary.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.SalaryResponse{}, err
	}

	existing, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	var updated salary.Salary
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if req.IsCurrent != nil && *req.IsCurrent {
			if err := s.salaryRepo.ClearCurrent(txCtx, existing.EmployeeSubjectID, &id); err != nil {
				return err
			}
		}

		var err error
		updated, err = s.salaryRepo.Update(txCtx, id, req)
		return err
	})
	if err != nil {
		return salary.SalaryResponse{}, err
	}

	return salary.ToSalaryResponse(updated), nil
}

// Delete implements salary.SalaryService.
func (s *SalaryServiceImpl) Delete(ctx context.Context, id string) error {
	return s.salaryRepo.Delete(ctx, id)
}

package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peoplehq/hrms-backend-go/internal/domain/salary"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

type salaryRepositoryImpl struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepositoryImpl{db: db}
}

const salaryColumns = `id, employee_subject_id, amount, effective_date, is_current, created_at`

func scanSalary(row pgx.Row) (salary.Salary, error) {
	var s salary.Salary
	err := row.Scan(&s.ID, &s.EmployeeSubjectID, &s.Amount, &s.EffectiveDate, &s.IsCurrent, &s.CreatedAt)
	return s, err
}

// Create implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Create(ctx context.Context, s salary.Salary) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salaries (employee_subject_id, amount, effective_date, is_current)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + salaryColumns + `
	`

	created, err := scanSalary(q.QueryRow(ctx, query, s.EmployeeSubjectID, s.Amount, s.EffectiveDate, s.IsCurrent))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return salary.Salary{}, salary.ErrEmployeeNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to create salary: %w", err)
	}

	return created, nil
}

// GetByID implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE id = $1`

	s, err := scanSalary(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}

	return s, nil
}

// List implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salaries`
	var args []interface{}
	if filter.EmployeeSubjectID != nil {
		query += ` WHERE employee_subject_id = $1`
		args = append(args, *filter.EmployeeSubjectID)
	}
	query += ` ORDER BY effective_date DESC, id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list salaries: %w", err)
	}
	defer rows.Close()

	var salaries []salary.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, s)
	}

	return salaries, rows.Err()
}

// Update implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Update(ctx context.Context, id string, req salary.UpdateSalaryRequest) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	var effectiveDate interface{}
	if req.EffectiveDate != nil {
		date, _ := validator.IsValidDate(*req.EffectiveDate)
		effectiveDate = date
	}

	query := `
		UPDATE salaries
		SET amount = COALESCE($2, amount),
			effective_date = COALESCE($3, effective_date),
			is_current = COALESCE($4, is_current)
		WHERE id = $1
		RETURNING ` + salaryColumns + `
	`

	s, err := scanSalary(q.QueryRow(ctx, query, id, req.Amount, effectiveDate, req.IsCurrent))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to update salary: %w", err)
	}

	return s, nil
}

// Delete implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM salaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrSalaryNotFound
	}

	return nil
}

// ClearCurrent implements salary.SalaryRepository. Runs inside the caller's
// transaction so the one-current-row invariant holds at commit.
func (r *salaryRepositoryImpl) ClearCurrent(ctx context.Context, employeeSubjectID string, exceptID *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salaries
		SET is_current = FALSE
		WHERE employee_subject_id = $1 AND is_current = TRUE AND ($2::uuid IS NULL OR id <> $2)
	`

	if _, err := q.Exec(ctx, query, employeeSubjectID, exceptID); err != nil {
		return fmt.Errorf("failed to clear current salary: %w", err)
	}

	return nil
}

// GetCurrent implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) GetCurrent(ctx context.Context, employeeSubjectID string) (salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `
		FROM salaries
		WHERE employee_subject_id = $1 AND is_current = TRUE
		ORDER BY effective_date DESC, id DESC
		LIMIT 1
	`

	s, err := scanSalary(q.QueryRow(ctx, query, employeeSubjectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		}
		return salary.Salary{}, fmt.Errorf("failed to get current salary: %w", err)
	}

	return s, nil
}

// ListCurrent implements salary.SalaryRepository.
func (r *salaryRepositoryImpl) ListCurrent(ctx context.Context) ([]salary.Salary, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + salaryColumns + ` FROM salaries WHERE is_current = TRUE`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list current salaries: %w", err)
	}
	defer rows.Close()

	var salaries []salary.Salary
	for rows.Next() {
		s, err := scanSalary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary: %w", err)
		}
		salaries = append(salaries, s)
	}

	return salaries, rows.Err()
}

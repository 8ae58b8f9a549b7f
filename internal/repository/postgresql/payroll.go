package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peoplehq/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const runColumns = `id, start_date, end_date, pay_date, status, created_at, processed_at`

func scanRun(row pgx.Row) (payroll.PayRun, error) {
	var run payroll.PayRun
	err := row.Scan(&run.ID, &run.StartDate, &run.EndDate, &run.PayDate, &run.Status, &run.CreatedAt, &run.ProcessedAt)
	return run, err
}

// CreateRun implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreateRun(ctx context.Context, run payroll.PayRun) (payroll.PayRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_runs (start_date, end_date, pay_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + runColumns + `
	`

	created, err := scanRun(q.QueryRow(ctx, query, run.StartDate, run.EndDate, run.PayDate, run.Status))
	if err != nil {
		return payroll.PayRun{}, fmt.Errorf("failed to create pay run: %w", err)
	}

	return created, nil
}

// GetRunByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetRunByID(ctx context.Context, id string) (payroll.PayRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM pay_runs WHERE id = $1`

	run, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayRun{}, payroll.ErrPayRunNotFound
		}
		return payroll.PayRun{}, fmt.Errorf("failed to get pay run: %w", err)
	}

	return run, nil
}

// ListRuns implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListRuns(ctx context.Context) ([]payroll.PayRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM pay_runs ORDER BY pay_date DESC, id DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// DeleteRun implements payroll.PayrollRepository. Only Pending runs may be
// removed; processed runs are part of the payroll record.
func (r *payrollRepositoryImpl) DeleteRun(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM pay_runs WHERE id = $1 AND status = $2`, id, payroll.RunStatusPending)
	if err != nil {
		return fmt.Errorf("failed to delete pay run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.GetRunByID(ctx, id); getErr == nil {
			return payroll.ErrRunNotDeletable
		}
		return payroll.ErrPayRunNotFound
	}

	return nil
}

// MarkRunProcessing implements payroll.PayrollRepository. The WHERE clause
// on status makes the transition a compare-and-set; a second concurrent call
// sees zero rows affected and backs off.
func (r *payrollRepositoryImpl) MarkRunProcessing(ctx context.Context, id string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE pay_runs
		SET status = $2
		WHERE id = $1 AND status = $3
	`, id, payroll.RunStatusProcessing, payroll.RunStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to mark pay run processing: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// FinishRun implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) FinishRun(ctx context.Context, id string, status payroll.RunStatus, processedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE pay_runs
		SET status = $2, processed_at = $3
		WHERE id = $1
	`, id, status, processedAt)
	if err != nil {
		return fmt.Errorf("failed to finish pay run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayRunNotFound
	}

	return nil
}

// CreateStub implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) CreateStub(ctx context.Context, stub payroll.PayStub) (payroll.PayStub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_stubs (pay_run_id, employee_subject_id, gross_pay, deductions, net_pay)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, pay_run_id, employee_subject_id, gross_pay, deductions, net_pay, created_at
	`

	var created payroll.PayStub
	err := q.QueryRow(ctx, query,
		stub.PayRunID, stub.EmployeeSubjectID, stub.GrossPay, stub.Deductions, stub.NetPay,
	).Scan(
		&created.ID, &created.PayRunID, &created.EmployeeSubjectID,
		&created.GrossPay, &created.Deductions, &created.NetPay, &created.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.PayStub{}, payroll.ErrDuplicatePayStub
		}
		return payroll.PayStub{}, fmt.Errorf("failed to create pay stub: %w", err)
	}

	return created, nil
}

// ListStubs implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListStubs(ctx context.Context, filter payroll.StubFilter) ([]payroll.PayStub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.pay_run_id, s.employee_subject_id, s.gross_pay, s.deductions, s.net_pay, s.created_at,
			   u.email, TRIM(u.first_name || ' ' || u.last_name)
		FROM pay_stubs s
		JOIN pay_runs pr ON pr.id = s.pay_run_id
		JOIN users u ON u.subject_id = s.employee_subject_id
	`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	where := ""
	if filter.PayRunID != nil {
		where = " WHERE s.pay_run_id = " + arg(*filter.PayRunID)
	}
	if filter.EmployeeSubjectID != nil {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += "s.employee_subject_id = " + arg(*filter.EmployeeSubjectID)
	}
	query += where + " ORDER BY pr.pay_date DESC, u.last_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay stubs: %w", err)
	}
	defer rows.Close()

	var stubs []payroll.PayStub
	for rows.Next() {
		var s payroll.PayStub
		if err := rows.Scan(
			&s.ID, &s.PayRunID, &s.EmployeeSubjectID,
			&s.GrossPay, &s.Deductions, &s.NetPay, &s.CreatedAt,
			&s.EmployeeEmail, &s.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pay stub: %w", err)
		}
		stubs = append(stubs, s)
	}

	return stubs, rows.Err()
}

// ListStubsByEmployee implements payroll.PayrollRepository. Includes the
// run's period and pay date for the self-service view.
func (r *payrollRepositoryImpl) ListStubsByEmployee(ctx context.Context, employeeSubjectID string) ([]payroll.PayStub, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.pay_run_id, s.employee_subject_id, s.gross_pay, s.deductions, s.net_pay, s.created_at,
			   pr.pay_date, pr.start_date, pr.end_date
		FROM pay_stubs s
		JOIN pay_runs pr ON pr.id = s.pay_run_id
		WHERE s.employee_subject_id = $1
		ORDER BY pr.pay_date DESC
	`

	rows, err := q.Query(ctx, query, employeeSubjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay stubs: %w", err)
	}
	defer rows.Close()

	var stubs []payroll.PayStub
	for rows.Next() {
		var s payroll.PayStub
		if err := rows.Scan(
			&s.ID, &s.PayRunID, &s.EmployeeSubjectID,
			&s.GrossPay, &s.Deductions, &s.NetPay, &s.CreatedAt,
			&s.PayDate, &s.PeriodStart, &s.PeriodEnd,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pay stub: %w", err)
		}
		stubs = append(stubs, s)
	}

	return stubs, rows.Err()
}

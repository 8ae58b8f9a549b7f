package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peoplehq/hrms-backend-go/internal/domain/department"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

const departmentSelect = `
	SELECT d.id, d.name, d.manager_subject_id, d.created_at, d.updated_at, u.email
	FROM departments d
	LEFT JOIN users u ON u.subject_id = d.manager_subject_id
`

func scanDepartment(row pgx.Row) (department.Department, error) {
	var d department.Department
	err := row.Scan(&d.ID, &d.Name, &d.ManagerSubjectID, &d.CreatedAt, &d.UpdatedAt, &d.ManagerEmail)
	return d, err
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO departments (name, manager_subject_id)
			VALUES ($1, $2)
			RETURNING id, name, manager_subject_id, created_at, updated_at
		)
		SELECT d.id, d.name, d.manager_subject_id, d.created_at, d.updated_at, u.email
		FROM inserted d
		LEFT JOIN users u ON u.subject_id = d.manager_subject_id
	`

	created, err := scanDepartment(q.QueryRow(ctx, query, d.Name, d.ManagerSubjectID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return created, nil
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := departmentSelect + ` WHERE d.id = $1`

	d, err := scanDepartment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	return d, nil
}

// List implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := departmentSelect + ` ORDER BY d.name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// Update implements department.DepartmentRepository. An empty manager in the
// request clears the assignment.
func (r *departmentRepositoryImpl) Update(ctx context.Context, id string, req department.UpdateDepartmentRequest) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	var manager *string
	clearManager := false
	if req.ManagerSubjectID != nil {
		if *req.ManagerSubjectID == "" {
			clearManager = true
		} else {
			manager = req.ManagerSubjectID
		}
	}

	query := `
		WITH updated AS (
			UPDATE departments
			SET name = COALESCE($2, name),
				manager_subject_id = CASE WHEN $4 THEN NULL ELSE COALESCE($3, manager_subject_id) END,
				updated_at = NOW()
			WHERE id = $1
			RETURNING id, name, manager_subject_id, created_at, updated_at
		)
		SELECT d.id, d.name, d.manager_subject_id, d.created_at, d.updated_at, u.email
		FROM updated d
		LEFT JOIN users u ON u.subject_id = d.manager_subject_id
	`

	d, err := scanDepartment(q.QueryRow(ctx, query, id, req.Name, manager, clearManager))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}

	return d, nil
}

// Delete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}

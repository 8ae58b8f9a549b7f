package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/employee"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const profileSelect = `
	SELECT p.subject_id, p.department_id, p.job_title, p.hire_date,
		   p.phone_number, p.address, p.onboarding_status, p.onboarding_start_date,
		   p.created_at, p.updated_at,
		   u.subject_id, u.email, u.first_name, u.last_name, u.role, u.is_active, u.created_at, u.updated_at,
		   d.name
	FROM employee_profiles p
	JOIN users u ON u.subject_id = p.subject_id
	LEFT JOIN departments d ON d.id = p.department_id
`

func scanProfile(row pgx.Row) (employee.Profile, error) {
	var p employee.Profile
	err := row.Scan(
		&p.SubjectID, &p.DepartmentID, &p.JobTitle, &p.HireDate,
		&p.PhoneNumber, &p.Address, &p.OnboardingStatus, &p.OnboardingStartDate,
		&p.CreatedAt, &p.UpdatedAt,
		&p.User.SubjectID, &p.User.Email, &p.User.FirstName, &p.User.LastName,
		&p.User.Role, &p.User.IsActive, &p.User.CreatedAt, &p.User.UpdatedAt,
		&p.DepartmentName,
	)
	return p, err
}

// GetBySubjectID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetBySubjectID(ctx context.Context, subjectID string) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := profileSelect + ` WHERE p.subject_id = $1`

	p, err := scanProfile(q.QueryRow(ctx, query, subjectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, employee.ErrProfileNotFound
		}
		return employee.Profile{}, fmt.Errorf("failed to get employee profile: %w", err)
	}

	return p, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newProfile employee.Profile) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_profiles (
			subject_id, department_id, job_title, hire_date, phone_number, address,
			onboarding_status, onboarding_start_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		newProfile.SubjectID, newProfile.DepartmentID, newProfile.JobTitle, newProfile.HireDate,
		newProfile.PhoneNumber, newProfile.Address, newProfile.OnboardingStatus, newProfile.OnboardingStartDate,
	)
	if err != nil {
		return fmt.Errorf("failed to create employee profile: %w", err)
	}

	return nil
}

// EnsureExists implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) EnsureExists(ctx context.Context, subjectID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_profiles (subject_id, job_title, onboarding_status)
		VALUES ($1, $2, $3)
		ON CONFLICT (subject_id) DO NOTHING
	`

	_, err := q.Exec(ctx, query, subjectID, employee.DefaultJobTitle, employee.OnboardingPending)
	if err != nil {
		return fmt.Errorf("failed to ensure employee profile: %w", err)
	}

	return nil
}

// Update implements employee.EmployeeRepository. Only fields present in the
// request end up in the SET clause.
func (r *employeeRepositoryImpl) Update(ctx context.Context, subjectID string, req employee.UpdateProfileRequest) error {
	q := GetQuerier(ctx, r.db)

	var sets []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.DepartmentID != nil {
		if *req.DepartmentID == "" {
			sets = append(sets, "department_id = NULL")
		} else {
			sets = append(sets, "department_id = "+arg(*req.DepartmentID))
		}
	}
	if req.JobTitle != nil {
		sets = append(sets, "job_title = "+arg(*req.JobTitle))
	}
	if req.HireDate != nil {
		date, _ := validator.IsValidDate(*req.HireDate)
		sets = append(sets, "hire_date = "+arg(date))
	}
	if req.PhoneNumber != nil {
		sets = append(sets, "phone_number = "+arg(*req.PhoneNumber))
	}
	if req.Address != nil {
		sets = append(sets, "address = "+arg(*req.Address))
	}
	if req.OnboardingStatus != nil {
		sets = append(sets, "onboarding_status = "+arg(*req.OnboardingStatus))
	}
	if req.OnboardingStartDate != nil {
		date, _ := validator.IsValidDate(*req.OnboardingStartDate)
		sets = append(sets, "onboarding_start_date = "+arg(date))
	}

	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(
		"UPDATE employee_profiles SET %s WHERE subject_id = %s",
		strings.Join(sets, ", "), arg(subjectID),
	)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update employee profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrProfileNotFound
	}

	return nil
}

// Search implements employee.EmployeeRepository. Inactive accounts never
// appear in the directory.
func (r *employeeRepositoryImpl) Search(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.subject_id, u.first_name, u.last_name, u.email, p.job_title, d.name
		FROM employee_profiles p
		JOIN users u ON u.subject_id = p.subject_id
		LEFT JOIN departments d ON d.id = p.department_id
		WHERE u.is_active = TRUE
	`
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.DepartmentID != nil {
		query += " AND p.department_id = " + arg(*filter.DepartmentID)
	}
	if filter.Title != nil {
		query += " AND p.job_title ILIKE " + arg("%"+*filter.Title+"%")
	}
	if filter.Search != nil {
		pattern := arg("%" + *filter.Search + "%")
		query += fmt.Sprintf(
			" AND (u.first_name ILIKE %[1]s OR u.last_name ILIKE %[1]s OR u.email ILIKE %[1]s OR p.job_title ILIKE %[1]s OR d.name ILIKE %[1]s)",
			pattern,
		)
	}

	query += " ORDER BY u.last_name, u.first_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search employees: %w", err)
	}
	defer rows.Close()

	var entries []employee.DirectoryEntry
	for rows.Next() {
		var e employee.DirectoryEntry
		if err := rows.Scan(&e.SubjectID, &e.FirstName, &e.LastName, &e.Email, &e.JobTitle, &e.DepartmentName); err != nil {
			return nil, fmt.Errorf("failed to scan directory entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := profileSelect + `
		WHERE u.is_active = TRUE
		ORDER BY u.last_name, u.first_name
	`

	return r.queryProfiles(ctx, q, query)
}

// ListByOnboardingStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByOnboardingStatus(ctx context.Context, statuses []employee.OnboardingStatus) ([]employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	query := profileSelect + `
		WHERE p.onboarding_status = ANY($1)
		ORDER BY p.onboarding_start_date NULLS LAST, u.last_name
	`

	return r.queryProfiles(ctx, q, query, values)
}

func (r *employeeRepositoryImpl) queryProfiles(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]employee.Profile, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee profiles: %w", err)
	}
	defer rows.Close()

	var profiles []employee.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee profile: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

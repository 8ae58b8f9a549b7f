package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/title"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/validator"
)

type titleRepositoryImpl struct {
	db *database.DB
}

func NewTitleRepository(db *database.DB) title.TitleRepository {
	return &titleRepositoryImpl{db: db}
}

const titleColumns = `id, employee_subject_id, job_title, start_date, end_date, created_at`

func scanTitle(row pgx.Row) (title.TitleHistory, error) {
	var t title.TitleHistory
	err := row.Scan(&t.ID, &t.EmployeeSubjectID, &t.JobTitle, &t.StartDate, &t.EndDate, &t.CreatedAt)
	return t, err
}

// Create implements title.TitleRepository.
func (r *titleRepositoryImpl) Create(ctx context.Context, t title.TitleHistory) (title.TitleHistory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO title_history (employee_subject_id, job_title, start_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + titleColumns + `
	`

	created, err := scanTitle(q.QueryRow(ctx, query, t.EmployeeSubjectID, t.JobTitle, t.StartDate, t.EndDate))
	if err != nil {
		return title.TitleHistory{}, fmt.Errorf("failed to create title history entry: %w", err)
	}

	return created, nil
}

// GetByID implements title.TitleRepository.
func (r *titleRepositoryImpl) GetByID(ctx context.Context, id string) (title.TitleHistory, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + titleColumns + ` FROM title_history WHERE id = $1`

	t, err := scanTitle(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return title.TitleHistory{}, title.ErrTitleHistoryNotFound
		}
		return title.TitleHistory{}, fmt.Errorf("failed to get title history entry: %w", err)
	}

	return t, nil
}

// List implements title.TitleRepository.
func (r *titleRepositoryImpl) List(ctx context.Context, filter title.TitleFilter) ([]title.TitleHistory, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + titleColumns + ` FROM title_history`
	var args []interface{}
	if filter.EmployeeSubjectID != nil {
		query += ` WHERE employee_subject_id = $1`
		args = append(args, *filter.EmployeeSubjectID)
	}
	query += ` ORDER BY start_date DESC, id DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list title history: %w", err)
	}
	defer rows.Close()

	var entries []title.TitleHistory
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan title history entry: %w", err)
		}
		entries = append(entries, t)
	}

	return entries, rows.Err()
}

// Update implements title.TitleRepository.
func (r *titleRepositoryImpl) Update(ctx context.Context, id string, req title.UpdateTitleHistoryRequest) (title.TitleHistory, error) {
	q := GetQuerier(ctx, r.db)

	var startDate, endDate interface{}
	if req.StartDate != nil {
		date, _ := validator.IsValidDate(*req.StartDate)
		startDate = date
	}
	if req.EndDate != nil {
		date, _ := validator.IsValidDate(*req.EndDate)
		endDate = date
	}

	query := `
		UPDATE title_history
		SET job_title = COALESCE($2, job_title),
			start_date = COALESCE($3, start_date),
			end_date = COALESCE($4, end_date)
		WHERE id = $1
		RETURNING ` + titleColumns + `
	`

	t, err := scanTitle(q.QueryRow(ctx, query, id, req.JobTitle, startDate, endDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return title.TitleHistory{}, title.ErrTitleHistoryNotFound
		}
		return title.TitleHistory{}, fmt.Errorf("failed to update title history entry: %w", err)
	}

	return t, nil
}

// Delete implements title.TitleRepository.
func (r *titleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM title_history WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete title history entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return title.ErrTitleHistoryNotFound
	}

	return nil
}

// GetLatest implements title.TitleRepository.
func (r *titleRepositoryImpl) GetLatest(ctx context.Context, employeeSubjectID string) (title.TitleHistory, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + titleColumns + `
		FROM title_history
		WHERE employee_subject_id = $1
		ORDER BY start_date DESC, id DESC
		LIMIT 1
	`

	t, err := scanTitle(q.QueryRow(ctx, query, employeeSubjectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return title.TitleHistory{}, title.ErrTitleHistoryNotFound
		}
		return title.TitleHistory{}, fmt.Errorf("failed to get latest title history entry: %w", err)
	}

	return t, nil
}

// CloseEntry implements title.TitleRepository.
func (r *titleRepositoryImpl) CloseEntry(ctx context.Context, id string, endDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE title_history SET end_date = $2 WHERE id = $1`, id, endDate)
	if err != nil {
		return fmt.Errorf("failed to close title history entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return title.ErrTitleHistoryNotFound
	}

	return nil
}

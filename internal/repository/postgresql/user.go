package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `subject_id, email, first_name, last_name, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.SubjectID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// GetBySubjectID implements user.UserRepository.
func (r *userRepositoryImpl) GetBySubjectID(ctx context.Context, subjectID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE subject_id = $1
	`

	u, err := scanUser(q.QueryRow(ctx, query, subjectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (subject_id, email, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns + `
	`

	u, err := scanUser(q.QueryRow(ctx, query,
		newUser.SubjectID, newUser.Email, newUser.FirstName, newUser.LastName, newUser.Role, newUser.IsActive,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

// Upsert implements user.UserRepository.
func (r *userRepositoryImpl) Upsert(ctx context.Context, u user.User) (user.User, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (subject_id, email, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (subject_id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING ` + userColumns + `, (xmax = 0) AS inserted
	`

	var saved user.User
	var inserted bool
	err := q.QueryRow(ctx, query,
		u.SubjectID, u.Email, u.FirstName, u.LastName, u.Role, u.IsActive,
	).Scan(
		&saved.SubjectID,
		&saved.Email,
		&saved.FirstName,
		&saved.LastName,
		&saved.Role,
		&saved.IsActive,
		&saved.CreatedAt,
		&saved.UpdatedAt,
		&inserted,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, false, user.ErrUserEmailExists
		}
		return user.User{}, false, fmt.Errorf("failed to upsert user: %w", err)
	}

	return saved, inserted, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY email
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// UpdateRoleActive implements user.UserRepository. Only role and the active
// flag are mutable locally; everything else belongs to the identity provider.
func (r *userRepositoryImpl) UpdateRoleActive(ctx context.Context, subjectID string, role *user.Role, isActive *bool) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET role = COALESCE($2, role),
			is_active = COALESCE($3, is_active),
			updated_at = NOW()
		WHERE subject_id = $1
		RETURNING ` + userColumns + `
	`

	u, err := scanUser(q.QueryRow(ctx, query, subjectID, role, isActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

// Deactivate implements user.UserRepository. Users are never hard-deleted.
func (r *userRepositoryImpl) Deactivate(ctx context.Context, subjectID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE users
		SET is_active = FALSE, updated_at = NOW()
		WHERE subject_id = $1
	`, subjectID)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

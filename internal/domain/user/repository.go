package user

import "context"

type UserRepository interface {
	GetBySubjectID(ctx context.Context, subjectID string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	// Upsert inserts or updates by subject id and reports whether a row was created.
	Upsert(ctx context.Context, u User) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	UpdateRoleActive(ctx context.Context, subjectID string, role *Role, isActive *bool) (User, error)
	Deactivate(ctx context.Context, subjectID string) error
}

package user

import (
	"context"

	"github.com/peoplehq/hrms-backend-go/internal/pkg/authn"
)

// UserService resolves verified token claims to local accounts and handles
// identity provider synchronization plus admin user management.
type UserService interface {
	// Resolve looks up the local user for verified claims, provisioning a new
	// employee account and profile on first sight (JIT provisioning).
	Resolve(ctx context.Context, claims authn.Claims) (User, error)

	// Sync applies an identity provider webhook event.
	Sync(ctx context.Context, req SyncUserRequest) (SyncUserResponse, error)

	// Admin user management
	ListUsers(ctx context.Context) ([]UserResponse, error)
	GetUser(ctx context.Context, subjectID string) (UserResponse, error)
	UpdateUser(ctx context.Context, subjectID string, req UpdateUserRequest) (UserResponse, error)
	DeactivateUser(ctx context.Context, subjectID string) error
}

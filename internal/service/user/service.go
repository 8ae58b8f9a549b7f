package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/employee"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/authn"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/repository/postgresql"
)

type UserServiceImpl struct {
	db           *database.DB
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
}

func NewUserService(
	db *database.DB,
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
) user.UserService {
	return &UserServiceImpl{
		db:           db,
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
	}
}

// Resolve implements user.UserService. An unknown subject with a usable
// email claim is provisioned in one transaction so a crash cannot leave a
// user without a profile.
func (s *UserServiceImpl) Resolve(ctx context.Context, claims authn.Claims) (user.User, error) {
	existing, err := s.userRepo.GetBySubjectID(ctx, claims.Subject)
	if err == nil {
		if !existing.IsActive {
			return user.User{}, user.ErrAccountInactive
		}
		return existing, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.User{}, fmt.Errorf("failed to resolve user: %w", err)
	}

	if claims.Email == "" {
		return user.User{}, user.ErrEmailClaimMissing
	}

	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.userRepo.Create(txCtx, user.User{
			SubjectID: claims.Subject,
			Email:     claims.Email,
			FirstName: claims.GivenName,
			LastName:  claims.FamilyName,
			Role:      user.RoleEmployee,
			IsActive:  true,
		})
		if err != nil {
			return err
		}

		return s.employeeRepo.Create(txCtx, employee.Profile{
			SubjectID:        created.SubjectID,
			JobTitle:         employee.DefaultJobTitle,
			OnboardingStatus: employee.OnboardingPending,
		})
	})
	if err != nil {
		// A concurrent first request may have won the race; re-read once.
		if existing, getErr := s.userRepo.GetBySubjectID(ctx, claims.Subject); getErr == nil {
			if !existing.IsActive {
				return user.User{}, user.ErrAccountInactive
			}
			return existing, nil
		}
		return user.User{}, fmt.Errorf("%w: %v", user.ErrProvisioningFailed, err)
	}

	return created, nil
}

// Sync implements user.UserService.
func (s *UserServiceImpl) Sync(ctx context.Context, req user.SyncUserRequest) (user.SyncUserResponse, error) {
	switch req.Type {
	case "user.created", "user.updated":
		return s.syncUpsert(ctx, req.Data)
	case "user.deleted":
		return s.syncDeactivate(ctx, req.Data)
	default:
		return user.SyncUserResponse{Message: fmt.Sprintf("event %q ignored", req.Type)}, nil
	}
}

func (s *UserServiceImpl) syncUpsert(ctx context.Context, data user.SyncUserData) (user.SyncUserResponse, error) {
	email := data.VerifiedEmail()
	if data.ID == "" || email == "" {
		return user.SyncUserResponse{}, user.ErrInvalidSyncPayload
	}

	var (
		synced  user.User
		created bool
	)
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		synced, created, err = s.userRepo.Upsert(txCtx, user.User{
			SubjectID: data.ID,
			Email:     email,
			FirstName: data.FirstName,
			LastName:  data.LastName,
			Role:      user.RoleEmployee,
			IsActive:  true,
		})
		if err != nil {
			return err
		}

		return s.employeeRepo.EnsureExists(txCtx, synced.SubjectID)
	})
	if err != nil {
		return user.SyncUserResponse{}, fmt.Errorf("failed to sync user: %w", err)
	}

	resp := user.ToUserResponse(synced)
	message := "user updated"
	if created {
		message = "user created"
	}
	return user.SyncUserResponse{Message: message, User: &resp}, nil
}

func (s *UserServiceImpl) syncDeactivate(ctx context.Context, data user.SyncUserData) (user.SyncUserResponse, error) {
	if data.ID == "" {
		return user.SyncUserResponse{}, user.ErrInvalidSyncPayload
	}

	if err := s.userRepo.Deactivate(ctx, data.ID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.SyncUserResponse{Message: "user unknown, nothing to deactivate"}, nil
		}
		return user.SyncUserResponse{}, fmt.Errorf("failed to deactivate user: %w", err)
	}

	return user.SyncUserResponse{Message: "user deactivated"}, nil
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToUserResponse(u))
	}
	return responses, nil
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, subjectID string) (user.UserResponse, error) {
	u, err := s.userRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToUserResponse(u), nil
}

// UpdateUser implements user.UserService.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, subjectID string, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	var role *user.Role
	if req.Role != nil {
		r := user.Role(*req.Role)
		role = &r
	}

	updated, err := s.userRepo.UpdateRoleActive(ctx, subjectID, role, req.IsActive)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToUserResponse(updated), nil
}

// DeactivateUser implements user.UserService.
func (s *UserServiceImpl) DeactivateUser(ctx context.Context, subjectID string) error {
	return s.userRepo.Deactivate(ctx, subjectID)
}

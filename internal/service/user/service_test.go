package user

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/peoplehq/hrms-backend-go/internal/domain/employee"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/authn"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	getBySubjectID   func(ctx context.Context, subjectID string) (user.User, error)
	create           func(ctx context.Context, u user.User) (user.User, error)
	upsert           func(ctx context.Context, u user.User) (user.User, bool, error)
	list             func(ctx context.Context) ([]user.User, error)
	updateRoleActive func(ctx context.Context, subjectID string, role *user.Role, isActive *bool) (user.User, error)
	deactivate       func(ctx context.Context, subjectID string) error
}

func (s *stubUserRepo) GetBySubjectID(ctx context.Context, subjectID string) (user.User, error) {
	return s.getBySubjectID(ctx, subjectID)
}

func (s *stubUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	return s.create(ctx, u)
}

func (s *stubUserRepo) Upsert(ctx context.Context, u user.User) (user.User, bool, error) {
	return s.upsert(ctx, u)
}

func (s *stubUserRepo) List(ctx context.Context) ([]user.User, error) {
	return s.list(ctx)
}

func (s *stubUserRepo) UpdateRoleActive(ctx context.Context, subjectID string, role *user.Role, isActive *bool) (user.User, error) {
	return s.updateRoleActive(ctx, subjectID, role, isActive)
}

func (s *stubUserRepo) Deactivate(ctx context.Context, subjectID string) error {
	return s.deactivate(ctx, subjectID)
}

type stubEmployeeRepo struct {
	getBySubjectID func(ctx context.Context, subjectID string) (employee.Profile, error)
	create         func(ctx context.Context, p employee.Profile) error
	ensureExists   func(ctx context.Context, subjectID string) error
	update         func(ctx context.Context, subjectID string, req employee.UpdateProfileRequest) error
	search         func(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error)
	listActive     func(ctx context.Context) ([]employee.Profile, error)
	listByStatus   func(ctx context.Context, statuses []employee.OnboardingStatus) ([]employee.Profile, error)
}

func (s *stubEmployeeRepo) GetBySubjectID(ctx context.Context, subjectID string) (employee.Profile, error) {
	return s.getBySubjectID(ctx, subjectID)
}

func (s *stubEmployeeRepo) Create(ctx context.Context, p employee.Profile) error {
	return s.create(ctx, p)
}

func (s *stubEmployeeRepo) EnsureExists(ctx context.Context, subjectID string) error {
	return s.ensureExists(ctx, subjectID)
}

func (s *stubEmployeeRepo) Update(ctx context.Context, subjectID string, req employee.UpdateProfileRequest) error {
	return s.update(ctx, subjectID, req)
}

func (s *stubEmployeeRepo) Search(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
	return s.search(ctx, filter)
}

func (s *stubEmployeeRepo) ListActive(ctx context.Context) ([]employee.Profile, error) {
	return s.listActive(ctx)
}

func (s *stubEmployeeRepo) ListByOnboardingStatus(ctx context.Context, statuses []employee.OnboardingStatus) ([]employee.Profile, error) {
	return s.listByStatus(ctx, statuses)
}

func newTestDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return database.NewFromPool(mock), mock
}

func TestResolve_KnownActiveUser(t *testing.T) {
	db, _ := newTestDB(t)
	userRepo := &stubUserRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (user.User, error) {
			return user.User{SubjectID: subjectID, Role: user.RoleEmployee, IsActive: true}, nil
		},
	}
	svc := NewUserService(db, userRepo, &stubEmployeeRepo{})

	resolved, err := svc.Resolve(context.Background(), authn.Claims{Subject: "sub-1"})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", resolved.SubjectID)
}

func TestResolve_InactiveUser(t *testing.T) {
	db, _ := newTestDB(t)
	userRepo := &stubUserRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (user.User, error) {
			return user.User{SubjectID: subjectID, IsActive: false}, nil
		},
	}
	svc := NewUserService(db, userRepo, &stubEmployeeRepo{})

	_, err := svc.Resolve(context.Background(), authn.Claims{Subject: "sub-1"})
	assert.ErrorIs(t, err, user.ErrAccountInactive)
}

func TestResolve_JITProvisionsUserAndProfile(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	var createdUser user.User
	var createdProfile employee.Profile
	userRepo := &stubUserRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (user.User, error) {
			return user.User{}, user.ErrUserNotFound
		},
		create: func(ctx context.Context, u user.User) (user.User, error) {
			createdUser = u
			return u, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{
		create: func(ctx context.Context, p employee.Profile) error {
			createdProfile = p
			return nil
		},
	}
	svc := NewUserService(db, userRepo, employeeRepo)

	resolved, err := svc.Resolve(context.Background(), authn.Claims{
		Subject:    "sub-new",
		Email:      "new@example.com",
		GivenName:  "New",
		FamilyName: "Hire",
	})
	require.NoError(t, err)

	assert.Equal(t, "sub-new", resolved.SubjectID)
	assert.Equal(t, user.RoleEmployee, createdUser.Role)
	assert.True(t, createdUser.IsActive)
	assert.Equal(t, "new@example.com", createdUser.Email)
	assert.Equal(t, "sub-new", createdProfile.SubjectID)
	assert.Equal(t, employee.DefaultJobTitle, createdProfile.JobTitle)
	assert.Equal(t, employee.OnboardingPending, createdProfile.OnboardingStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolve_MissingEmailClaim(t *testing.T) {
	db, _ := newTestDB(t)
	userRepo := &stubUserRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (user.User, error) {
			return user.User{}, user.ErrUserNotFound
		},
	}
	svc := NewUserService(db, userRepo, &stubEmployeeRepo{})

	_, err := svc.Resolve(context.Background(), authn.Claims{Subject: "sub-new"})
	assert.ErrorIs(t, err, user.ErrEmailClaimMissing)
}

func TestResolve_ProvisioningFailure(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	lookups := 0
	userRepo := &stubUserRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (user.User, error) {
			lookups++
			return user.User{}, user.ErrUserNotFound
		},
		create: func(ctx context.Context, u user.User) (user.User, error) {
			return user.User{}, errors.New("insert failed")
		},
	}
	svc := NewUserService(db, userRepo, &stubEmployeeRepo{})

	_, err := svc.Resolve(context.Background(), authn.Claims{Subject: "sub-new", Email: "x@example.com"})
	assert.ErrorIs(t, err, user.ErrProvisioningFailed)
	assert.Equal(t, 2, lookups)
}

func TestResolve_LosesProvisioningRace(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	lookups := 0
	userRepo := &stubUserRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (user.User, error) {
			lookups++
			if lookups == 1 {
				return user.User{}, user.ErrUserNotFound
			}
			return user.User{SubjectID: subjectID, IsActive: true}, nil
		},
		create: func(ctx context.Context, u user.User) (user.User, error) {
			return user.User{}, user.ErrUserEmailExists
		},
	}
	svc := NewUserService(db, userRepo, &stubEmployeeRepo{})

	resolved, err := svc.Resolve(context.Background(), authn.Claims{Subject: "sub-new", Email: "x@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "sub-new", resolved.SubjectID)
}

func TestSync_UserCreated(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	ensured := ""
	userRepo := &stubUserRepo{
		upsert: func(ctx context.Context, u user.User) (user.User, bool, error) {
			return u, true, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{
		ensureExists: func(ctx context.Context, subjectID string) error {
			ensured = subjectID
			return nil
		},
	}
	svc := NewUserService(db, userRepo, employeeRepo)

	result, err := svc.Sync(context.Background(), user.SyncUserRequest{
		Type: "user.created",
		Data: user.SyncUserData{
			ID: "sub-1",
			EmailAddresses: []user.SyncEmail{
				{EmailAddress: "unverified@example.com", Verification: user.SyncVerification{Status: "unverified"}},
				{EmailAddress: "real@example.com", Verification: user.SyncVerification{Status: "verified"}},
			},
			FirstName: "Grace",
			LastName:  "Hopper",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "user created", result.Message)
	require.NotNil(t, result.User)
	assert.Equal(t, "real@example.com", result.User.Email)
	assert.Equal(t, "sub-1", ensured)
}

func TestSync_NoVerifiedEmail(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewUserService(db, &stubUserRepo{}, &stubEmployeeRepo{})

	_, err := svc.Sync(context.Background(), user.SyncUserRequest{
		Type: "user.updated",
		Data: user.SyncUserData{
			ID: "sub-1",
			EmailAddresses: []user.SyncEmail{
				{EmailAddress: "pending@example.com", Verification: user.SyncVerification{Status: "unverified"}},
			},
		},
	})
	assert.ErrorIs(t, err, user.ErrInvalidSyncPayload)
}

func TestSync_UserDeletedDeactivates(t *testing.T) {
	db, _ := newTestDB(t)

	deactivated := ""
	userRepo := &stubUserRepo{
		deactivate: func(ctx context.Context, subjectID string) error {
			deactivated = subjectID
			return nil
		},
	}
	svc := NewUserService(db, userRepo, &stubEmployeeRepo{})

	result, err := svc.Sync(context.Background(), user.SyncUserRequest{
		Type: "user.deleted",
		Data: user.SyncUserData{ID: "sub-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "user deactivated", result.Message)
	assert.Equal(t, "sub-1", deactivated)
}

func TestSync_UserDeletedUnknownSubject(t *testing.T) {
	db, _ := newTestDB(t)

	userRepo := &stubUserRepo{
		deactivate: func(ctx context.Context, subjectID string) error {
			return user.ErrUserNotFound
		},
	}
	svc := NewUserService(db, userRepo, &stubEmployeeRepo{})

	result, err := svc.Sync(context.Background(), user.SyncUserRequest{
		Type: "user.deleted",
		Data: user.SyncUserData{ID: "sub-unknown"},
	})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "nothing to deactivate")
}

func TestSync_UnknownEventType(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewUserService(db, &stubUserRepo{}, &stubEmployeeRepo{})

	result, err := svc.Sync(context.Background(), user.SyncUserRequest{Type: "session.created"})
	require.NoError(t, err)
	assert.Contains(t, result.Message, "ignored")
}

func TestUpdateUser_InvalidRole(t *testing.T) {
	db, _ := newTestDB(t)
	svc := NewUserService(db, &stubUserRepo{}, &stubEmployeeRepo{})

	bad := "superuser"
	_, err := svc.UpdateUser(context.Background(), "sub-1", user.UpdateUserRequest{Role: &bad})
	assert.Error(t, err)
}

package employee

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/peoplehq/hrms-backend-go/internal/domain/employee"
	"github.com/peoplehq/hrms-backend-go/internal/domain/salary"
	"github.com/peoplehq/hrms-backend-go/internal/domain/title"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmployeeRepo struct {
	getBySubjectID func(ctx context.Context, subjectID string) (employee.Profile, error)
	update         func(ctx context.Context, subjectID string, req employee.UpdateProfileRequest) error
	listByStatus   func(ctx context.Context, statuses []employee.OnboardingStatus) ([]employee.Profile, error)
}

func (s *stubEmployeeRepo) GetBySubjectID(ctx context.Context, subjectID string) (employee.Profile, error) {
	return s.getBySubjectID(ctx, subjectID)
}

func (s *stubEmployeeRepo) Create(ctx context.Context, p employee.Profile) error {
	panic("not used")
}

func (s *stubEmployeeRepo) EnsureExists(ctx context.Context, subjectID string) error {
	panic("not used")
}

func (s *stubEmployeeRepo) Update(ctx context.Context, subjectID string, req employee.UpdateProfileRequest) error {
	return s.update(ctx, subjectID, req)
}

func (s *stubEmployeeRepo) Search(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
	panic("not used")
}

func (s *stubEmployeeRepo) ListActive(ctx context.Context) ([]employee.Profile, error) {
	panic("not used")
}

func (s *stubEmployeeRepo) ListByOnboardingStatus(ctx context.Context, statuses []employee.OnboardingStatus) ([]employee.Profile, error) {
	return s.listByStatus(ctx, statuses)
}

type stubSalaryRepo struct {
	getCurrent func(ctx context.Context, employeeSubjectID string) (salary.Salary, error)
}

func (s *stubSalaryRepo) Create(ctx context.Context, row salary.Salary) (salary.Salary, error) {
	panic("not used")
}

func (s *stubSalaryRepo) GetByID(ctx context.Context, id string) (salary.Salary, error) {
	panic("not used")
}

func (s *stubSalaryRepo) List(ctx context.Context, filter salary.SalaryFilter) ([]salary.Salary, error) {
	panic("not used")
}

func (s *stubSalaryRepo) Update(ctx context.Context, id string, req salary.UpdateSalaryRequest) (salary.Salary, error) {
	panic("not used")
}

func (s *stubSalaryRepo) Delete(ctx context.Context, id string) error {
	panic("not used")
}

func (s *stubSalaryRepo) ClearCurrent(ctx context.Context, employeeSubjectID string, exceptID *string) error {
	panic("not used")
}

func (s *stubSalaryRepo) GetCurrent(ctx context.Context, employeeSubjectID string) (salary.Salary, error) {
	return s.getCurrent(ctx, employeeSubjectID)
}

func (s *stubSalaryRepo) ListCurrent(ctx context.Context) ([]salary.Salary, error) {
	panic("not used")
}

type stubTitleRepo struct {
	getLatest  func(ctx context.Context, employeeSubjectID string) (title.TitleHistory, error)
	closeEntry func(ctx context.Context, id string, endDate time.Time) error
	create     func(ctx context.Context, t title.TitleHistory) (title.TitleHistory, error)
}

func (s *stubTitleRepo) Create(ctx context.Context, entry title.TitleHistory) (title.TitleHistory, error) {
	return s.create(ctx, entry)
}

func (s *stubTitleRepo) GetByID(ctx context.Context, id string) (title.TitleHistory, error) {
	panic("not used")
}

func (s *stubTitleRepo) List(ctx context.Context, filter title.TitleFilter) ([]title.TitleHistory, error) {
	panic("not used")
}

func (s *stubTitleRepo) Update(ctx context.Context, id string, req title.UpdateTitleHistoryRequest) (title.TitleHistory, error) {
	panic("not used")
}

func (s *stubTitleRepo) Delete(ctx context.Context, id string) error {
	panic("not used")
}

func (s *stubTitleRepo) GetLatest(ctx context.Context, employeeSubjectID string) (title.TitleHistory, error) {
	return s.getLatest(ctx, employeeSubjectID)
}

func (s *stubTitleRepo) CloseEntry(ctx context.Context, id string, endDate time.Time) error {
	return s.closeEntry(ctx, id, endDate)
}

func newTestDB(t *testing.T) (*database.DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return database.NewFromPool(mock), mock
}

func strPtr(s string) *string { return &s }

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func TestUpdateProfile_TitleChangeRollsHistoryForward(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	profile := employee.Profile{SubjectID: "sub-1", JobTitle: "Engineer"}

	var closedID string
	var closedAt time.Time
	var opened title.TitleHistory
	titleRepo := &stubTitleRepo{
		getLatest: func(ctx context.Context, employeeSubjectID string) (title.TitleHistory, error) {
			return title.TitleHistory{
				ID:                "hist-1",
				EmployeeSubjectID: employeeSubjectID,
				JobTitle:          "Engineer",
				StartDate:         today().AddDate(-1, 0, 0),
			}, nil
		},
		closeEntry: func(ctx context.Context, id string, endDate time.Time) error {
			closedID = id
			closedAt = endDate
			return nil
		},
		create: func(ctx context.Context, entry title.TitleHistory) (title.TitleHistory, error) {
			opened = entry
			return entry, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (employee.Profile, error) {
			return profile, nil
		},
		update: func(ctx context.Context, subjectID string, req employee.UpdateProfileRequest) error {
			profile.JobTitle = *req.JobTitle
			return nil
		},
	}
	salaryRepo := &stubSalaryRepo{
		getCurrent: func(ctx context.Context, employeeSubjectID string) (salary.Salary, error) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		},
	}
	svc := NewEmployeeService(db, employeeRepo, salaryRepo, titleRepo)

	_, err := svc.UpdateProfile(context.Background(), "sub-1", employee.UpdateProfileRequest{
		JobTitle: strPtr("Senior Engineer"),
	})
	require.NoError(t, err)

	assert.Equal(t, "hist-1", closedID)
	assert.Equal(t, today().AddDate(0, 0, -1), closedAt)
	assert.Equal(t, "Senior Engineer", opened.JobTitle)
	assert.Equal(t, today(), opened.StartDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfile_CloseDateClampedToEntryStart(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	profile := employee.Profile{SubjectID: "sub-1", JobTitle: "Engineer"}

	var closedAt time.Time
	titleRepo := &stubTitleRepo{
		getLatest: func(ctx context.Context, employeeSubjectID string) (title.TitleHistory, error) {
			// Entry opened today; closing it yesterday would precede its start.
			return title.TitleHistory{ID: "hist-1", JobTitle: "Engineer", StartDate: today()}, nil
		},
		closeEntry: func(ctx context.Context, id string, endDate time.Time) error {
			closedAt = endDate
			return nil
		},
		create: func(ctx context.Context, entry title.TitleHistory) (title.TitleHistory, error) {
			return entry, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (employee.Profile, error) {
			return profile, nil
		},
		update: func(ctx context.Context, subjectID string, req employee.UpdateProfileRequest) error {
			return nil
		},
	}
	salaryRepo := &stubSalaryRepo{
		getCurrent: func(ctx context.Context, employeeSubjectID string) (salary.Salary, error) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		},
	}
	svc := NewEmployeeService(db, employeeRepo, salaryRepo, titleRepo)

	_, err := svc.UpdateProfile(context.Background(), "sub-1", employee.UpdateProfileRequest{
		JobTitle: strPtr("Senior Engineer"),
	})
	require.NoError(t, err)

	assert.Equal(t, today(), closedAt)
}

func TestUpdateProfile_FirstTitleStartsAtHireDate(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	hireDate := today().AddDate(0, -2, 0)
	profile := employee.Profile{SubjectID: "sub-1", JobTitle: "Pending Assignment", HireDate: &hireDate}

	var opened title.TitleHistory
	titleRepo := &stubTitleRepo{
		getLatest: func(ctx context.Context, employeeSubjectID string) (title.TitleHistory, error) {
			return title.TitleHistory{}, title.ErrTitleHistoryNotFound
		},
		create: func(ctx context.Context, entry title.TitleHistory) (title.TitleHistory, error) {
			opened = entry
			entry.ID = "hist-1"
			return entry, nil
		},
	}
	employeeRepo := &stubEmployeeRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (employee.Profile, error) {
			return profile, nil
		},
		update: func(ctx context.Context, subjectID string, req employee.UpdateProfileRequest) error {
			return nil
		},
	}
	salaryRepo := &stubSalaryRepo{
		getCurrent: func(ctx context.Context, employeeSubjectID string) (salary.Salary, error) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		},
	}
	svc := NewEmployeeService(db, employeeRepo, salaryRepo, titleRepo)

	_, err := svc.UpdateProfile(context.Background(), "sub-1", employee.UpdateProfileRequest{
		JobTitle: strPtr("Engineer"),
	})
	require.NoError(t, err)

	assert.Equal(t, hireDate, opened.StartDate)
}

func TestUpdateProfile_UnchangedTitleSkipsTransition(t *testing.T) {
	db, mock := newTestDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	profile := employee.Profile{SubjectID: "sub-1", JobTitle: "Engineer"}

	titleRepo := &stubTitleRepo{
		getLatest: func(ctx context.Context, employeeSubjectID string) (title.TitleHistory, error) {
			return title.TitleHistory{}, title.ErrTitleHistoryNotFound
		},
	}
	employeeRepo := &stubEmployeeRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (employee.Profile, error) {
			return profile, nil
		},
		update: func(ctx context.Context, subjectID string, req employee.UpdateProfileRequest) error {
			return nil
		},
	}
	salaryRepo := &stubSalaryRepo{
		getCurrent: func(ctx context.Context, employeeSubjectID string) (salary.Salary, error) {
			return salary.Salary{}, salary.ErrSalaryNotFound
		},
	}
	svc := NewEmployeeService(db, employeeRepo, salaryRepo, titleRepo)

	_, err := svc.UpdateProfile(context.Background(), "sub-1", employee.UpdateProfileRequest{
		JobTitle: strPtr("Engineer"),
		Address:  strPtr("1 Main St"),
	})
	require.NoError(t, err)
}

func TestGetProfile_IncludesCurrentSalaryAndTitle(t *testing.T) {
	db, _ := newTestDB(t)

	employeeRepo := &stubEmployeeRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (employee.Profile, error) {
			return employee.Profile{SubjectID: subjectID, JobTitle: "Engineer"}, nil
		},
	}
	salaryRepo := &stubSalaryRepo{
		getCurrent: func(ctx context.Context, employeeSubjectID string) (salary.Salary, error) {
			return salary.Salary{ID: "sal-1", EmployeeSubjectID: employeeSubjectID, IsCurrent: true, EffectiveDate: today()}, nil
		},
	}
	titleRepo := &stubTitleRepo{
		getLatest: func(ctx context.Context, employeeSubjectID string) (title.TitleHistory, error) {
			return title.TitleHistory{ID: "hist-1", JobTitle: "Engineer", StartDate: today()}, nil
		},
	}
	svc := NewEmployeeService(db, employeeRepo, salaryRepo, titleRepo)

	resp, err := svc.GetProfile(context.Background(), "sub-1")
	require.NoError(t, err)

	require.NotNil(t, resp.CurrentSalary)
	assert.Equal(t, "sal-1", resp.CurrentSalary.ID)
	require.NotNil(t, resp.CurrentTitle)
	assert.Equal(t, "hist-1", resp.CurrentTitle.ID)
}

func TestGetProfile_MissingProfile(t *testing.T) {
	db, _ := newTestDB(t)

	employeeRepo := &stubEmployeeRepo{
		getBySubjectID: func(ctx context.Context, subjectID string) (employee.Profile, error) {
			return employee.Profile{}, employee.ErrProfileNotFound
		},
	}
	svc := NewEmployeeService(db, employeeRepo, &stubSalaryRepo{}, &stubTitleRepo{})

	_, err := svc.GetProfile(context.Background(), "ghost")
	assert.ErrorIs(t, err, employee.ErrProfileNotFound)
}

func TestListPendingOnboarding_UsesPendingStatuses(t *testing.T) {
	db, _ := newTestDB(t)

	var requested []employee.OnboardingStatus
	employeeRepo := &stubEmployeeRepo{
		listByStatus: func(ctx context.Context, statuses []employee.OnboardingStatus) ([]employee.Profile, error) {
			requested = statuses
			return []employee.Profile{{SubjectID: "sub-1"}}, nil
		},
	}
	svc := NewEmployeeService(db, employeeRepo, &stubSalaryRepo{}, &stubTitleRepo{})

	profiles, err := svc.ListPendingOnboarding(context.Background())
	require.NoError(t, err)

	assert.Len(t, profiles, 1)
	assert.Equal(t, employee.PendingOnboardingStatuses, requested)
}

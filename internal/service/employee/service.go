package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/employee"
	"github.com/peoplehq/hrms-backend-go/internal/domain/salary"
	"github.com/peoplehq/hrms-backend-go/internal/domain/title"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
	"github.com/peoplehq/hrms-backend-go/internal/repository/postgresql"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
	salaryRepo   salary.SalaryRepository
	titleRepo    title.TitleRepository
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	salaryRepo salary.SalaryRepository,
	titleRepo title.TitleRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		salaryRepo:   salaryRepo,
		titleRepo:    titleRepo,
	}
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, subjectID string) (employee.ProfileResponse, error) {
	profile, err := s.employeeRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	resp := employee.ToProfileResponse(profile)

	current, err := s.salaryRepo.GetCurrent(ctx, subjectID)
	if err == nil {
		sr := salary.ToSalaryResponse(current)
		resp.CurrentSalary = &sr
	} else if !errors.Is(err, salary.ErrSalaryNotFound) {
		return employee.ProfileResponse{}, fmt.Errorf("failed to get current salary: %w", err)
	}

	latest, err := s.titleRepo.GetLatest(ctx, subjectID)
	if err == nil {
		tr := title.ToTitleHistoryResponse(latest)
		resp.CurrentTitle = &tr
	} else if !errors.Is(err, title.ErrTitleHistoryNotFound) {
		return employee.ProfileResponse{}, fmt.Errorf("failed to get latest title: %w", err)
	}

	return resp, nil
}

// UpdateProfile implements employee.EmployeeService. A job title change
// closes the open history entry as of yesterday and opens a new one starting
// today, keeping the history gap-free.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, subjectID string, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	profile, err := s.employeeRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	titleChanged := req.JobTitle != nil && *req.JobTitle != profile.JobTitle

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.employeeRepo.Update(txCtx, subjectID, req); err != nil {
			return err
		}

		if titleChanged {
			return s.rollTitleForward(txCtx, profile, *req.JobTitle)
		}
		return nil
	})
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	return s.GetProfile(ctx, subjectID)
}

// rollTitleForward closes the current open title entry and starts a new one.
// The close date is yesterday, clamped so it never precedes the entry's own
// start date.
func (s *EmployeeServiceImpl) rollTitleForward(ctx context.Context, profile employee.Profile, newTitle string) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	latest, err := s.titleRepo.GetLatest(ctx, profile.SubjectID)
	switch {
	case err == nil:
		if latest.EndDate == nil {
			endDate := today.AddDate(0, 0, -1)
			if endDate.Before(latest.StartDate) {
				endDate = latest.StartDate
			}
			if err := s.titleRepo.CloseEntry(ctx, latest.ID, endDate); err != nil {
				return fmt.Errorf("failed to close title entry: %w", err)
			}
		}
	case errors.Is(err, title.ErrTitleHistoryNotFound):
		// First recorded title; nothing to close.
	default:
		return fmt.Errorf("failed to get latest title: %w", err)
	}

	startDate := today
	if errors.Is(err, title.ErrTitleHistoryNotFound) && profile.HireDate != nil {
		startDate = *profile.HireDate
	}

	_, err = s.titleRepo.Create(ctx, title.TitleHistory{
		EmployeeSubjectID: profile.SubjectID,
		JobTitle:          newTitle,
		StartDate:         startDate,
	})
	if err != nil {
		return fmt.Errorf("failed to create title entry: %w", err)
	}
	return nil
}

// SearchDirectory implements employee.EmployeeService.
func (s *EmployeeServiceImpl) SearchDirectory(ctx context.Context, filter employee.DirectoryFilter) ([]employee.DirectoryEntry, error) {
	entries, err := s.employeeRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search directory: %w", err)
	}
	return entries, nil
}

// ListPendingOnboarding implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListPendingOnboarding(ctx context.Context) ([]employee.ProfileResponse, error) {
	profiles, err := s.employeeRepo.ListByOnboardingStatus(ctx, employee.PendingOnboardingStatuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending onboarding: %w", err)
	}

	responses := make([]employee.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, employee.ToProfileResponse(p))
	}
	return responses, nil
}

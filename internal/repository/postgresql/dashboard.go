package postgresql

import (
	"context"
	"fmt"

	"github.com/peoplehq/hrms-backend-go/internal/domain/dashboard"
	"github.com/peoplehq/hrms-backend-go/internal/domain/employee"
	"github.com/peoplehq/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplehq/hrms-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetHRStats implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetHRStats(ctx context.Context) (dashboard.HRStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM users WHERE is_active = TRUE),
			(SELECT COUNT(*)
			 FROM employee_profiles p
			 JOIN users u ON u.subject_id = p.subject_id
			 WHERE u.is_active = TRUE AND p.onboarding_status = ANY($1)),
			(SELECT COUNT(*) FROM pay_runs WHERE status = $2)
	`

	pending := make([]string, 0, len(employee.PendingOnboardingStatuses))
	for _, s := range employee.PendingOnboardingStatuses {
		pending = append(pending, string(s))
	}

	var stats dashboard.HRStatsResponse
	err := q.QueryRow(ctx, query, pending, payroll.RunStatusPending).Scan(
		&stats.ActiveEmployeesCount,
		&stats.PendingOnboardingCount,
		&stats.PendingPayRunsCount,
	)
	if err != nil {
		return dashboard.HRStatsResponse{}, fmt.Errorf("failed to get hr stats: %w", err)
	}

	return stats, nil
}

// GetAdminStats implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetAdminStats(ctx context.Context) (dashboard.AdminStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE is_active = TRUE),
			(SELECT COUNT(*) FROM departments)
	`

	var stats dashboard.AdminStatsResponse
	err := q.QueryRow(ctx, query).Scan(
		&stats.TotalUsersCount,
		&stats.ActiveUsersCount,
		&stats.DepartmentCount,
	)
	if err != nil {
		return dashboard.AdminStatsResponse{}, fmt.Errorf("failed to get admin stats: %w", err)
	}

	return stats, nil
}

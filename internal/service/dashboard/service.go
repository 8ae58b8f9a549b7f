package dashboard

import (
	"context"

	"github.com/peoplehq/hrms-backend-go/internal/domain/dashboard"
)

type DashboardServiceImpl struct {
	dashboardRepo dashboard.DashboardRepository
}

func NewDashboardService(dashboardRepo dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{dashboardRepo: dashboardRepo}
}

// GetHRStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetHRStats(ctx context.Context) (dashboard.HRStatsResponse, error) {
	return s.dashboardRepo.GetHRStats(ctx)
}

// GetAdminStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetAdminStats(ctx context.Context) (dashboard.AdminStatsResponse, error) {
	return s.dashboardRepo.GetAdminStats(ctx)
}

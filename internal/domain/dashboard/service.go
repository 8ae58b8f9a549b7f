package dashboard

import "context"

type DashboardService interface {
	GetHRStats(ctx context.Context) (HRStatsResponse, error)
	GetAdminStats(ctx context.Context) (AdminStatsResponse, error)
}

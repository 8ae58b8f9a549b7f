package dashboard

import "context"

type DashboardRepository interface {
	// GetHRStats returns active employees, pending onboarding and pending
	// pay run counts in one round trip.
	GetHRStats(ctx context.Context) (HRStatsResponse, error)
	// GetAdminStats returns user and department counts in one round trip.
	GetAdminStats(ctx context.Context) (AdminStatsResponse, error)
}

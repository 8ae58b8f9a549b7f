package http

import (
	"net/http"

	"github.com/peoplehq/hrms-backend-go/internal/domain/dashboard"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetHRStats returns the HR overview counts
	GetHRStats(w http.ResponseWriter, r *http.Request)
	// GetAdminStats returns the admin overview counts
	GetAdminStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetHRStats handles GET /hr/stats
func (h *dashboardHandlerImpl) GetHRStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetHRStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetAdminStats handles GET /admin/stats
func (h *dashboardHandlerImpl) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetAdminStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/employee"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	// GetMyProfile returns the caller's full profile
	GetMyProfile(w http.ResponseWriter, r *http.Request)
	// SearchDirectory lists active employees matching the query
	SearchDirectory(w http.ResponseWriter, r *http.Request)
	// GetProfile returns one profile by subject id
	GetProfile(w http.ResponseWriter, r *http.Request)
	// UpdateProfile applies an HR partial update
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	// ListPendingOnboarding lists profiles awaiting onboarding
	ListPendingOnboarding(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// GetMyProfile handles GET /me
func (h *employeeHandlerImpl) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	profile, err := h.employeeService.GetProfile(r.Context(), u.SubjectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// SearchDirectory handles GET /employees
func (h *employeeHandlerImpl) SearchDirectory(w http.ResponseWriter, r *http.Request) {
	var filter employee.DirectoryFilter
	if v := r.URL.Query().Get("department"); v != "" {
		filter.DepartmentID = &v
	}
	if v := r.URL.Query().Get("title"); v != "" {
		filter.Title = &v
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}

	entries, err := h.employeeService.SearchDirectory(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// GetProfile handles GET /manage/employee/{subjectID}
func (h *employeeHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	profile, err := h.employeeService.GetProfile(r.Context(), subjectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// UpdateProfile handles PUT /manage/employee/{subjectID}
func (h *employeeHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	var req employee.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	profile, err := h.employeeService.UpdateProfile(r.Context(), subjectID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profile)
}

// ListPendingOnboarding handles GET /hr/onboarding/pending
func (h *employeeHandlerImpl) ListPendingOnboarding(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.employeeService.ListPendingOnboarding(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, profiles)
}

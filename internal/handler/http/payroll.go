package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/middleware"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// CreateRun opens a new pay run
	CreateRun(w http.ResponseWriter, r *http.Request)
	// GetRun returns one pay run
	GetRun(w http.ResponseWriter, r *http.Request)
	// ListRuns returns all pay runs, newest pay date first
	ListRuns(w http.ResponseWriter, r *http.Request)
	// DeleteRun removes a pending pay run
	DeleteRun(w http.ResponseWriter, r *http.Request)
	// ProcessRun generates stubs and drives the run to a terminal state
	ProcessRun(w http.ResponseWriter, r *http.Request)
	// ListStubs is the HR/admin stub listing
	ListStubs(w http.ResponseWriter, r *http.Request)
	// ListMyStubs returns the caller's pay stub history
	ListMyStubs(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// CreateRun handles POST /payroll/runs
func (h *payrollHandlerImpl) CreateRun(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreatePayRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.payrollService.CreateRun(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// GetRun handles GET /payroll/runs/{id}
func (h *payrollHandlerImpl) GetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.payrollService.GetRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, run)
}

// ListRuns handles GET /payroll/runs
func (h *payrollHandlerImpl) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.payrollService.ListRuns(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, runs)
}

// DeleteRun handles DELETE /payroll/runs/{id}
func (h *payrollHandlerImpl) DeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payrollService.DeleteRun(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

// ProcessRun handles POST /payroll/runs/{id}/process
func (h *payrollHandlerImpl) ProcessRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payrollService.ProcessRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListStubs handles GET /payroll/stubs-admin
func (h *payrollHandlerImpl) ListStubs(w http.ResponseWriter, r *http.Request) {
	var filter payroll.StubFilter
	if v := r.URL.Query().Get("run_id"); v != "" {
		filter.PayRunID = &v
	}
	if v := r.URL.Query().Get("subject_id"); v != "" {
		filter.EmployeeSubjectID = &v
	}

	stubs, err := h.payrollService.ListStubs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stubs)
}

// ListMyStubs handles GET /my/paystubs
func (h *payrollHandlerImpl) ListMyStubs(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	stubs, err := h.payrollService.ListMyStubs(r.Context(), u.SubjectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stubs)
}

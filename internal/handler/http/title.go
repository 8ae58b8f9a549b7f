package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/title"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
)

type TitleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type titleHandlerImpl struct {
	titleService title.TitleService
}

func NewTitleHandler(titleService title.TitleService) TitleHandler {
	return &titleHandlerImpl{titleService: titleService}
}

// Create handles POST /titles
func (h *titleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req title.CreateTitleHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.titleService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, created)
}

// Get handles GET /titles/{id}
func (h *titleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entry, err := h.titleService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entry)
}

// List handles GET /titles
func (h *titleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter title.TitleFilter
	if v := r.URL.Query().Get("subject_id"); v != "" {
		filter.EmployeeSubjectID = &v
	}

	entries, err := h.titleService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}

// Update handles PATCH /titles/{id}
func (h *titleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req title.UpdateTitleHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.titleService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// Delete handles DELETE /titles/{id}
func (h *titleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.titleService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

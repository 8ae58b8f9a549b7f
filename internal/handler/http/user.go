package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peoplehq/hrms-backend-go/internal/domain/user"
	"github.com/peoplehq/hrms-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	// SyncUser applies an identity provider webhook event
	SyncUser(w http.ResponseWriter, r *http.Request)
	// ListUsers returns all users
	ListUsers(w http.ResponseWriter, r *http.Request)
	// GetUser returns one user by subject id
	GetUser(w http.ResponseWriter, r *http.Request)
	// UpdateUser changes a user's role or active flag
	UpdateUser(w http.ResponseWriter, r *http.Request)
	// DeactivateUser soft-deletes a user
	DeactivateUser(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService   user.UserService
	webhookSecret string
}

func NewUserHandler(userService user.UserService, webhookSecret string) UserHandler {
	return &userHandlerImpl{
		userService:   userService,
		webhookSecret: webhookSecret,
	}
}

// SyncUser handles POST /sync-user. The signature check only runs when a
// webhook secret is configured.
func (h *userHandlerImpl) SyncUser(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Could not read request body", nil)
		return
	}

	if h.webhookSecret != "" && !h.validSignature(body, r.Header.Get("X-Sync-Signature")) {
		response.Unauthorized(w, "Invalid webhook signature")
		return
	}

	var req user.SyncUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.userService.Sync(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *userHandlerImpl) validSignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ListUsers handles GET /admin/users
func (h *userHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// GetUser handles GET /admin/users/{subjectID}
func (h *userHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	u, err := h.userService.GetUser(r.Context(), subjectID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, u)
}

// UpdateUser handles PATCH /admin/users/{subjectID}
func (h *userHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	updated, err := h.userService.UpdateUser(r.Context(), subjectID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, updated)
}

// DeactivateUser handles DELETE /admin/users/{subjectID}
func (h *userHandlerImpl) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	subjectID := chi.URLParam(r, "subjectID")

	if err := h.userService.DeactivateUser(r.Context(), subjectID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.NoContent(w)
}

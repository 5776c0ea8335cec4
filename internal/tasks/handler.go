package tasks

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/platform/httpx"
)

// Handler wires HTTP endpoints for task CRUD. All routes sit behind the auth
// gate; the owner identity comes off the request context.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		validator: validator.New(),
	}
}

// MountRoutes registers task routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.handleCreate)
	r.Get("/", h.handleList)
	r.Get("/completed", h.handleListCompleted)
	r.Get("/{id}", h.handleGet)
	r.Put("/{id}", h.handleUpdate)
	r.Patch("/{id}/status", h.handleUpdateStatus)
	r.Delete("/{id}", h.handleDelete)
}

type createRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

type statusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !h.bind(w, r, &req) {
		return
	}

	task, err := h.service.Create(r.Context(), auth.SubjectFromContext(r.Context()), req.Title, req.Description)
	if err != nil {
		h.respondError(w, "create task", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, task)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), auth.SubjectFromContext(r.Context()))
	if err != nil {
		h.respondError(w, "list tasks", err)
		return
	}
	if list == nil {
		list = []Task{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleListCompleted(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListByStatus(r.Context(), auth.SubjectFromContext(r.Context()), StatusCompleted)
	if err != nil {
		h.respondError(w, "list completed tasks", err)
		return
	}
	if list == nil {
		list = []Task{}
	}
	httpx.JSON(w, http.StatusOK, list)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), auth.SubjectFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, "get task", err)
		return
	}
	httpx.JSON(w, http.StatusOK, task)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !h.bind(w, r, &req) {
		return
	}

	task, err := h.service.Update(r.Context(), auth.SubjectFromContext(r.Context()), chi.URLParam(r, "id"), UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.respondError(w, "update task", err)
		return
	}
	httpx.JSON(w, http.StatusOK, task)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	// The body is optional; an absent status means "mark completed".
	var req statusRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
			return
		}
	}

	task, err := h.service.UpdateStatus(r.Context(), auth.SubjectFromContext(r.Context()), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.respondError(w, "update task status", err)
		return
	}
	httpx.JSON(w, http.StatusOK, task)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), auth.SubjectFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, "delete task", err)
		return
	}
	httpx.Message(w, http.StatusOK, "task deleted")
}

func (h *Handler) bind(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return false
	}
	if err := h.validator.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if !httpx.IsClientError(err) {
		h.logger.Error(op, slog.Any("error", err))
	}
	httpx.RespondError(w, err)
}

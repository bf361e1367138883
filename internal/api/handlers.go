// Package api exposes HTTP handlers for the workout service.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"example.com/fitapp/internal/auth"
	"example.com/fitapp/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/catalog", h.catalog)
	mux.HandleFunc("/v1/catalog/", h.catalogByID)
	mux.HandleFunc("/v1/workouts", h.workouts)
	mux.HandleFunc("/v1/workouts/", h.workoutByID)
	mux.HandleFunc("/v1/workouts/adopt", h.adoptWorkout)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func principalFromContext(r *http.Request) *domain.Principal {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		return nil
	}
	return &domain.Principal{ID: claims.Subject, Roles: claims.Roles}
}

func (h *Handler) catalog(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listCatalog(w, r)
	case http.MethodPost:
		h.createCatalog(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) catalogByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/catalog/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing workout id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getCatalog(w, r, id)
	case http.MethodPut:
		h.updateCatalog(w, r, id)
	case http.MethodDelete:
		h.deleteCatalog(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) workouts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listWorkouts(w, r)
	case http.MethodPost:
		h.createWorkout(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) workoutByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/workouts/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing workout id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getWorkout(w, r, id)
	case http.MethodPut:
		h.updateWorkout(w, r, id)
	case http.MethodDelete:
		h.deleteWorkout(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
	}
}

func (h *Handler) listCatalog(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r)
	searchTerm := r.URL.Query().Get("search")
	sortKey := domain.ParseSortKey(r.URL.Query().Get("sort"))

	records, err := h.service.ListCatalog(r.Context(), principal, searchTerm, sortKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]CatalogWorkoutView, 0, len(records))
	for _, rec := range records {
		items = append(items, toCatalogView(rec))
	}
	writeJSON(w, http.StatusOK, ListCatalogResponse{Items: items})
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request, id string) {
	workout, err := h.service.GetCatalog(r.Context(), principalFromContext(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogView(*workout))
}

func (h *Handler) createCatalog(w http.ResponseWriter, r *http.Request) {
	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	workout, err := h.service.CreateCatalog(r.Context(), principalFromContext(r), req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCatalogView(*workout))
}

func (h *Handler) updateCatalog(w http.ResponseWriter, r *http.Request, id string) {
	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	workout, err := h.service.UpdateCatalog(r.Context(), principalFromContext(r), id, req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCatalogView(*workout))
}

func (h *Handler) deleteCatalog(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteCatalog(r.Context(), principalFromContext(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r)
	searchTerm := r.URL.Query().Get("search")
	sortKey := domain.ParseSortKey(r.URL.Query().Get("sort"))

	records, err := h.service.ListPersonal(r.Context(), principal, searchTerm, sortKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	items := make([]PersonalWorkoutView, 0, len(records))
	for _, rec := range records {
		items = append(items, toPersonalView(rec))
	}
	writeJSON(w, http.StatusOK, ListWorkoutsResponse{Items: items})
}

func (h *Handler) getWorkout(w http.ResponseWriter, r *http.Request, id string) {
	workout, err := h.service.GetPersonal(r.Context(), principalFromContext(r), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonalView(*workout))
}

func (h *Handler) createWorkout(w http.ResponseWriter, r *http.Request) {
	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	workout, err := h.service.CreatePersonal(r.Context(), principalFromContext(r), req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPersonalView(*workout))
}

func (h *Handler) updateWorkout(w http.ResponseWriter, r *http.Request, id string) {
	var req WorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	workout, err := h.service.UpdatePersonal(r.Context(), principalFromContext(r), id, req.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonalView(*workout))
}

func (h *Handler) deleteWorkout(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeletePersonal(r.Context(), principalFromContext(r), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) adoptWorkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req AdoptWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if strings.TrimSpace(req.CatalogID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing catalog_id")
		return
	}

	workout, err := h.service.AdoptCatalogWorkout(r.Context(), principalFromContext(r), req.CatalogID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPersonalView(*workout))
}

// WorkoutRequest is the field payload for create/update of either kind.
// Owner and identifier are never taken from the payload.
type WorkoutRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min"`
	Calories    float64 `json:"calories"`
}

func (r WorkoutRequest) fields() domain.WorkoutFields {
	return domain.WorkoutFields{
		Name:        r.Name,
		Description: r.Description,
		Duration:    time.Duration(r.DurationMin) * time.Minute,
		Calories:    r.Calories,
	}
}

// AdoptWorkoutRequest is the payload for POST /v1/workouts/adopt.
type AdoptWorkoutRequest struct {
	CatalogID string `json:"catalog_id"`
}

// CatalogWorkoutView exposes a catalog workout.
type CatalogWorkoutView struct {
	WorkoutID   string    `json:"workout_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DurationMin int       `json:"duration_min"`
	Calories    float64   `json:"calories"`
	RowVersion  int64     `json:"row_version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PersonalWorkoutView exposes a personal workout to its owner.
type PersonalWorkoutView struct {
	WorkoutID   string    `json:"workout_id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DurationMin int       `json:"duration_min"`
	Calories    float64   `json:"calories"`
	RowVersion  int64     `json:"row_version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListCatalogResponse packages catalog list results.
type ListCatalogResponse struct {
	Items []CatalogWorkoutView `json:"items"`
}

// ListWorkoutsResponse packages personal list results.
type ListWorkoutsResponse struct {
	Items []PersonalWorkoutView `json:"items"`
}

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Type   string              `json:"type"`
	Detail string              `json:"detail"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

func toCatalogView(w domain.CatalogWorkout) CatalogWorkoutView {
	return CatalogWorkoutView{
		WorkoutID:   w.ID,
		Name:        w.Name,
		Description: w.Description,
		DurationMin: int(w.Duration / time.Minute),
		Calories:    w.Calories,
		RowVersion:  w.RowVersion,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func toPersonalView(w domain.PersonalWorkout) PersonalWorkoutView {
	return PersonalWorkoutView{
		WorkoutID:   w.ID,
		OwnerID:     w.OwnerID,
		Name:        w.Name,
		Description: w.Description,
		DurationMin: int(w.Duration / time.Minute),
		Calories:    w.Calories,
		RowVersion:  w.RowVersion,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// writeServiceError maps domain errors to HTTP responses. Ownership
// mismatches arrive as domain.ErrWorkoutNotFound and therefore render as
// 404, while role-based denials render as 403.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Type: "validation_failed", Detail: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "admin role required")
	case errors.Is(err, domain.ErrWorkoutNotFound):
		writeError(w, http.StatusNotFound, "not_found", "workout not found")
	case errors.Is(err, domain.ErrConcurrentModification):
		writeError(w, http.StatusConflict, "conflict", "workout was modified concurrently")
	default:
		log.Printf("unexpected store failure: %v", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, ErrorResponse{Type: code, Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

package handlers

import (
	"InvKeeper/internal/middleware"
	"InvKeeper/internal/model"
	"InvKeeper/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LocationHandler - места хранения.
type LocationHandler struct {
	LocationService *service.LocationService
	AuthService     *service.AuthService
	Logger          *zap.SugaredLogger
}

// NewLocationHandler создаёт хендлер locations
func NewLocationHandler(locationService *service.LocationService, authService *service.AuthService, logger *zap.SugaredLogger) *LocationHandler {
	return &LocationHandler{LocationService: locationService, AuthService: authService, Logger: logger}
}

type CreateLocationRequest struct {
	Identifier  string               `json:"location_identifier"`
	Type        model.LocationType   `json:"location_type"`
	MinRole     model.Role           `json:"rbac_min_level,omitempty"`
	MaxCapacity *uint16              `json:"max_capacity,omitempty"`
	Status      model.LocationStatus `json:"location_status,omitempty"`
}

type EditLocationStatusRequest struct {
	LocationID string               `json:"location_id"`
	NewStatus  model.LocationStatus `json:"new_status"`
}

// List отдаёт места, доступные роли текущего пользователя. Анонимный запрос видит места уровня User.
func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	role := model.RoleUser
	if userID, ok := middleware.GetUserIDFromContext(r.Context()); ok {
		u, err := h.AuthService.User(r.Context(), userID)
		if err != nil {
			writeServiceError(w, h.Logger, "ListLocations", err)
			return
		}
		role = u.Role
	}
	locs, err := h.LocationService.List(r.Context(), role)
	if err != nil {
		writeServiceError(w, h.Logger, "ListLocations", err)
		return
	}
	writeJSON(w, h.Logger, locs)
}

func (h *LocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	loc, err := h.LocationService.Create(r.Context(), service.CreateLocationInput{
		Identifier:  req.Identifier,
		Type:        req.Type,
		MinRole:     req.MinRole,
		MaxCapacity: req.MaxCapacity,
		Status:      req.Status,
	})
	if err != nil {
		writeServiceError(w, h.Logger, "CreateLocation", err)
		return
	}
	writeJSON(w, h.Logger, loc)
}

func (h *LocationHandler) EditStatus(w http.ResponseWriter, r *http.Request) {
	var req EditLocationStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.LocationService.ChangeStatus(r.Context(), req.LocationID, req.NewStatus); err != nil {
		writeServiceError(w, h.Logger, "EditLocationStatus", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *LocationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.LocationService.Delete(r.Context(), chi.URLParam(r, "location_id")); err != nil {
		writeServiceError(w, h.Logger, "DeleteLocation", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

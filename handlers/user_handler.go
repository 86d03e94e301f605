package handlers

import (
	"encoding/json"
	"net/http"

	"maharashtra-guide/middleware"
	"maharashtra-guide/models"
	"maharashtra-guide/services"
	"maharashtra-guide/utils/errors"
	"maharashtra-guide/utils/geo"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateLocation records the authenticated user's current position.
func (h *UserHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		middleware.WriteError(w, errors.ErrUnauthorized)
		return
	}

	var input struct {
		Latitude  models.Degrees `json:"latitude"`
		Longitude models.Degrees `json:"longitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}
	if !input.Latitude.Valid || !input.Longitude.Valid {
		middleware.WriteError(w, errors.NewAPIError("INVALID_INPUT", "Latitude and longitude are required numbers", http.StatusBadRequest))
		return
	}

	point := geo.Point{Lat: input.Latitude.Value, Lon: input.Longitude.Value}
	if err := h.userService.UpdateLocation(r.Context(), userID, point); err != nil {
		middleware.WriteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "message": "Location updated", "userId": userID})
}

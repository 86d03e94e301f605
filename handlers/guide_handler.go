package handlers

import (
	"net/http"

	"maharashtra-guide/middleware"
	"maharashtra-guide/models"
	"maharashtra-guide/services"
	"maharashtra-guide/utils/geo"
)

type GuideHandler struct {
	guideService *services.GuideService
}

func NewGuideHandler(guideService *services.GuideService) *GuideHandler {
	return &GuideHandler{guideService: guideService}
}

func (h *GuideHandler) ListGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.guideService.ListGuides(r.Context())
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, guides)
}

// GetNearbyGuides answers /api/nearby/guides?latitude=..&longitude=.. with a
// bare array, nearest guide first.
func (h *GuideHandler) GetNearbyGuides(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	origin, err := geo.ParsePoint(query.Get("latitude"), query.Get("longitude"))
	if err != nil {
		middleware.WriteError(w, err)
		return
	}

	guides, err := h.guideService.NearbyGuides(r.Context(), origin)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, guides)
}

func (h *GuideHandler) GuideLocations(w http.ResponseWriter, r *http.Request) {
	h.locations(w, r, models.UserTypeGuide)
}

func (h *GuideHandler) TouristLocations(w http.ResponseWriter, r *http.Request) {
	h.locations(w, r, models.UserTypeTourist)
}

func (h *GuideHandler) locations(w http.ResponseWriter, r *http.Request, userType models.UserType) {
	entries, err := h.guideService.Locations(r.Context(), userType)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

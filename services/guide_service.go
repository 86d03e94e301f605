package services

import (
	"context"
	"log"
	"net/http"

	"maharashtra-guide/models"
	"maharashtra-guide/repository"
	"maharashtra-guide/utils/errors"
	"maharashtra-guide/utils/geo"
)

// DefaultNearbyRadiusKm is the search radius used when none is configured.
const DefaultNearbyRadiusKm = 50.0

type GuideService struct {
	users    repository.UserRepository
	radiusKm float64
}

func NewGuideService(users repository.UserRepository, radiusKm float64) *GuideService {
	if radiusKm <= 0 {
		radiusKm = DefaultNearbyRadiusKm
	}
	return &GuideService{users: users, radiusKm: radiusKm}
}

func (s *GuideService) RadiusKm() float64 {
	return s.radiusKm
}

// ListGuides returns every guide record ordered by ID.
func (s *GuideService) ListGuides(ctx context.Context) ([]models.User, error) {
	return s.users.FindByType(ctx, models.UserTypeGuide)
}

// NearbyGuides returns guides within the configured radius of origin, nearest
// first, each annotated with its distance in kilometres. It only reads.
func (s *GuideService) NearbyGuides(ctx context.Context, origin geo.Point) ([]models.NearbyGuide, error) {
	if err := geo.ValidatePoint(origin); err != nil {
		return nil, err
	}
	guides, err := s.users.FindByType(ctx, models.UserTypeGuide)
	if err != nil {
		return nil, err
	}
	nearby := geo.NearestGuides(origin, guides, s.radiusKm)
	log.Printf("Found %d of %d guides within %.1f km of (%f, %f)", len(nearby), len(guides), s.radiusKm, origin.Lat, origin.Lon)
	return nearby, nil
}

// Locations is the position feed for one user type. Users without usable
// coordinates are left out.
func (s *GuideService) Locations(ctx context.Context, userType models.UserType) ([]models.LocationEntry, error) {
	if !userType.Valid() {
		return nil, errors.NewAPIError("INVALID_INPUT", "Unknown user type", http.StatusBadRequest)
	}
	users, err := s.users.FindByType(ctx, userType)
	if err != nil {
		return nil, err
	}
	entries := make([]models.LocationEntry, 0, len(users))
	for _, u := range users {
		lat, lon, ok := u.Location()
		if !ok {
			continue
		}
		name := u.FullName
		if name == "" {
			name = u.Username
		}
		entries = append(entries, models.LocationEntry{
			UserID:      u.ID,
			Username:    u.Username,
			Name:        name,
			Latitude:    lat,
			Longitude:   lon,
			LastUpdated: u.LastLocationUpdate,
			UserType:    u.UserType,
		})
	}
	return entries, nil
}

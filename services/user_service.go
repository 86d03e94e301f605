package services

import (
	"context"
	"log"
	"time"

	"maharashtra-guide/models"
	"maharashtra-guide/repository"
	"maharashtra-guide/utils/geo"
)

// UserCache is a read-through cache for public user records.
type UserCache interface {
	Get(ctx context.Context, id string) (*models.User, bool)
	Set(ctx context.Context, user models.User)
	Delete(ctx context.Context, id string)
}

// LocationPublisher broadcasts reported positions to interested consumers.
type LocationPublisher interface {
	PublishLocation(ctx context.Context, event models.LocationEvent) error
}

type UserService struct {
	users     repository.UserRepository
	cache     UserCache
	publisher LocationPublisher
	now       func() time.Time
}

// NewUserService wires the store with an optional cache and publisher; pass
// nil for either to run without it.
func NewUserService(users repository.UserRepository, cache UserCache, publisher LocationPublisher) *UserService {
	return &UserService{
		users:     users,
		cache:     cache,
		publisher: publisher,
		now:       time.Now,
	}
}

// GetUser retrieves a user from the cache or the store
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, userID); ok {
			return user, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, *user)
	}
	return user, nil
}

// UpdateLocation stores a reported position for userID and announces it.
func (s *UserService) UpdateLocation(ctx context.Context, userID string, point geo.Point) error {
	if err := geo.ValidatePoint(point); err != nil {
		return err
	}

	at := s.now().UTC()
	if err := s.users.UpdateLocation(ctx, userID, point.Lat, point.Lon, at); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Delete(ctx, userID)
	}
	log.Printf("Updated location for user %s: lat=%f, lon=%f", userID, point.Lat, point.Lon)

	if s.publisher == nil {
		return nil
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		log.Printf("Skipping location event for user %s: %v", userID, err)
		return nil
	}
	event := models.LocationEvent{
		UserID:    user.ID,
		Username:  user.Username,
		UserType:  user.UserType,
		Latitude:  point.Lat,
		Longitude: point.Lon,
		At:        at,
	}
	// The position is already stored; a broker outage only loses the broadcast.
	if err := s.publisher.PublishLocation(ctx, event); err != nil {
		log.Printf("Failed to publish location event for user %s: %v", userID, err)
	}
	return nil
}

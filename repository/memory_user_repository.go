package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"maharashtra-guide/models"
	"maharashtra-guide/utils/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserRepository keeps users in a map. It backs tests and local
// experiments; setting Unavailable makes every call fail the way an
// unreachable MongoDB does.
type MemoryUserRepository struct {
	mu          sync.RWMutex
	users       map[string]models.User
	Unavailable bool
}

func NewMemoryUserRepository(seed ...models.User) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]models.User)}
	for _, u := range seed {
		if u.ID == "" {
			u.ID = primitive.NewObjectID().Hex()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *MemoryUserRepository) check(op string) error {
	if r.Unavailable {
		return fmt.Errorf("%s: %w", op, errors.ErrStoreUnavailable)
	}
	return nil
}

func (r *MemoryUserRepository) FindByType(_ context.Context, userType models.UserType) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.check("find users by type"); err != nil {
		return nil, err
	}
	users := []models.User{}
	for _, u := range r.users {
		if u.UserType == userType {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (*models.User, error) {
	return r.find("find user by id", func(u models.User) bool { return u.ID == id })
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find("find user by username", func(u models.User) bool { return u.Username == username })
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find("find user by email", func(u models.User) bool { return u.Email == email })
}

func (r *MemoryUserRepository) find(op string, match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.check(op); err != nil {
		return nil, err
	}
	for _, u := range r.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, errors.ErrNotFound)
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("create user"); err != nil {
		return "", err
	}
	for _, u := range r.users {
		if u.Username == user.Username || (user.Email != "" && u.Email == user.Email) {
			return "", fmt.Errorf("create user: %w", errors.ErrConflict)
		}
	}
	user.ID = primitive.NewObjectID().Hex()
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *MemoryUserRepository) UpdateLocation(_ context.Context, id string, lat, lon float64, at time.Time) error {
	return r.update("update user location", id, func(u *models.User) {
		u.CurrentLatitude = models.NewDegrees(lat)
		u.CurrentLongitude = models.NewDegrees(lon)
		u.LastLocationUpdate = &at
	})
}

func (r *MemoryUserRepository) SetPasswordHash(_ context.Context, id, hash string) error {
	return r.update("set password hash", id, func(u *models.User) {
		u.PasswordHash = hash
		u.LegacyPassword = ""
	})
}

func (r *MemoryUserRepository) update(op, id string, apply func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check(op); err != nil {
		return err
	}
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, errors.ErrNotFound)
	}
	apply(&u)
	r.users[id] = u
	return nil
}

package repository

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"maharashtra-guide/models"
	"maharashtra-guide/utils/errors"
)

var _ UserRepository = (*MemoryUserRepository)(nil)
var _ UserRepository = (*MongoUserRepository)(nil)

func TestMemoryUserRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()

	u := &models.User{Username: "pune_guide", Email: "pune@example.com", UserType: models.UserTypeGuide}
	id, err := repo.Create(ctx, u)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id == "" || u.ID != id {
		t.Fatalf("Create id = %q, user.ID = %q", id, u.ID)
	}

	if _, err := repo.Create(ctx, &models.User{Username: "pune_guide"}); !stderrors.Is(err, errors.ErrConflict) {
		t.Fatalf("duplicate username err = %v, want ErrConflict", err)
	}
	if _, err := repo.Create(ctx, &models.User{Username: "other", Email: "pune@example.com"}); !stderrors.Is(err, errors.ErrConflict) {
		t.Fatalf("duplicate email err = %v, want ErrConflict", err)
	}

	got, err := repo.FindByEmail(ctx, "pune@example.com")
	if err != nil || got.ID != id {
		t.Fatalf("FindByEmail = %+v, %v", got, err)
	}
	if _, err := repo.FindByUsername(ctx, "nobody"); !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("FindByUsername(nobody) err = %v, want ErrNotFound", err)
	}
}

func TestMemoryUserRepositoryUpdateLocation(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository(models.User{ID: "g1", Username: "g1", UserType: models.UserTypeGuide})

	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	if err := repo.UpdateLocation(ctx, "g1", 18.52, 73.85, at); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	got, _ := repo.FindByID(ctx, "g1")
	lat, lon, ok := got.Location()
	if !ok || lat != 18.52 || lon != 73.85 || !got.LastLocationUpdate.Equal(at) {
		t.Fatalf("after update = %+v", got)
	}
	if err := repo.UpdateLocation(ctx, "missing", 1, 1, at); !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("UpdateLocation(missing) err = %v, want ErrNotFound", err)
	}
}

func TestMemoryUserRepositoryUnavailable(t *testing.T) {
	repo := NewMemoryUserRepository()
	repo.Unavailable = true
	if _, err := repo.FindByType(context.Background(), models.UserTypeGuide); !stderrors.Is(err, errors.ErrStoreUnavailable) {
		t.Fatalf("FindByType err = %v, want ErrStoreUnavailable", err)
	}
}

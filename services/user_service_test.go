package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"maharashtra-guide/models"
	"maharashtra-guide/repository"
	"maharashtra-guide/utils/errors"
	"maharashtra-guide/utils/geo"
)

type fakeCache struct {
	users   map[string]models.User
	hits    int
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{users: make(map[string]models.User)}
}

func (c *fakeCache) Get(_ context.Context, id string) (*models.User, bool) {
	u, ok := c.users[id]
	if ok {
		c.hits++
		return &u, true
	}
	return nil, false
}

func (c *fakeCache) Set(_ context.Context, user models.User) {
	c.users[user.ID] = user
}

func (c *fakeCache) Delete(_ context.Context, id string) {
	delete(c.users, id)
	c.deleted = append(c.deleted, id)
}

type fakePublisher struct {
	events []models.LocationEvent
	err    error
}

func (p *fakePublisher) PublishLocation(_ context.Context, event models.LocationEvent) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func TestGetUserReadsThroughCache(t *testing.T) {
	repo := repository.NewMemoryUserRepository(models.User{ID: "u1", Username: "aryan"})
	cache := newFakeCache()
	svc := NewUserService(repo, cache, nil)
	ctx := context.Background()

	if _, err := svc.GetUser(ctx, "u1"); err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if _, ok := cache.users["u1"]; !ok {
		t.Fatalf("user not cached after first read")
	}

	repo.Unavailable = true
	got, err := svc.GetUser(ctx, "u1")
	if err != nil || got.Username != "aryan" || cache.hits != 1 {
		t.Fatalf("cached GetUser = %+v, %v (hits %d)", got, err, cache.hits)
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewUserService(repository.NewMemoryUserRepository(), nil, nil)
	_, err := svc.GetUser(context.Background(), "missing")
	if !stderrors.Is(err, errors.ErrNotFound) {
		t.Fatalf("GetUser(missing) err = %v, want ErrNotFound", err)
	}
}

func TestUpdateLocation(t *testing.T) {
	repo := repository.NewMemoryUserRepository(models.User{ID: "g1", Username: "pune_guide", UserType: models.UserTypeGuide})
	cache := newFakeCache()
	pub := &fakePublisher{}
	svc := NewUserService(repo, cache, pub)
	ctx := context.Background()

	if _, err := svc.GetUser(ctx, "g1"); err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if err := svc.UpdateLocation(ctx, "g1", geo.Point{Lat: 18.52, Lon: 73.85}); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}

	if len(cache.deleted) != 1 || cache.deleted[0] != "g1" {
		t.Fatalf("cache invalidations = %v, want [g1]", cache.deleted)
	}
	got, err := svc.GetUser(ctx, "g1")
	if err != nil {
		t.Fatalf("GetUser after update: %v", err)
	}
	if lat, lon, ok := got.Location(); !ok || lat != 18.52 || lon != 73.85 {
		t.Fatalf("location after update = %v, %v, %v", lat, lon, ok)
	}
	if len(pub.events) != 1 || pub.events[0].UserID != "g1" || pub.events[0].UserType != models.UserTypeGuide {
		t.Fatalf("published events = %+v", pub.events)
	}
}

func TestUpdateLocationErrors(t *testing.T) {
	repo := repository.NewMemoryUserRepository(models.User{ID: "g1", Username: "g1"})
	pub := &fakePublisher{err: stderrors.New("broker down")}
	svc := NewUserService(repo, nil, pub)
	ctx := context.Background()

	if err := svc.UpdateLocation(ctx, "g1", geo.Point{Lat: 18.52, Lon: 200}); statusOf(err) != http.StatusBadRequest {
		t.Fatalf("invalid point err = %v, want 400", err)
	}
	if err := svc.UpdateLocation(ctx, "missing", geo.Point{Lat: 18.52, Lon: 73.85}); statusOf(err) != http.StatusNotFound {
		t.Fatalf("unknown user err = %v, want 404", err)
	}
	if err := svc.UpdateLocation(ctx, "g1", geo.Point{Lat: 18.52, Lon: 73.85}); err != nil {
		t.Fatalf("broker failure should not fail the update: %v", err)
	}
}

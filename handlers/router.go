package handlers

import (
	"net/http"

	"maharashtra-guide/middleware"
	"maharashtra-guide/services"

	"github.com/gorilla/mux"
)

type RouterConfig struct {
	AuthService    *services.AuthService
	UserService    *services.UserService
	GuideService   *services.GuideService
	JWTSecret      string
	AllowedOrigins []string
	Environment    string
}

// NewRouter builds the API routes. CORS sits outside the router so that
// preflight requests and 404/405 responses carry the CORS headers too.
func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.AuthService)
	userHandler := NewUserHandler(cfg.UserService)
	guideHandler := NewGuideHandler(cfg.GuideService)
	healthHandler := NewHealthHandler(cfg.Environment)

	r := mux.NewRouter()
	r.NotFoundHandler = middleware.NotFoundHandler()
	r.MethodNotAllowedHandler = middleware.MethodNotAllowedHandler()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	// Auth routes
	api.HandleFunc("/auth/login", authHandler.LoginUser).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", authHandler.RegisterUser).Methods(http.MethodPost)

	// Guide routes
	api.HandleFunc("/guides", guideHandler.ListGuides).Methods(http.MethodGet)
	api.HandleFunc("/guides/locations", guideHandler.GuideLocations).Methods(http.MethodGet)
	api.HandleFunc("/tourists/locations", guideHandler.TouristLocations).Methods(http.MethodGet)
	api.HandleFunc("/nearby/guides", guideHandler.GetNearbyGuides).Methods(http.MethodGet)

	// User routes
	secured := middleware.JWTMiddleware(cfg.JWTSecret)
	api.Handle("/users/location", secured(http.HandlerFunc(userHandler.UpdateLocation))).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", userHandler.GetUser).Methods(http.MethodGet)

	var h http.Handler = r
	h = middleware.CORSMiddleware(cfg.AllowedOrigins)(h)
	h = middleware.LoggingMiddleware()(h)
	h = middleware.ErrorMiddleware()(h)
	return h
}

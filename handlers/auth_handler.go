package handlers

import (
	"encoding/json"
	"net/http"

	"maharashtra-guide/middleware"
	"maharashtra-guide/models"
	"maharashtra-guide/services"
	"maharashtra-guide/utils/errors"
)

type AuthHandler struct {
	authService *services.AuthService
}

// LoginResponse is the user record, without password fields, plus a token.
type LoginResponse struct {
	models.User
	Token string `json:"token"`
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username         string          `json:"username"`
		Email            string          `json:"email"`
		Password         string          `json:"password"`
		FullName         string          `json:"fullName"`
		UserType         models.UserType `json:"userType"`
		CurrentLatitude  *models.Degrees `json:"currentLatitude"`
		CurrentLongitude *models.Degrees `json:"currentLongitude"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}

	user, err := h.authService.Register(r.Context(), services.RegisterInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		FullName:  input.FullName,
		UserType:  input.UserType,
		Latitude:  input.CurrentLatitude,
		Longitude: input.CurrentLongitude,
	})
	if err != nil {
		middleware.WriteError(w, errors.Wrap(err, "REGISTRATION_ERROR", "Failed to register user", http.StatusInternalServerError))
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		middleware.WriteError(w, errors.ErrInvalidInput)
		return
	}

	result, err := h.authService.Login(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		middleware.WriteError(w, errors.Wrap(err, "LOGIN_ERROR", "Failed to login user", http.StatusInternalServerError))
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{User: result.User, Token: result.Token})
}

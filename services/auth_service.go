package services

import (
	"context"
	"crypto/subtle"
	stderrors "errors"
	"log"
	"net/http"
	"strings"
	"time"

	"maharashtra-guide/models"
	"maharashtra-guide/repository"
	"maharashtra-guide/utils/errors"
	"maharashtra-guide/utils/geo"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users     repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// LoginResult is the authenticated user plus a signed session token.
type LoginResult struct {
	User  models.User
	Token string
}

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FullName  string
	UserType  models.UserType
	// Latitude and Longitude are nil when no initial position was sent.
	Latitude  *models.Degrees
	Longitude *models.Degrees
}

var (
	errMissingCredentials = errors.NewAPIError("INVALID_INPUT", "Email/username and password are required", http.StatusBadRequest)
	errAlreadyRegistered  = errors.NewAPIError("CONFLICT", "Username or email already registered", http.StatusConflict)
)

// Login looks the user up by username first and by email second, then checks
// the password. Unknown users and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, email, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if (username == "" && email == "") || password == "" {
		return nil, errMissingCredentials
	}

	var user *models.User
	var err error
	if username != "" {
		user, err = s.users.FindByUsername(ctx, username)
		if err != nil && !stderrors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
	}
	if user == nil && email != "" {
		user, err = s.users.FindByEmail(ctx, email)
		if err != nil && !stderrors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
	}
	if user == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if !s.verifyPassword(ctx, user, password) {
		return nil, errors.ErrInvalidCredentials
	}

	token, err := s.issueToken(*user)
	if err != nil {
		return nil, err
	}

	log.Printf("Login successful for user %s", user.ID)
	return &LoginResult{User: *user, Token: token}, nil
}

// verifyPassword checks bcrypt hashes. Records that still carry a plain-text
// password are compared in constant time and upgraded to a hash on success.
func (s *AuthService) verifyPassword(ctx context.Context, user *models.User, password string) bool {
	if user.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
	}
	if user.LegacyPassword == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(user.LegacyPassword), []byte(password)) != 1 {
		return false
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash legacy password for user %s: %v", user.ID, err)
		return true
	}
	if err := s.users.SetPasswordHash(ctx, user.ID, string(hash)); err != nil {
		log.Printf("Failed to upgrade legacy password for user %s: %v", user.ID, err)
		return true
	}
	user.PasswordHash = string(hash)
	user.LegacyPassword = ""
	return true
}

func (s *AuthService) issueToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userID":   user.ID,
		"username": user.Username,
		"userType": string(user.UserType),
		"exp":      s.now().Add(s.tokenTTL).Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", errors.Wrap(err, "JWT_ERROR", "Failed to generate token", http.StatusInternalServerError)
	}
	return tokenString, nil
}

// Register creates a new user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, errors.NewAPIError("INVALID_INPUT", "Username, email and password are required", http.StatusBadRequest)
	}
	if input.UserType == "" {
		input.UserType = models.UserTypeTourist
	}
	if !input.UserType.Valid() {
		return nil, errors.NewAPIError("INVALID_INPUT", "userType must be tourist or guide", http.StatusBadRequest)
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return nil, errors.NewAPIError("INVALID_INPUT", "Latitude and longitude must be given together", http.StatusBadRequest)
	}
	hasLocation := input.Latitude != nil
	if hasLocation {
		if !input.Latitude.Valid || !input.Longitude.Valid {
			return nil, errors.NewAPIError("INVALID_INPUT", "Latitude and longitude must be numbers", http.StatusBadRequest)
		}
		if err := geo.ValidatePoint(geo.Point{Lat: input.Latitude.Value, Lon: input.Longitude.Value}); err != nil {
			return nil, err
		}
	}

	if err := s.ensureUnregistered(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "HASH_ERROR", "failed to hash password", http.StatusInternalServerError)
	}

	now := s.now().UTC()
	user := models.User{
		Username:         input.Username,
		Email:            input.Email,
		FullName:         strings.TrimSpace(input.FullName),
		UserType:         input.UserType,
		CreatedAt:        now,
		PasswordHash:     string(passwordHash),
	}
	if hasLocation {
		user.CurrentLatitude = *input.Latitude
		user.CurrentLongitude = *input.Longitude
		user.LastLocationUpdate = &now
	}

	if _, err := s.users.Create(ctx, &user); err != nil {
		if stderrors.Is(err, errors.ErrConflict) {
			return nil, errAlreadyRegistered
		}
		return nil, err
	}

	log.Printf("Registered %s %s", user.UserType, user.ID)
	return &user, nil
}

func (s *AuthService) ensureUnregistered(ctx context.Context, username, email string) error {
	_, err := s.users.FindByUsername(ctx, username)
	if err == nil {
		return errAlreadyRegistered
	}
	if !stderrors.Is(err, errors.ErrNotFound) {
		return err
	}
	_, err = s.users.FindByEmail(ctx, email)
	if err == nil {
		return errAlreadyRegistered
	}
	if !stderrors.Is(err, errors.ErrNotFound) {
		return err
	}
	return nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/labelwise/backend/internal/domain"
)

// Password strength rules: at least 8 characters with one uppercase letter,
// one digit, and one special character.
var (
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex     = regexp.MustCompile(`\d`)
	specialRegex   = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// AuthConfig holds configuration for the auth service
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// AuthService handles registration, login and profile updates over the
// customer collection.
type AuthService struct {
	users     domain.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

// RegisterRequest carries the fields collected by the registration form.
type RegisterRequest struct {
	Name               string   `json:"name" binding:"required"`
	Email              string   `json:"email" binding:"required,email"`
	Password           string   `json:"password" binding:"required"`
	Age                int      `json:"age" binding:"required,min=1,max=120"`
	HeightCM           float64  `json:"height" binding:"required,min=50,max=250"`
	WeightKG           float64  `json:"weight" binding:"required,min=10,max=300"`
	Allergies          []string `json:"allergies"`
	HealthConditions   string   `json:"health_conditions"`
	ActivityLevel      string   `json:"activity_level"`
	DietaryPreferences []string `json:"dietary_preferences"`
	HealthGoals        string   `json:"health_goals"`
}

// NewAuthService creates an auth service
func NewAuthService(users domain.UserRepository, config AuthConfig) *AuthService {
	tokenTTL := config.TokenTTL
	if tokenTTL == 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		jwtSecret: []byte(config.JWTSecret),
		tokenTTL:  tokenTTL,
	}
}

// Register validates the request, hashes the password and stores the new
// account together with its computed BMI.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if !validPassword(req.Password) {
		return nil, domain.ErrWeakPassword
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:               req.Name,
		Email:              req.Email,
		PasswordHash:       string(hash),
		Age:                req.Age,
		HeightCM:           req.HeightCM,
		WeightKG:           req.WeightKG,
		BMI:                domain.CalculateBMI(req.WeightKG, req.HeightCM),
		Allergies:          req.Allergies,
		HealthConditions:   req.HealthConditions,
		ActivityLevel:      req.ActivityLevel,
		DietaryPreferences: req.DietaryPreferences,
		HealthGoals:        req.HealthGoals,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return user, nil
}

// Login verifies credentials and issues a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"email": user.Email,
		"name":  user.Name,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// VerifyToken validates a session token and returns the account email.
func (s *AuthService) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrInvalidCredentials
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", domain.ErrInvalidCredentials
	}
	return email, nil
}

// UpdateProfile recomputes the BMI and writes the new profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, email string, update domain.ProfileUpdate) (float64, error) {
	update.BMI = domain.CalculateBMI(update.WeightKG, update.HeightCM)
	if err := s.users.UpdateProfile(ctx, email, update); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return update.BMI, nil
}

// GetProfile loads the account for an email.
func (s *AuthService) GetProfile(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return user, nil
}

func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return uppercaseRegex.MatchString(password) &&
		digitRegex.MatchString(password) &&
		specialRegex.MatchString(password)
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/nirmaanhetu/marketplace-api/internal/api/metrics"
	"github.com/nirmaanhetu/marketplace-api/internal/core/domain"
	"github.com/nirmaanhetu/marketplace-api/internal/core/ports"
)

const (
	minUsernameLen  = 4
	minPasswordLen  = 6
	defaultTokenTTL = 7 * 24 * time.Hour
)

// DemoAccounts holds the seeded demo identities, keyed by role via the two
// explicit fields.
type DemoAccounts struct {
	OwnerEmail   string
	BuilderEmail string
}

// AuthService implements registration, login and profile management.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	demo      DemoAccounts
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, demo DemoAccounts, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		demo:      demo,
		validate:  validator.New(),
		log:       log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)

	if err := s.validateProfile(username, email); err != nil {
		return nil, err
	}
	if in.Password == "" || in.Role == "" {
		return nil, domain.Validationf("missing required fields")
	}
	if len(in.Password) < minPasswordLen {
		return nil, domain.Validationf("password must be at least %d characters", minPasswordLen)
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.Validationf("passwords do not match")
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.Validationf("role must be owner or builder")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(created.Role).Inc()
	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")

	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login never reveals whether the email exists: unknown email and wrong
// password both fail with domain.ErrInvalidCredentials. The role-mismatch
// case is the single deliberate exception.
func (s *AuthService) Login(ctx context.Context, email, password, role string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if role != "" && role != user.Role {
		metrics.LoginsTotal.WithLabelValues("role_mismatch").Inc()
		return nil, &domain.RoleMismatchError{Requested: role}
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{User: user, Token: token}, nil
}

// DemoLogin authenticates as the seeded demo account for the role without
// a password check. Fails with domain.ErrUserNotFound when the seed is
// absent from the store.
func (s *AuthService) DemoLogin(ctx context.Context, role string) (*ports.AuthResult, error) {
	var email string
	switch role {
	case domain.RoleOwner:
		email = s.demo.OwnerEmail
	case domain.RoleBuilder:
		email = s.demo.BuilderEmail
	default:
		return nil, domain.Validationf("role must be owner or builder")
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile changes username and email only; password and role are
// immutable through this path.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, username, email string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	if err := s.validateProfile(username, email); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateProfile(ctx, userID, username, email)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return updated, nil
}

func (s *AuthService) validateProfile(username, email string) error {
	if username == "" || email == "" {
		return domain.Validationf("missing required fields")
	}
	if len(username) < minUsernameLen {
		return domain.Validationf("username must be at least %d characters", minUsernameLen)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return domain.Validationf("invalid email address")
	}
	return nil
}

// issueToken mints an HS256 bearer token embedding {id, role} with the
// configured TTL.
func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

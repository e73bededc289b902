package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/casaline/listing-portal/internal/core/domain"
	"github.com/casaline/listing-portal/internal/core/ports"
)

// AuthService implements registration, login, and session invalidation.
type AuthService struct {
	users     ports.UserRepository
	profiles  ports.ProfileRepository
	cache     EntitlementCache
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	profiles ports.ProfileRepository,
	cache EntitlementCache,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		profiles:  profiles,
		cache:     cache,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates an agent identity and its pending-approval profile.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAgent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Create(ctx, domain.NewAgentProfile(created.ID, now)); err != nil {
		// An identity without a profile is unusable; undo the user insert so
		// the agent can register again.
		if delErr := s.users.Delete(ctx, created.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", created.ID).Msg("orphaned user after profile create failure")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", email).Msg("agent registered, awaiting approval")
	return created, nil
}

// Login verifies credentials and returns a signed JWT with the user's role
// and current account status baked into the claims.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	status, err := s.statusFor(ctx, user)
	if err != nil {
		return "", nil, err
	}

	// Warm the entitlement cache for this session.
	if err := s.cache.Set(ctx, user.ID, user.Role, status); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("entitlement cache warm failed")
	}

	token, err := s.generateToken(user, status)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Logout drops the cached entitlement so stale role/status can never outlive
// the session.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.cache.Invalidate(ctx, userID)
}

// EnsureAdministrator creates the bootstrap administrator when absent.
func (s *AuthService) EnsureAdministrator(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrIdentityNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.users.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdministrator,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("bootstrap administrator created")
	return nil
}

func (s *AuthService) statusFor(ctx context.Context, user *domain.User) (domain.AgentStatus, error) {
	if user.Role != domain.RoleAgent {
		return "", nil
	}
	profile, err := s.profiles.FindByUserID(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return profile.Status, nil
}

func (s *AuthService) generateToken(user *domain.User, status domain.AgentStatus) (string, error) {
	claims := jwt.MapClaims{
		"sub":    user.ID,
		"email":  user.Email,
		"role":   string(user.Role),
		"status": string(status),
		"exp":    time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

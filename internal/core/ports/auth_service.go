package ports

import (
	"context"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// AuthService implements signup, login, and session invalidation.
type AuthService interface {
	// Register creates an agent identity plus its profile in pending
	// approval. Administrators are never created through registration.
	Register(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials and returns a signed token carrying the
	// user id, role, and account status.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout invalidates the cached entitlement for the user.
	Logout(ctx context.Context, userID string) error
	// EnsureAdministrator creates the bootstrap administrator account when it
	// does not exist yet. Called once at startup.
	EnsureAdministrator(ctx context.Context, email, password string) error
}

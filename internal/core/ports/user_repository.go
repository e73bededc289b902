package ports

import (
	"context"

	"github.com/casaline/listing-portal/internal/core/domain"
)

// UserRepository defines persistence operations for identity records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Delete removes the identity entirely. Used by signup rejection: the
	// identity ceases to exist in this system, there is no soft state.
	Delete(ctx context.Context, id string) error
}

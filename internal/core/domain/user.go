package domain

import "time"

// Role is the single role assigned to an identity, immutable after assignment.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleAgent         Role = "agent"
)

// User models an authenticated actor in the portal.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

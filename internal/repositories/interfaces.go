package repositories

import (
	"context"

	"plantcare-advisor-api/internal/models"
)

// UserRepository looks up user profiles by identifier
type UserRepository interface {
	// GetUser performs a single point lookup. It returns an error wrapping
	// ErrNotFound when no profile exists and ErrUnavailable on transport
	// failures or timeouts.
	GetUser(ctx context.Context, userID string) (*models.UserProfile, error)
}

// PlantRepository looks up plant definitions by key
type PlantRepository interface {
	// GetPlants resolves the given plant keys concurrently, preserving key
	// order in the result. Individual missing or failing keys are skipped;
	// the stage only fails when a non-empty key list yields zero
	// definitions (ErrNotFound, or ErrUnavailable when every lookup failed
	// with a transport error).
	GetPlants(ctx context.Context, plantIDs []string) ([]*models.PlantDefinition, error)
}

package services

import (
	"context"
	"errors"

	"plantcare-advisor-api/internal/models"
)

// Common service errors
var (
	// ErrUnavailable is returned when an external service times out or
	// fails transiently; callers may retry
	ErrUnavailable = errors.New("external service unavailable")

	// ErrMalformedResponse is returned when an external service answers
	// with a payload that cannot be used
	ErrMalformedResponse = errors.New("malformed service response")
)

// WeatherService fetches current conditions for a coordinate pair
type WeatherService interface {
	// Fetch returns a snapshot of current conditions. Fields the provider
	// did not report are left unset rather than failing the call.
	Fetch(ctx context.Context, latitude, longitude string) (*models.WeatherSnapshot, error)
}

// AdvisorService turns a profile, its plants and a weather snapshot into
// personalized plant-care advice
type AdvisorService interface {
	// Generate builds the advisory prompt, invokes the language model and
	// parses its output. The weather snapshot may be empty; the generator
	// then notes the absence of weather data instead of fabricating it.
	Generate(ctx context.Context, profile *models.UserProfile, plants []*models.PlantDefinition, weather *models.WeatherSnapshot) (*models.AdviceResult, error)
}

// Package agent sequences the advisory pipeline: validate the identifier,
// fetch the user profile, resolve plants and weather in parallel, generate
// advice. Any stage failure other than the weather fetch short-circuits the
// pipeline with a typed error; weather failures degrade instead.
package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"plantcare-advisor-api/internal/models"
	"plantcare-advisor-api/internal/repositories"
	"plantcare-advisor-api/internal/services"
)

// Agent coordinates the long-lived external clients for one request at a
// time. The handles are created once at cold start and are safe for
// concurrent use across warm invocations.
type Agent struct {
	users    repositories.UserRepository
	plants   repositories.PlantRepository
	weather  services.WeatherService
	advisor  services.AdvisorService
	deadline time.Duration
	logger   *logrus.Logger
}

// Result is the successful outcome of one pipeline run
type Result struct {
	UserID  string
	Advice  *models.AdviceResult
	Weather *models.WeatherSnapshot
}

// New creates a new advisory agent
func New(users repositories.UserRepository, plants repositories.PlantRepository, weather services.WeatherService, advisor services.AdvisorService, deadline time.Duration, logger *logrus.Logger) *Agent {
	return &Agent{
		users:    users,
		plants:   plants,
		weather:  weather,
		advisor:  advisor,
		deadline: deadline,
		logger:   logger,
	}
}

// Advise runs the full pipeline for a normalized request context. Every
// returned error is a *models.APIError; the catch-all converts anything
// unclassified, panics included, into an internal error with full detail
// logged and a generic message exposed.
func (a *Agent) Advise(ctx context.Context, reqCtx models.RequestContext) (result *Result, err error) {
	log := a.logger.WithFields(logrus.Fields{
		"request_id": reqCtx.RequestID,
		"source":     reqCtx.Source,
	})

	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Pipeline panic recovered")
			result = nil
			err = models.Internal(fmt.Errorf("panic: %v", r))
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, a.deadline)
	defer cancel()

	userID, verr := models.ValidateUserID(reqCtx.RawUserID)
	if verr != nil {
		log.WithField("error", verr.Error()).Info("Identifier validation failed")
		return nil, models.BadRequest(verr.Error())
	}
	log = log.WithField("user_id", userID)

	profile, err := a.users.GetUser(ctx, userID)
	if err != nil {
		return nil, a.mapUserError(log, userID, err)
	}

	if len(profile.Plants) == 0 {
		log.Info("Profile has no registered plants")
		return nil, models.NotFound(fmt.Sprintf("No plants registered for user_id: %s", userID))
	}

	// Plant fan-out and the weather fetch are independent; run them in
	// parallel and join before prompt construction
	var plants []*models.PlantDefinition
	weather := &models.WeatherSnapshot{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resolved, err := a.plants.GetPlants(gctx, profile.Plants)
		if err != nil {
			return a.mapPlantError(log, userID, err)
		}
		plants = resolved
		return nil
	})
	g.Go(func() error {
		if !profile.HasLocation() {
			log.Warn("Profile has no coordinates, skipping weather lookup")
			return nil
		}
		snapshot, err := a.weather.Fetch(gctx, profile.Latitude, profile.Longitude)
		if err != nil {
			// Degraded, not fatal: the generator is told weather data is
			// absent and must not fabricate it
			log.WithField("error", err.Error()).Warn("Weather unavailable, proceeding without it")
			return nil
		}
		weather = snapshot
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	advice, err := a.advisor.Generate(ctx, profile, plants, weather)
	if err != nil {
		return nil, a.mapModelError(log, err)
	}

	log.WithFields(logrus.Fields{
		"plant_count": len(plants),
		"has_weather": weather.HasData(),
	}).Info("Advice pipeline completed")

	return &Result{UserID: userID, Advice: advice, Weather: weather}, nil
}

// mapUserError converts user repository failures into the external taxonomy
func (a *Agent) mapUserError(log *logrus.Entry, userID string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return models.NotFound(fmt.Sprintf("User not found: no profile for user_id %s", userID))
	case errors.Is(err, repositories.ErrUnavailable), errors.Is(err, repositories.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded):
		log.WithField("error", err.Error()).Error("User store unavailable")
		return models.ServiceUnavailable("Database temporarily unavailable.", err)
	default:
		log.WithField("error", err.Error()).Error("Unexpected user store failure")
		return models.Internal(err)
	}
}

// mapPlantError converts plant repository failures into the external taxonomy
func (a *Agent) mapPlantError(log *logrus.Entry, userID string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return models.NotFound(fmt.Sprintf("No plant definitions found for user_id: %s", userID))
	case errors.Is(err, repositories.ErrUnavailable), errors.Is(err, repositories.ErrTimeout),
		errors.Is(err, context.DeadlineExceeded):
		log.WithField("error", err.Error()).Error("Plant store unavailable")
		return models.ServiceUnavailable("Database temporarily unavailable.", err)
	default:
		log.WithField("error", err.Error()).Error("Unexpected plant store failure")
		return models.Internal(err)
	}
}

// mapModelError converts advisory generation failures into the external
// taxonomy; every model-invocation failure is retryable from the caller's
// point of view
func (a *Agent) mapModelError(log *logrus.Entry, err error) error {
	log.WithField("error", err.Error()).Error("Advice generation failed")
	if errors.Is(err, services.ErrUnavailable) || errors.Is(err, services.ErrMalformedResponse) ||
		errors.Is(err, context.DeadlineExceeded) {
		return models.ServiceUnavailable("AI service temporarily unavailable.", err)
	}
	return models.Internal(err)
}

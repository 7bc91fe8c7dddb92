package agent

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"plantcare-advisor-api/internal/models"
	"plantcare-advisor-api/internal/repositories"
	"plantcare-advisor-api/internal/services"
)

type fakeUserRepo struct {
	calls    int
	profiles map[string]*models.UserProfile
	err      error
}

func (f *fakeUserRepo) GetUser(ctx context.Context, userID string) (*models.UserProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, repositories.NotFoundError("user", userID)
	}
	return profile, nil
}

type fakePlantRepo struct {
	calls  int
	plants map[string]*models.PlantDefinition
	err    error
}

func (f *fakePlantRepo) GetPlants(ctx context.Context, plantIDs []string) ([]*models.PlantDefinition, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var resolved []*models.PlantDefinition
	for _, id := range plantIDs {
		if plant, ok := f.plants[id]; ok {
			resolved = append(resolved, plant)
		}
	}
	if len(resolved) == 0 && len(plantIDs) > 0 {
		return nil, repositories.NotFoundError("plant", "none")
	}
	return resolved, nil
}

type fakeWeather struct {
	calls    int
	snapshot *models.WeatherSnapshot
	err      error
}

func (f *fakeWeather) Fetch(ctx context.Context, latitude, longitude string) (*models.WeatherSnapshot, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

type fakeAdvisor struct {
	calls       int
	gotPlants   []*models.PlantDefinition
	gotWeather  *models.WeatherSnapshot
	result      *models.AdviceResult
	err         error
	shouldPanic bool
}

func (f *fakeAdvisor) Generate(ctx context.Context, profile *models.UserProfile, plants []*models.PlantDefinition, weather *models.WeatherSnapshot) (*models.AdviceResult, error) {
	f.calls++
	f.gotPlants = plants
	f.gotWeather = weather
	if f.shouldPanic {
		panic("model client corrupted")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fixture struct {
	users   *fakeUserRepo
	plants  *fakePlantRepo
	weather *fakeWeather
	advisor *fakeAdvisor
	agent   *Agent
}

func float(v float64) *float64 { return &v }

func newFixture() *fixture {
	users := &fakeUserRepo{profiles: map[string]*models.UserProfile{
		"test_user": {
			UserID:    "test_user",
			Latitude:  "51.50",
			Longitude: "-0.12",
			Plants:    []string{"rose", "grapevine"},
		},
	}}
	plants := &fakePlantRepo{plants: map[string]*models.PlantDefinition{
		"rose":      {PlantID: "rose", CommonName: "Rose"},
		"grapevine": {PlantID: "grapevine", CommonName: "Grapevine"},
	}}
	weather := &fakeWeather{snapshot: &models.WeatherSnapshot{
		Temperature: float(22),
		Humidity:    float(65),
		Condition:   "partly_cloudy",
	}}
	advisor := &fakeAdvisor{result: &models.AdviceResult{
		CombinedAdvice: "All good.",
		Details:        map[string]string{"Rose": "Fine.", "Grapevine": "Fine."},
	}}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &fixture{
		users:   users,
		plants:  plants,
		weather: weather,
		advisor: advisor,
		agent:   New(users, plants, weather, advisor, 5*time.Second, logger),
	}
}

func reqCtx(rawUserID string) models.RequestContext {
	return models.RequestContext{
		Source:     models.SourceDirect,
		RawUserID:  rawUserID,
		RequestID:  "req-1",
		ReceivedAt: time.Now().UTC(),
	}
}

func TestAdviseHappyPath(t *testing.T) {
	f := newFixture()

	result, err := f.agent.Advise(context.Background(), reqCtx("test_user"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.UserID != "test_user" {
		t.Errorf("user_id = %q", result.UserID)
	}
	if result.Advice.CombinedAdvice != "All good." {
		t.Errorf("advice = %q", result.Advice.CombinedAdvice)
	}
	if !result.Weather.HasData() {
		t.Error("weather snapshot should carry data")
	}
	if f.users.calls != 1 || f.plants.calls != 1 || f.weather.calls != 1 || f.advisor.calls != 1 {
		t.Errorf("call counts = users %d plants %d weather %d advisor %d, want 1 each",
			f.users.calls, f.plants.calls, f.weather.calls, f.advisor.calls)
	}
}

func TestAdviseInvalidIdentifierShortCircuits(t *testing.T) {
	tests := []struct {
		name  string
		rawID string
	}{
		{"invalid characters", "!!!"},
		{"empty", ""},
		{"too long", strings.Repeat("a", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.agent.Advise(context.Background(), reqCtx(tt.rawID))
			apiErr := models.AsAPIError(err)
			if apiErr.Kind != models.KindBadRequest {
				t.Fatalf("kind = %s, want bad request", apiErr.Kind)
			}

			if f.users.calls+f.plants.calls+f.weather.calls+f.advisor.calls != 0 {
				t.Errorf("no collaborator may be called for an invalid identifier, got users %d plants %d weather %d advisor %d",
					f.users.calls, f.plants.calls, f.weather.calls, f.advisor.calls)
			}
		})
	}
}

func TestAdviseUserNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.agent.Advise(context.Background(), reqCtx("ghost_user"))
	apiErr := models.AsAPIError(err)
	if apiErr.Kind != models.KindNotFound {
		t.Fatalf("kind = %s, want not found", apiErr.Kind)
	}

	if f.weather.calls != 0 || f.advisor.calls != 0 {
		t.Errorf("weather/model must not be called for a missing user, got weather %d advisor %d",
			f.weather.calls, f.advisor.calls)
	}
}

func TestAdviseUserStoreUnavailable(t *testing.T) {
	f := newFixture()
	f.users.err = repositories.UnavailableError("get", "user", "test_user", errors.New("conn refused"))

	_, err := f.agent.Advise(context.Background(), reqCtx("test_user"))
	apiErr := models.AsAPIError(err)
	if apiErr.Kind != models.KindServiceUnavailable {
		t.Fatalf("kind = %s, want service unavailable", apiErr.Kind)
	}
	if apiErr.StatusCode() != 503 {
		t.Errorf("status = %d, want 503", apiErr.StatusCode())
	}
}

func TestAdviseNoPlantsRegistered(t *testing.T) {
	f := newFixture()
	f.users.profiles["bare_user"] = &models.UserProfile{
		UserID: "bare_user", Latitude: "1", Longitude: "2",
	}

	_, err := f.agent.Advise(context.Background(), reqCtx("bare_user"))
	apiErr := models.AsAPIError(err)
	if apiErr.Kind != models.KindNotFound {
		t.Fatalf("kind = %s, want not found", apiErr.Kind)
	}
	if f.advisor.calls != 0 {
		t.Error("model must not be called when no plants are registered")
	}
}

func TestAdviseNoPlantsResolve(t *testing.T) {
	f := newFixture()
	f.plants.plants = map[string]*models.PlantDefinition{}

	_, err := f.agent.Advise(context.Background(), reqCtx("test_user"))
	apiErr := models.AsAPIError(err)
	if apiErr.Kind != models.KindNotFound {
		t.Fatalf("kind = %s, want not found", apiErr.Kind)
	}
	if f.advisor.calls != 0 {
		t.Error("model must not be called when zero plants resolve")
	}
}

func TestAdvisePartialPlantsProceed(t *testing.T) {
	f := newFixture()
	delete(f.plants.plants, "grapevine")

	if _, err := f.agent.Advise(context.Background(), reqCtx("test_user")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.advisor.gotPlants) != 1 || f.advisor.gotPlants[0].CommonName != "Rose" {
		t.Errorf("advisor received %v, want only the resolved plant", f.advisor.gotPlants)
	}
}

func TestAdviseWeatherFailureDegrades(t *testing.T) {
	f := newFixture()
	f.weather.err = services.ErrUnavailable

	result, err := f.agent.Advise(context.Background(), reqCtx("test_user"))
	if err != nil {
		t.Fatalf("weather failure must not fail the request: %v", err)
	}

	if result.Weather.HasData() {
		t.Error("degraded request should carry an empty weather snapshot")
	}
	if f.advisor.gotWeather == nil || f.advisor.gotWeather.HasData() {
		t.Error("advisor must see the empty snapshot, not fabricated data")
	}
	if f.advisor.calls != 1 {
		t.Errorf("advisor calls = %d, pipeline should proceed", f.advisor.calls)
	}
}

func TestAdviseMissingCoordinatesSkipsWeather(t *testing.T) {
	f := newFixture()
	f.users.profiles["test_user"].Latitude = ""
	f.users.profiles["test_user"].Longitude = ""

	result, err := f.agent.Advise(context.Background(), reqCtx("test_user"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.weather.calls != 0 {
		t.Errorf("weather calls = %d, want none without coordinates", f.weather.calls)
	}
	if result.Weather.HasData() {
		t.Error("weather snapshot should be empty")
	}
}

func TestAdviseModelFailure(t *testing.T) {
	f := newFixture()
	f.advisor.err = services.ErrUnavailable

	_, err := f.agent.Advise(context.Background(), reqCtx("test_user"))
	apiErr := models.AsAPIError(err)
	if apiErr.Kind != models.KindServiceUnavailable {
		t.Fatalf("kind = %s, want service unavailable", apiErr.Kind)
	}
}

func TestAdviseRecoversFromPanic(t *testing.T) {
	f := newFixture()
	f.advisor.shouldPanic = true

	_, err := f.agent.Advise(context.Background(), reqCtx("test_user"))
	apiErr := models.AsAPIError(err)
	if apiErr.Kind != models.KindInternal {
		t.Fatalf("kind = %s, want internal", apiErr.Kind)
	}
	if apiErr.StatusCode() != 500 {
		t.Errorf("status = %d, want 500", apiErr.StatusCode())
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"plantcare-advisor-api/internal/models"
)

// OpenMeteoService implements WeatherService against the Open-Meteo
// forecast API
type OpenMeteoService struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	logger  *logrus.Logger
}

// NewOpenMeteoService creates a new Open-Meteo weather service. The client
// is long-lived and safe for concurrent use; the timeout is the per-call
// budget, which must stay under the remaining request deadline.
func NewOpenMeteoService(baseURL string, timeout time.Duration, logger *logrus.Logger) *OpenMeteoService {
	return &OpenMeteoService{
		baseURL: baseURL,
		client:  &http.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

// openMeteoResponse is the subset of the provider payload this service reads
type openMeteoResponse struct {
	Current struct {
		Temperature2m      *float64 `json:"temperature_2m"`
		RelativeHumidity2m *float64 `json:"relative_humidity_2m"`
		WindSpeed10m       *float64 `json:"wind_speed_10m"`
		WeatherCode        *int     `json:"weather_code"`
	} `json:"current"`
}

// Fetch retrieves current conditions for the given coordinates
func (s *OpenMeteoService) Fetch(ctx context.Context, latitude, longitude string) (*models.WeatherSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("latitude", latitude)
	params.Set("longitude", longitude)
	params.Set("current", "temperature_2m,relative_humidity_2m,wind_speed_10m,weather_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"latitude":  latitude,
			"longitude": longitude,
			"error":     err.Error(),
		}).Error("Weather fetch failed")
		return nil, fmt.Errorf("%w: weather fetch: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: weather provider returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode weather payload: %v", ErrMalformedResponse, err)
	}

	// Unrecognized or missing fields are omitted from the snapshot rather
	// than failing the whole call
	snapshot := &models.WeatherSnapshot{
		Temperature: payload.Current.Temperature2m,
		Humidity:    payload.Current.RelativeHumidity2m,
		WindSpeed:   payload.Current.WindSpeed10m,
	}
	if payload.Current.WeatherCode != nil {
		snapshot.Condition = conditionFromCode(*payload.Current.WeatherCode)
	}

	s.logger.WithFields(logrus.Fields{
		"latitude":  latitude,
		"longitude": longitude,
		"condition": snapshot.Condition,
	}).Debug("Weather snapshot resolved")

	return snapshot, nil
}

// conditionFromCode maps WMO weather interpretation codes to the condition
// strings the response contract exposes
func conditionFromCode(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code == 1 || code == 2:
		return "partly_cloudy"
	case code == 3:
		return "overcast"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 67:
		return "rainy"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rainy"
	case code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "thunderstorm"
	default:
		return ""
	}
}

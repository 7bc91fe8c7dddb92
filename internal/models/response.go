package models

// SuccessResponse is the external success contract. WeatherConditions is
// present only when at least one measurement was obtained.
type SuccessResponse struct {
	StatusCode        int               `json:"statusCode"`
	Advice            string            `json:"advice"`
	Details           map[string]string `json:"details"`
	Timestamp         string            `json:"timestamp"`
	UserID            string            `json:"user_id"`
	RequestID         string            `json:"request_id"`
	WeatherConditions *WeatherSnapshot  `json:"weather_conditions,omitempty"`
}

// ErrorResponse is the external error contract. RequestID and Timestamp are
// always set so responses can be correlated with logs.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	RequestID  string `json:"request_id"`
	Timestamp  string `json:"timestamp"`
	UserID     string `json:"user_id,omitempty"`
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"plantcare-advisor-api/internal/agent"
	"plantcare-advisor-api/internal/models"
)

// corsHeaders returns the headers attached to every gateway response
func corsHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Amz-Security-Token",
		"Access-Control-Allow-Methods": "POST,OPTIONS",
	}
}

// formatTimestamp renders an ISO-8601 UTC timestamp with a Z suffix
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// SuccessPayload renders the success contract, stamping the timestamp at
// formatting time. weather_conditions is attached only when at least one
// measurement was obtained.
func SuccessPayload(reqCtx models.RequestContext, result *agent.Result) models.SuccessResponse {
	details := result.Advice.Details
	if details == nil {
		details = map[string]string{}
	}

	response := models.SuccessResponse{
		StatusCode: http.StatusOK,
		Advice:     result.Advice.CombinedAdvice,
		Details:    details,
		Timestamp:  formatTimestamp(time.Now()),
		UserID:     result.UserID,
		RequestID:  reqCtx.RequestID,
	}
	if result.Weather.HasData() {
		response.WeatherConditions = result.Weather
	}
	return response
}

// ErrorPayload renders the error contract for a typed pipeline failure
func ErrorPayload(reqCtx models.RequestContext, apiErr *models.APIError) models.ErrorResponse {
	return models.ErrorResponse{
		StatusCode: apiErr.StatusCode(),
		Error:      string(apiErr.Kind),
		Message:    apiErr.Message,
		RequestID:  reqCtx.RequestID,
		Timestamp:  formatTimestamp(time.Now()),
		UserID:     strings.TrimSpace(reqCtx.RawUserID),
	}
}

// GatewayResponse wraps a payload in the HTTP envelope with CORS headers
func GatewayResponse(statusCode int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		// The payload types are plain structs; this should not happen
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    corsHeaders(),
			Body:       `{"statusCode":500,"error":"Internal Server Error","message":"Failed to encode response."}`,
		}
	}
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    corsHeaders(),
		Body:       string(body),
	}
}

// PreflightResponse answers the CORS preflight without touching any backend
func PreflightResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    corsHeaders(),
		Body:       "{}",
	}
}

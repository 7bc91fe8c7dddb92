package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"plantcare-advisor-api/internal/models"
)

// promptUserIDRegex extracts an identifier from a legacy free-text prompt
// of the form "... user_id <value> ..."
var promptUserIDRegex = regexp.MustCompile(`user_id\s+([A-Za-z0-9_-]+)`)

// gatewayEnvelopeKeys are the fields whose joint presence marks an API
// Gateway proxy event
var gatewayEnvelopeKeys = []string{"httpMethod", "path", "headers", "body"}

// advicePayload is the request body shape for both invocation styles.
// Prompt is the backward-compatible free-text form.
type advicePayload struct {
	UserID string `json:"user_id"`
	Prompt string `json:"prompt"`
}

// Normalize detects the invocation shape of a raw Lambda payload, extracts
// the untrusted identifier and builds the immutable request context. It
// fails before any downstream call when no identifier can be determined.
func Normalize(payload []byte) (models.RequestContext, *models.APIError) {
	reqCtx := models.RequestContext{
		Source:     models.SourceDirect,
		RequestID:  uuid.New().String(),
		ReceivedAt: time.Now().UTC(),
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(payload, &probe); err != nil {
		return reqCtx, models.BadRequest("Invalid request format: payload is not a JSON object.")
	}

	if isGatewayEvent(probe) {
		return normalizeGateway(reqCtx, payload)
	}
	return normalizeDirect(reqCtx, payload)
}

// isGatewayEvent detects the API Gateway proxy envelope by the joint
// presence of its HTTP fields
func isGatewayEvent(probe map[string]json.RawMessage) bool {
	for _, key := range gatewayEnvelopeKeys {
		if _, ok := probe[key]; !ok {
			return false
		}
	}
	return true
}

// normalizeGateway handles the HTTP-proxied shape, including the CORS
// preflight verb which terminates the pipeline without any backend call
func normalizeGateway(reqCtx models.RequestContext, payload []byte) (models.RequestContext, *models.APIError) {
	reqCtx.Source = models.SourceGatewayProxy

	var event events.APIGatewayProxyRequest
	if err := json.Unmarshal(payload, &event); err != nil {
		return reqCtx, models.BadRequest("Invalid request format: malformed gateway event.")
	}

	if event.HTTPMethod == http.MethodOptions {
		reqCtx.Source = models.SourcePreflight
		return reqCtx, nil
	}

	if event.Body == "" {
		return reqCtx, models.BadRequest("no user_id could be determined")
	}

	var body advicePayload
	if err := json.Unmarshal([]byte(event.Body), &body); err != nil {
		return reqCtx, models.BadRequest("Invalid request format: invalid JSON in request body.")
	}

	rawID, ok := extractIdentifier(body)
	if !ok {
		return reqCtx, models.BadRequest("no user_id could be determined")
	}

	reqCtx.RawUserID = rawID
	return reqCtx, nil
}

// normalizeDirect handles the structured direct-invocation shape
func normalizeDirect(reqCtx models.RequestContext, payload []byte) (models.RequestContext, *models.APIError) {
	var body advicePayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return reqCtx, models.BadRequest("Invalid request format: payload is not a JSON object.")
	}

	rawID, ok := extractIdentifier(body)
	if !ok {
		return reqCtx, models.BadRequest("no user_id could be determined")
	}

	reqCtx.RawUserID = rawID
	return reqCtx, nil
}

// extractIdentifier applies the identifier priority order: an explicit
// user_id field first, then the legacy free-text prompt pattern
func extractIdentifier(body advicePayload) (string, bool) {
	if body.UserID != "" {
		return body.UserID, true
	}
	if body.Prompt != "" {
		if match := promptUserIDRegex.FindStringSubmatch(body.Prompt); match != nil {
			return match[1], true
		}
	}
	return "", false
}

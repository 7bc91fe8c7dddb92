package handlers

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"plantcare-advisor-api/internal/agent"
	"plantcare-advisor-api/internal/models"
)

// LambdaHandler is the single Lambda entry point for both invocation
// shapes. The invocation source is resolved once during normalization and
// drives only the response envelope from then on.
type LambdaHandler struct {
	agent  *agent.Agent
	logger *logrus.Logger
}

// NewLambdaHandler creates a new Lambda handler
func NewLambdaHandler(advisoryAgent *agent.Agent, logger *logrus.Logger) *LambdaHandler {
	return &LambdaHandler{
		agent:  advisoryAgent,
		logger: logger,
	}
}

// Handle processes one raw invocation payload. It always returns a payload
// and a nil error: every failure is mapped onto the external contract
// instead of failing the invocation itself.
func (h *LambdaHandler) Handle(ctx context.Context, payload json.RawMessage) (any, error) {
	reqCtx, apiErr := Normalize(payload)

	log := h.logger.WithFields(logrus.Fields{
		"request_id": reqCtx.RequestID,
		"source":     reqCtx.Source,
	})

	if apiErr != nil {
		log.WithField("error", apiErr.Error()).Info("Request rejected during normalization")
		return h.respondError(reqCtx, apiErr), nil
	}

	if reqCtx.Source == models.SourcePreflight {
		log.Debug("Answering CORS preflight")
		return PreflightResponse(), nil
	}

	log.Info("Processing advice request")

	result, err := h.agent.Advise(ctx, reqCtx)
	if err != nil {
		return h.respondError(reqCtx, models.AsAPIError(err)), nil
	}

	success := SuccessPayload(reqCtx, result)
	if reqCtx.IsGateway() {
		return GatewayResponse(success.StatusCode, success), nil
	}
	return success, nil
}

// respondError renders a typed failure in the envelope matching the
// invocation source. Full detail has already been logged by the pipeline;
// only the contract message leaves the process.
func (h *LambdaHandler) respondError(reqCtx models.RequestContext, apiErr *models.APIError) any {
	payload := ErrorPayload(reqCtx, apiErr)
	if reqCtx.IsGateway() {
		return GatewayResponse(payload.StatusCode, payload)
	}
	return payload
}

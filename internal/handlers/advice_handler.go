package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"plantcare-advisor-api/internal/agent"
	"plantcare-advisor-api/internal/models"
)

// AdviceHandler serves the advice endpoint in local server mode, running
// the same pipeline the Lambda entry point uses
type AdviceHandler struct {
	agent  *agent.Agent
	logger *logrus.Logger
}

// NewAdviceHandler creates a new advice handler
func NewAdviceHandler(advisoryAgent *agent.Agent, logger *logrus.Logger) *AdviceHandler {
	return &AdviceHandler{
		agent:  advisoryAgent,
		logger: logger,
	}
}

// GetAdvice handles POST /advice
func (h *AdviceHandler) GetAdvice(c *gin.Context) {
	reqCtx := models.RequestContext{
		Source:     models.SourceGatewayProxy,
		RequestID:  uuid.New().String(),
		ReceivedAt: time.Now().UTC(),
	}
	if headerID := c.GetHeader("X-Request-ID"); headerID != "" {
		reqCtx.RequestID = headerID
	}

	var body advicePayload
	if err := c.ShouldBindJSON(&body); err != nil {
		apiErr := models.BadRequest("Invalid request format: invalid JSON in request body.")
		c.JSON(apiErr.StatusCode(), ErrorPayload(reqCtx, apiErr))
		return
	}

	rawID, ok := extractIdentifier(body)
	if !ok {
		apiErr := models.BadRequest("no user_id could be determined")
		c.JSON(apiErr.StatusCode(), ErrorPayload(reqCtx, apiErr))
		return
	}
	reqCtx.RawUserID = rawID

	result, err := h.agent.Advise(c.Request.Context(), reqCtx)
	if err != nil {
		apiErr := models.AsAPIError(err)
		c.JSON(apiErr.StatusCode(), ErrorPayload(reqCtx, apiErr))
		return
	}

	c.JSON(http.StatusOK, SuccessPayload(reqCtx, result))
}

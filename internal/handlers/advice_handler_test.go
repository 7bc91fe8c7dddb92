package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"plantcare-advisor-api/internal/agent"
	"plantcare-advisor-api/internal/middleware"
	"plantcare-advisor-api/internal/models"
)

func newTestRouter(f *handlerFixture) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	adviceAgent := agent.New(f.users, f.plants, f.weather, f.advisor, 5*time.Second, logger)
	handler := NewAdviceHandler(adviceAgent, logger)
	router.POST("/advice", handler.GetAdvice)
	return router
}

func TestAdviceEndpointSuccess(t *testing.T) {
	f := newHandlerFixture()
	router := newTestRouter(f)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/advice", strings.NewReader(`{"user_id":"test_user"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("response must carry CORS headers")
	}

	var payload models.SuccessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if payload.Details["Rose"] == "" {
		t.Error("details missing Rose")
	}
}

func TestAdviceEndpointPreflight(t *testing.T) {
	f := newHandlerFixture()
	router := newTestRouter(f)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/advice", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("preflight must carry CORS headers")
	}
	if f.users.calls+f.plants.calls+f.weather.calls+f.advisor.calls != 0 {
		t.Error("preflight must not invoke any collaborator")
	}
}

func TestAdviceEndpointValidationFailure(t *testing.T) {
	f := newHandlerFixture()
	router := newTestRouter(f)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/advice", strings.NewReader(`{"user_id":"!!!"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}

	var payload models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if !strings.Contains(payload.Message, "invalid characters") {
		t.Errorf("message = %q, should cite invalid characters", payload.Message)
	}
}

func TestAdviceEndpointMissingIdentifier(t *testing.T) {
	f := newHandlerFixture()
	router := newTestRouter(f)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/advice", strings.NewReader(`{}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAdviceEndpointPropagatesRequestID(t *testing.T) {
	f := newHandlerFixture()
	router := newTestRouter(f)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/advice", strings.NewReader(`{"user_id":"test_user"}`))
	req.Header.Set("X-Request-ID", "trace-me-123")
	router.ServeHTTP(rec, req)

	var payload models.SuccessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if payload.RequestID != "trace-me-123" {
		t.Errorf("request_id = %q, want the caller-supplied id", payload.RequestID)
	}
}

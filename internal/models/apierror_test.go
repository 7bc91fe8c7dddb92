package models

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want int
	}{
		{"bad request", BadRequest("bad"), 400},
		{"not found", NotFound("missing"), 404},
		{"service unavailable", ServiceUnavailable("down.", nil), 503},
		{"internal", Internal(errors.New("boom")), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestServiceUnavailableIncludesRetryHint(t *testing.T) {
	err := ServiceUnavailable("Weather service temporarily unavailable.", nil)
	if !strings.Contains(err.Message, "try again later") {
		t.Errorf("503 message %q should carry a retry hint", err.Message)
	}
}

func TestInternalHidesDetail(t *testing.T) {
	cause := errors.New("credentials leaked in stack trace")
	err := Internal(cause)

	if strings.Contains(err.Message, "credentials") {
		t.Errorf("user-facing message %q must not expose internal detail", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped cause should remain reachable for logging")
	}
}

func TestAsAPIError(t *testing.T) {
	typed := NotFound("gone")
	if got := AsAPIError(fmt.Errorf("stage failed: %w", typed)); got != typed {
		t.Errorf("AsAPIError should unwrap to the typed error, got %v", got)
	}

	raw := errors.New("unclassified")
	got := AsAPIError(raw)
	if got.Kind != KindInternal {
		t.Errorf("unclassified error should map to internal, got %s", got.Kind)
	}
}

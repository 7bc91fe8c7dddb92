package models

import "time"

// InvocationSource identifies how the advisor was invoked. It is resolved
// once during request normalization and never re-inspected downstream.
type InvocationSource string

const (
	// SourceDirect is a direct Lambda invocation with a structured payload
	SourceDirect InvocationSource = "direct"

	// SourceGatewayProxy is an HTTP request proxied through API Gateway
	SourceGatewayProxy InvocationSource = "gateway_proxy"

	// SourcePreflight is a CORS preflight request; it terminates the
	// pipeline before any backend call is made
	SourcePreflight InvocationSource = "preflight"
)

// RequestContext carries per-invocation metadata through the pipeline.
// It is immutable after normalization.
type RequestContext struct {
	Source     InvocationSource
	RawUserID  string
	RequestID  string
	ReceivedAt time.Time
}

// IsGateway reports whether the response must be wrapped in an HTTP
// envelope with CORS headers
func (rc RequestContext) IsGateway() bool {
	return rc.Source == SourceGatewayProxy || rc.Source == SourcePreflight
}

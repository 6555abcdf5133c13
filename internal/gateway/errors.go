package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ErrorKind classifies a gateway failure by cause.
type ErrorKind string

const (
	KindIndexNotFound     ErrorKind = "index_not_found"
	KindMalformedQuery    ErrorKind = "malformed_query"
	KindTimeout           ErrorKind = "timeout"
	KindConnectionRefused ErrorKind = "connection_refused"
	KindUnknown           ErrorKind = "unknown"
)

// GatewayError is a classified engine failure. Message and Cause carry the
// engine detail for logging; callers expose SafeMessage instead.
type GatewayError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search gateway: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("search gateway: %s: %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// SafeMessage returns a caller-facing description that does not leak engine
// internals (index names, query DSL, cluster errors).
func (e *GatewayError) SafeMessage() string {
	if e.Kind == KindTimeout {
		return "search request timed out, please try again"
	}
	return "search is temporarily unavailable, please try again"
}

// ClassifyTransport classifies a transport-level client error (the request
// never produced an engine response).
func ClassifyTransport(err error) *GatewayError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &GatewayError{Kind: KindTimeout, Message: "request deadline exceeded", Cause: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &GatewayError{Kind: KindTimeout, Message: "network timeout", Cause: err}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &GatewayError{Kind: KindConnectionRefused, Message: "connection refused", Cause: err}
	default:
		return &GatewayError{Kind: KindUnknown, Message: "transport failure", Cause: err}
	}
}

// ClassifyEngine classifies an error response returned by the engine itself,
// based on the engine error type and HTTP status.
func ClassifyEngine(errType, reason string, status int) *GatewayError {
	msg := errType
	if reason != "" {
		msg = fmt.Sprintf("%s: %s", errType, reason)
	}

	switch {
	case errType == "index_not_found_exception" || status == 404:
		return &GatewayError{Kind: KindIndexNotFound, Message: msg}
	case errType == "parsing_exception",
		errType == "x_content_parse_exception",
		errType == "illegal_argument_exception",
		errType == "search_phase_execution_exception",
		status == 400:
		return &GatewayError{Kind: KindMalformedQuery, Message: msg}
	case errType == "timeout_exception" || status == 408 || status == 504:
		return &GatewayError{Kind: KindTimeout, Message: msg}
	default:
		return &GatewayError{Kind: KindUnknown, Message: msg}
	}
}

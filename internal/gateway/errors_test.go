package gateway

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeNetError struct{ timeout bool }

func (e *fakeNetError) Error() string   { return "fake net error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestClassifyTransport_DeadlineExceeded(t *testing.T) {
	err := ClassifyTransport(fmt.Errorf("search: %w", context.DeadlineExceeded))
	assert.Equal(t, KindTimeout, err.Kind)
}

func TestClassifyTransport_NetTimeout(t *testing.T) {
	err := ClassifyTransport(&fakeNetError{timeout: true})
	assert.Equal(t, KindTimeout, err.Kind)
}

func TestClassifyTransport_ConnectionRefused(t *testing.T) {
	err := ClassifyTransport(fmt.Errorf("dial: %w", syscall.ECONNREFUSED))
	assert.Equal(t, KindConnectionRefused, err.Kind)
}

func TestClassifyTransport_Unknown(t *testing.T) {
	err := ClassifyTransport(errors.New("something else"))
	assert.Equal(t, KindUnknown, err.Kind)
}

func TestClassifyEngine_IndexNotFound(t *testing.T) {
	err := ClassifyEngine("index_not_found_exception", "no such index", 404)
	assert.Equal(t, KindIndexNotFound, err.Kind)
	assert.Contains(t, err.Message, "no such index")
}

func TestClassifyEngine_MalformedQuery(t *testing.T) {
	for _, errType := range []string{
		"parsing_exception",
		"x_content_parse_exception",
		"illegal_argument_exception",
		"search_phase_execution_exception",
	} {
		err := ClassifyEngine(errType, "bad query", 400)
		assert.Equal(t, KindMalformedQuery, err.Kind, errType)
	}
}

func TestClassifyEngine_TimeoutByStatus(t *testing.T) {
	assert.Equal(t, KindTimeout, ClassifyEngine("", "", 504).Kind)
	assert.Equal(t, KindTimeout, ClassifyEngine("timeout_exception", "", 500).Kind)
}

func TestClassifyEngine_UnknownByDefault(t *testing.T) {
	assert.Equal(t, KindUnknown, ClassifyEngine("circuit_breaking_exception", "too much memory", 500).Kind)
}

func TestGatewayError_SafeMessageHidesDetail(t *testing.T) {
	err := &GatewayError{Kind: KindIndexNotFound, Message: "no such index [wheelsup-schools]"}

	assert.NotContains(t, err.SafeMessage(), "wheelsup-schools")
	assert.Equal(t, "search is temporarily unavailable, please try again", err.SafeMessage())
}

func TestGatewayError_SafeMessageTimeout(t *testing.T) {
	err := &GatewayError{Kind: KindTimeout, Message: "deadline exceeded"}
	assert.Equal(t, "search request timed out, please try again", err.SafeMessage())
}

func TestGatewayError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &GatewayError{Kind: KindUnknown, Message: "wrapped", Cause: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}

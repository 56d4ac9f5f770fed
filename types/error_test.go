// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := NewError(ErrTypeMismatch, "age should be integer")
	assert.Equal(t, "[TYPE_MISMATCH] age should be integer", err.Error())

	cause := errors.New("strconv: invalid syntax")
	err = err.WithCause(cause)
	assert.Equal(t, "[TYPE_MISMATCH] age should be integer: strconv: invalid syntax", err.Error())
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestError_Chaining(t *testing.T) {
	err := NewError(ErrUpstreamError, "server said no").
		WithHTTPStatus(503).
		WithRetryable(true).
		WithService("pirates")

	assert.Equal(t, ErrUpstreamError, err.Code)
	assert.Equal(t, 503, err.HTTPStatus)
	assert.True(t, err.Retryable)
	assert.Equal(t, "pirates", err.Service)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewError(ErrTransportFailure, "connection reset").WithRetryable(true)))
	assert.False(t, IsRetryable(NewError(ErrMissingParameter, "name is required")))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrFetch, GetErrorCode(NewError(ErrFetch, "boom")))
	assert.Equal(t, ErrorCode(""), GetErrorCode(errors.New("plain")))
	// Wrapping hides the code; callers that need it keep the typed error on top.
	assert.Equal(t, ErrorCode(""), GetErrorCode(fmt.Errorf("wrapped: %w", NewError(ErrFetch, "boom"))))
}

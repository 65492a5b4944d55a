package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	inner := errors.New("month out of range")
	err := &ParseError{Component: "aggregator", Field: "date", Value: "2024-13-01", Err: inner}

	assert.Equal(t, "aggregator: failed to parse date='2024-13-01': month out of range", err.Error())
	assert.True(t, errors.Is(err, inner))
}

func TestStoreError(t *testing.T) {
	err := fmt.Errorf("create: %w", &StoreError{Op: "create", Err: ErrNotFound})

	var se *StoreError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, "create", se.Op)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(fmt.Errorf("wrap: %w", &ValidationError{Field: "amount", Reason: "must be positive"})))
	assert.False(t, IsValidation(errors.New("other")))
}

func TestUnsupportedError(t *testing.T) {
	assert.Equal(t, "speech recognition is not supported in this environment", ErrCaptureUnsupported.Error())
}

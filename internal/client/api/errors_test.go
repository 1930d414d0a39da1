package api

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_KnownStatuses(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{401, KindAuthentication},
		{403, KindAuthorization},
		{404, KindNotFound},
		{422, KindValidation},
		{429, KindRateLimit},
		{500, KindServer},
		{502, KindServer},
		{503, KindServer},
		{504, KindServer},
		{400, KindGeneric},
		{409, KindGeneric},
		{418, KindGeneric},
		// Only the gateway/unavailable family is retryable-server; other
		// 5xx codes stay generic.
		{501, KindGeneric},
		{505, KindGeneric},
		{599, KindGeneric},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.status), func(t *testing.T) {
			e := Classify(tt.status, "boom", "", nil)
			assert.Equal(t, tt.want, e.Kind)
			assert.Equal(t, tt.status, e.Status)
			assert.Equal(t, "boom", e.Message)
		})
	}
}

func TestClassify_Total(t *testing.T) {
	// Any integer, even outside the HTTP range, yields exactly one variant.
	for status := -1; status <= 700; status++ {
		e := Classify(status, "m", "c", nil)
		require.NotNil(t, e)
		require.NotEmpty(t, e.Kind)
	}
}

func TestClassify_ValidationDetails(t *testing.T) {
	details := map[string][]string{"email": {"already taken", "too long"}}
	e := Classify(422, "validation failed", "", details)

	assert.Equal(t, KindValidation, e.Kind)
	assert.Equal(t, "already taken", e.FieldError("email"))
	assert.Equal(t, "", e.FieldError("name"))
	assert.Equal(t, details, e.AllFieldErrors())
}

func TestClassify_DetailsOnlyOnValidation(t *testing.T) {
	e := Classify(500, "oops", "", map[string][]string{"x": {"y"}})
	assert.Nil(t, e.Details)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "not_found: no such participant",
		Classify(404, "no such participant", "", nil).Error())
	assert.Equal(t, "generic (conflict): duplicate",
		Classify(409, "duplicate", "conflict", nil).Error())
}

func TestNetworkError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	e := &NetworkError{Err: inner}

	assert.ErrorIs(t, e, inner)
	assert.Contains(t, e.Error(), "connection refused")
}

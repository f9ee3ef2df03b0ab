package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusConflict},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), string(tt.code))
	}
}

func TestErrorIs_MatchesByCode(t *testing.T) {
	err := NotFoundf("book %s not found", "42")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, CodeInternal, "persist overrides")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "persist overrides")
	assert.Contains(t, err.Error(), "disk full")
}

func TestWithDetails_DoesNotMutateOriginal(t *testing.T) {
	base := Validation("validation failed")
	detailed := base.WithDetails(map[string]string{"sort_key": "is invalid"})

	require.Nil(t, base.Details)
	assert.NotNil(t, detailed.Details)
	assert.Equal(t, base.Code, detailed.Code)
}

func TestWrapf_Formats(t *testing.T) {
	err := Wrapf(fmt.Errorf("timeout"), CodeUnavailable, "fetch catalog from %s", "https://example.org")
	assert.Contains(t, err.Error(), "https://example.org")
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus())
}

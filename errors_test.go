package sharepoint

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "full detail",
			err: &APIError{
				Method:     http.MethodPost,
				Endpoint:   "lists",
				StatusCode: http.StatusForbidden,
				Code:       "-2147024891",
				Message:    "Access denied.",
			},
			want: "POST lists failed: status 403, code -2147024891: Access denied.",
		},
		{
			name: "no remote code",
			err: &APIError{
				Method:     http.MethodGet,
				Endpoint:   "webs",
				StatusCode: http.StatusBadGateway,
				Message:    "request failed: 502 - upstream unavailable",
			},
			want: "GET webs failed: status 502: request failed: 502 - upstream unavailable",
		},
		{
			name: "transport failure without a response",
			err: &APIError{
				Method:   http.MethodGet,
				Endpoint: "webs",
				Message:  "dial tcp: connection refused",
			},
			want: "GET webs failed: dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := &APIError{Method: http.MethodGet, Endpoint: "lists", Err: cause}

	assert.ErrorIs(t, err, cause)
}

func TestResponseError(t *testing.T) {
	t.Run("with response", func(t *testing.T) {
		err := &ResponseError{Response: &Response{StatusCode: 404, Data: []byte("not found")}}
		assert.Equal(t, "request failed: 404 - not found", err.Error())
	})

	t.Run("without response", func(t *testing.T) {
		err := &ResponseError{}
		assert.Equal(t, "request failed", err.Error())
	})

	t.Run("unwraps the cause", func(t *testing.T) {
		cause := errors.New("read timeout")
		err := &ResponseError{Err: cause}
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "request failed: read timeout", err.Error())
	})
}

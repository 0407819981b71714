package sharepoint

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned by a terminal verb invoked before Api or
	// AdminApi chose a target. No network call is made.
	ErrNotConfigured = errors.New("request builder not configured: call Api or AdminApi first")

	// ErrAuthentication is returned by Connect when no access token could be
	// obtained from the identity provider.
	ErrAuthentication = errors.New("failed to obtain access token")
)

// ResponseError is raised by a Transport for non-2xx replies. It carries the
// response so callers can inspect status and body.
type ResponseError struct {
	Response *Response
	Err      error
}

func (e *ResponseError) Error() string {
	if e.Response == nil {
		if e.Err != nil {
			return fmt.Sprintf("request failed: %v", e.Err)
		}
		return "request failed"
	}

	if e.Err != nil {
		return fmt.Sprintf("request failed: %d - %s: %v", e.Response.StatusCode, e.Response.Data, e.Err)
	}

	return fmt.Sprintf("request failed: %d - %s", e.Response.StatusCode, e.Response.Data)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// APIError is the normalized failure of a terminal verb: one error carrying
// method, endpoint, status (if a response was received), the remote error
// code (if the body followed the error envelope) and a message.
type APIError struct {
	Method     string
	Endpoint   string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Method, e.Endpoint)

	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}

	if e.Code != "" {
		msg += fmt.Sprintf(", code %s", e.Code)
	}

	if e.Message != "" {
		msg += ": " + e.Message
	}

	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// odataErrorEnvelope is the error body shape of the target API.
type odataErrorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message struct {
			Value string `json:"value"`
		} `json:"message"`
	} `json:"error"`
}

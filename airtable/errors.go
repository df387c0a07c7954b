// ABOUTME: Error types for remote store failures
// ABOUTME: Parses the remote error envelope and classifies schema-mismatch kinds
package airtable

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-success response from the remote store. It keeps the raw
// status code and body so the request boundary can pass them through instead
// of collapsing everything into a generic 500.
type APIError struct {
	StatusCode int
	Body       string
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote store returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote store returned %d: %s", e.StatusCode, e.Body)
}

// errorEnvelope matches {"error": {"type": ..., "message": ...}}. The remote
// API sometimes sends {"error": "..."} instead, so Err is decoded loosely.
type errorEnvelope struct {
	Err json.RawMessage `json:"error"`
}

type errorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       string(body),
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Err) == 0 {
		return apiErr
	}

	var detail errorDetail
	if err := json.Unmarshal(envelope.Err, &detail); err == nil && (detail.Type != "" || detail.Message != "") {
		apiErr.Type = detail.Type
		apiErr.Message = detail.Message
		return apiErr
	}

	var plain string
	if err := json.Unmarshal(envelope.Err, &plain); err == nil {
		apiErr.Message = plain
	}
	return apiErr
}

// IsUnknownFieldName reports whether the write was rejected because a field
// name in the payload does not exist on the remote schema. This is the
// trigger for the alias variant walk.
func (e *APIError) IsUnknownFieldName() bool {
	if e.Type == "UNKNOWN_FIELD_NAME" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "unknown field name")
}

// IsInvalidValue reports whether the remote store rejected a field value,
// typically a date in a spelling the column does not accept.
func (e *APIError) IsInvalidValue() bool {
	if e.Type == "INVALID_VALUE_FOR_COLUMN" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Message), "invalid value")
}

package airtable

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBatchTooLarge is returned when a mutation carries more than MaxBatchSize records.
var ErrBatchTooLarge = errors.New("batch exceeds airtable limit")

// APIError is a non-2xx answer of the Airtable API.
type APIError struct {
	Method  string
	Table   string
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("airtable %s %s: status %d", e.Method, e.Table, e.Status)
	if e.Type != "" {
		msg += " " + e.Type
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// parseAPIError decodes both error shapes the API uses:
// {"error":"NOT_FOUND"} and {"error":{"type":"...","message":"..."}}.
func parseAPIError(method, table string, status int, body []byte) *APIError {
	apiErr := &APIError{Method: method, Table: table, Status: status}

	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Error) == 0 {
		apiErr.Message = string(body)
		return apiErr
	}

	var detailed struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Error, &detailed); err == nil {
		apiErr.Type = detailed.Type
		apiErr.Message = detailed.Message
		return apiErr
	}

	var code string
	if err := json.Unmarshal(envelope.Error, &code); err == nil {
		apiErr.Type = code
	}
	return apiErr
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"building-portal/pkg/apierror"
)

type validatable interface {
	Validate() apierror.FieldErrors
}

// decodeValid parses the request body and runs the payload's own
// validation, so handlers receive a typed, validated value. Malformed JSON
// surfaces as INVALID_JSON via error translation; constraint violations
// enumerate every violated field at once.
func decodeValid[T validatable](r *http.Request) (T, error) {
	var payload T
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, err
	}

	if fields := payload.Validate(); len(fields) > 0 {
		return payload, apierror.Validation("request validation failed", fields...)
	}

	return payload, nil
}

// decodeJSON parses without validating, for payloads whose validation runs
// deeper in the stack.
func decodeJSON[T any](r *http.Request) (T, error) {
	var payload T
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

// queryID parses an optional positive integer query parameter. A missing
// parameter is zero; a malformed one is a field error.
func queryID(r *http.Request, name string) (int64, *apierror.FieldError) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &apierror.FieldError{Field: name, Message: name + " must be a positive integer"}
	}
	return id, nil
}

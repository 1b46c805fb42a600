package apierror

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// Body is the wire shape of every error response. Details are only
// populated in development mode.
type Body struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	ErrorID string `json:"errorId,omitempty"`
}

// Translate converts any error into an HTTP status and a uniform error body.
// It is total: whatever err is, the result is a well-formed response.
// Unclassified errors get a random correlation id and are logged server-side
// so an operator can match the response to the log line.
func Translate(err error, development bool) (int, Body) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		body := Body{
			Code:    apiErr.Code,
			Message: apiErr.Message,
			ErrorID: apiErr.ErrorID,
		}
		if development {
			if len(apiErr.Fields) > 0 {
				body.Details = apiErr.Fields
			} else if apiErr.cause != nil {
				body.Details = apiErr.cause.Error()
			}
		}
		return apiErr.HTTPStatus, body
	}

	var fields FieldErrors
	if errors.As(err, &fields) {
		body := Body{
			Code:    CodeValidation,
			Message: "request validation failed",
		}
		if development {
			body.Details = []FieldError(fields)
		}
		return http.StatusBadRequest, body
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return http.StatusBadRequest, Body{
			Code:    CodeInvalidJSON,
			Message: "request body is not valid JSON",
		}
	}

	errorID := uuid.NewString()
	slog.Error("unclassified error", "error_id", errorID, "error", err)

	message := "Unexpected server error"
	if development && err != nil {
		message = err.Error()
	}

	return http.StatusInternalServerError, Body{
		Code:    CodeInternal,
		Message: message,
		ErrorID: errorID,
	}
}

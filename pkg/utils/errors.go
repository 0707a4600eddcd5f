package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ExtractionError represents a caller-visible extraction failure. Code carries
// the HTTP status the API layer should answer with; Method records the
// extraction path that was attempted when the failure is semantic rather than
// transport-level.
type ExtractionError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Method  string `json:"method,omitempty"`
}

func (e *ExtractionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// NewInvalidInputError reports a missing or unparseable URL
func NewInvalidInputError(detail string) *ExtractionError {
	return &ExtractionError{
		Code:    http.StatusBadRequest,
		Message: "invalid_url",
		Detail:  detail,
	}
}

// NewFetchFailedError reports a transport-level failure, including non-2xx
// upstream responses. The upstream status goes into Detail.
func NewFetchFailedError(detail string) *ExtractionError {
	return &ExtractionError{
		Code:    http.StatusBadRequest,
		Message: "fetch_failed",
		Detail:  detail,
	}
}

// NewTimeoutError reports an outbound fetch that exceeded its deadline.
// Distinct from other transport failures so callers can retry.
func NewTimeoutError(detail string) *ExtractionError {
	return &ExtractionError{
		Code:    http.StatusRequestTimeout,
		Message: "fetch_timeout",
		Detail:  detail,
	}
}

// NewContentTooShortError reports that the page or the extracted text fell
// below the minimum acceptable length. Semantic failure, not transport:
// callers may want to prompt for a manual paste instead of retrying.
func NewContentTooShortError(detail, method string) *ExtractionError {
	return &ExtractionError{
		Code:    http.StatusBadRequest,
		Message: "content_too_short",
		Detail:  detail,
		Method:  method,
	}
}

// NewInternalServerError reports an unclassified failure
func NewInternalServerError(detail string) *ExtractionError {
	return &ExtractionError{
		Code:    http.StatusInternalServerError,
		Message: "extraction_failed",
		Detail:  detail,
	}
}

// NewParseError reports a failure of the structured-parse collaborator
func NewParseError(detail string) *ExtractionError {
	return &ExtractionError{
		Code:    http.StatusBadGateway,
		Message: "parse_failed",
		Detail:  detail,
	}
}

// AsExtractionError unwraps err into an *ExtractionError, or wraps it as an
// internal error so the API layer always has a code to answer with.
func AsExtractionError(err error) *ExtractionError {
	var ee *ExtractionError
	if errors.As(err, &ee) {
		return ee
	}
	return NewInternalServerError(err.Error())
}

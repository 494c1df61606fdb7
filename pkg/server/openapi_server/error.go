package openapi_server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/guohuasdesign/shipping-lane-routing/pkg/domain"
)

// ParsingError indicates that an error has occurred when parsing request parameters
type ParsingError struct {
	Err error
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}

func (e *ParsingError) Error() string {
	return e.Err.Error()
}

// ValidationError lists the translated messages of failed field constraints
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", strings.Join(e.Messages, "; "))
}

// ErrorResponse is the body written for failed requests
type ErrorResponse struct {
	Status  string   `json:"status"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// ErrorHandler defines the required method for handling error. You may implement it and inject this into a controller if
// you would like errors to be handled differently from the DefaultErrorHandler
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse)

// DefaultErrorHandler defines the default logic on how to handle errors from the controller. Any errors from parsing
// request params will return a StatusBadRequest. Otherwise, the error code originating from the servicer will be used.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse) {
	body := ErrorResponse{Error: err.Error()}
	status := statusCode(err)
	var verr *ValidationError
	if errors.As(err, &verr) {
		body.Details = verr.Messages
	}
	if result != nil && result.Code != 0 {
		status = result.Code
	}
	body.Status = http.StatusText(status)
	EncodeJSONResponse(body, &status, w)
}

func statusCode(err error) int {
	var perr *ParsingError
	var verr *ValidationError
	switch {
	case errors.As(err, &perr), errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBadParamInput),
		errors.Is(err, domain.ErrMalformedInput),
		errors.Is(err, domain.ErrDegenerateGeometry):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNoNetworkCoverage),
		errors.Is(err, domain.ErrNoPath),
		errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrNoGeometry):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

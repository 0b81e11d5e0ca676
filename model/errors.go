package model

import (
	"errors"
	"net/http"
)

// error codes returned by services, also used as API error codes
var (
	ErrRateLimitReached = errors.New("RATE_LIMIT_REACHED")
	ErrRateLimiter      = errors.New("RATE_LIMITER_ERROR")
	ErrInvalidData      = errors.New("INVALID_DATA_FOUND")
	ErrFetch            = errors.New("FETCH_ERROR")
	ErrInvalidQuery     = errors.New("INVALID_QUERY")
)

const genericErrorMessage = "internal server error. contact our support with the reason code for assistance"

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewAPIError(errReason error) APIError {
	switch {
	case errors.Is(errReason, ErrRateLimitReached):
		return APIError{
			Code:    ErrRateLimitReached.Error(),
			Message: "github rate limit reached. consider using a token to increase the limit or wait few minutes and try again",
		}

	case errors.Is(errReason, ErrInvalidQuery):
		return APIError{
			Code:    ErrInvalidQuery.Error(),
			Message: errReason.Error(),
		}

	case errors.Is(errReason, ErrRateLimiter), errors.Is(errReason, ErrInvalidData), errors.Is(errReason, ErrFetch):
		return APIError{
			Code:    rootCode(errReason),
			Message: genericErrorMessage,
		}
	}

	return APIError{
		Code:    "GENERIC_ERROR",
		Message: genericErrorMessage,
	}
}

// StatusCode maps a service error to the HTTP status returned by the API
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, ErrRateLimitReached):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func rootCode(err error) string {
	for _, code := range []error{ErrRateLimiter, ErrInvalidData, ErrFetch} {
		if errors.Is(err, code) {
			return code.Error()
		}
	}

	return err.Error()
}

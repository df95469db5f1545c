package gemini

import (
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrorCode represents a provider error code.
type ErrorCode string

const (
	ErrorCodeContentBlocked ErrorCode = "content_blocked"
	ErrorCodeRateLimit      ErrorCode = "rate_limit"
	ErrorCodeAuth           ErrorCode = "authentication_failed"
	ErrorCodeNetwork        ErrorCode = "network_error"
	ErrorCodeUnavailable    ErrorCode = "service_unavailable"
	ErrorCodeInvalidRequest ErrorCode = "invalid_request"
	ErrorCodeTooManySteps   ErrorCode = "too_many_steps"
)

// ErrNoCandidates is returned when the model answers with nothing.
var ErrNoCandidates = errors.New("no candidates in response")

// ProviderError wraps errors with additional context.
type ProviderError struct {
	Code       ErrorCode
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Underlying }

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return mapAPIError(apiErr.Code, apiErr.Message, err)
	}

	// Generic network error
	return &ProviderError{
		Code:       ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}

func mapAPIError(code int, message string, err error) error {
	switch code {
	case 401, 403:
		return &ProviderError{Code: ErrorCodeAuth, Message: "authentication failed", Underlying: err}
	case 429:
		return &ProviderError{Code: ErrorCodeRateLimit, Message: "rate limit exceeded", Underlying: err, Retryable: true}
	case 400:
		return &ProviderError{Code: ErrorCodeInvalidRequest, Message: fmt.Sprintf("invalid request: %s", message), Underlying: err}
	case 500, 502, 503, 504:
		return &ProviderError{Code: ErrorCodeUnavailable, Message: "service unavailable", Underlying: err, Retryable: true}
	default:
		return &ProviderError{Code: ErrorCodeNetwork, Message: fmt.Sprintf("API error: %s", message), Underlying: err, Retryable: true}
	}
}

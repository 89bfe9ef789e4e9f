package twitter

import (
	"errors"
	"fmt"
)

// Common errors returned by the Twitter client.
var (
	// ErrNoConsumerCredentials indicates the consumer key/secret pair is not configured.
	ErrNoConsumerCredentials = errors.New("consumer key and secret are required")

	// ErrNoClientCredentials indicates the OAuth2 client id/secret pair is not configured.
	ErrNoClientCredentials = errors.New("client id and secret are required")

	// ErrInvalidCredentials indicates credentials that cannot produce an authorization header.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// APIError represents a non-2xx response from the Twitter API.
//
// Reason carries the first message of the provider's errors array when the
// payload has that shape, otherwise the full decoded body rendered as text.
type APIError struct {
	StatusCode int
	Reason     string
	Body       any
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("twitter API error: status %d: %s", e.StatusCode, e.Reason)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// IsRateLimited checks if the error indicates the rate limit was hit.
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

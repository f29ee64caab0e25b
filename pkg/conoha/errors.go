package conoha

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an Error so callers can branch without inspecting
// status codes or message text.
type ErrorKind string

const (
	// ErrorKindAuthentication covers rejected credentials and any 401 that
	// was not recovered by re-authentication.
	ErrorKindAuthentication ErrorKind = "authentication"

	// ErrorKindTokenExpired covers a 401 that survived the single permitted
	// re-authentication retry, or an expired token that cannot be refreshed
	// because only a static token was supplied.
	ErrorKindTokenExpired ErrorKind = "token_expired"

	// ErrorKindBadRequest maps HTTP 400.
	ErrorKindBadRequest ErrorKind = "bad_request"

	// ErrorKindForbidden maps HTTP 403.
	ErrorKindForbidden ErrorKind = "forbidden"

	// ErrorKindNotFound maps HTTP 404.
	ErrorKindNotFound ErrorKind = "not_found"

	// ErrorKindConflict maps HTTP 409.
	ErrorKindConflict ErrorKind = "conflict"

	// ErrorKindEndpoint covers catalog/configuration failures: a service the
	// caller addressed has no resolvable endpoint.
	ErrorKindEndpoint ErrorKind = "endpoint"

	// ErrorKindAPI covers every other non-2xx status.
	ErrorKindAPI ErrorKind = "api"
)

// Error is the root error type for all API failures. Every non-2xx response
// maps to exactly one Error; callers branch on Kind or use the Is* helpers.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("conoha: %s (status: %d): %s", e.Kind, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("conoha: %s: %s", e.Kind, e.Message)
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, statusCode int, message string) *Error {
	return &Error{Kind: kind, StatusCode: statusCode, Message: message}
}

// MapStatusError maps a non-2xx status code and response body to a typed
// Error. The mapping is total: unrecognized statuses produce an
// ErrorKindAPI error carrying the original status and extracted message.
func MapStatusError(statusCode int, body []byte) *Error {
	message := ExtractErrorMessage(statusCode, body)

	var kind ErrorKind

	switch statusCode {
	case http.StatusBadRequest:
		kind = ErrorKindBadRequest
	case http.StatusUnauthorized:
		kind = ErrorKindAuthentication
	case http.StatusForbidden:
		kind = ErrorKindForbidden
	case http.StatusNotFound:
		kind = ErrorKindNotFound
	case http.StatusConflict:
		kind = ErrorKindConflict
	default:
		kind = ErrorKindAPI
	}

	return &Error{Kind: kind, StatusCode: statusCode, Message: message}
}

// ExtractErrorMessage pulls a human-readable message out of an error
// response body. The API uses both {"error": {"message": ...}} and
// {"message": ...} envelopes; plain-text bodies are returned as-is.
func ExtractErrorMessage(statusCode int, body []byte) string {
	if len(body) > 0 {
		var envelope struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
			Message string `json:"message"`
		}

		if err := json.Unmarshal(body, &envelope); err == nil {
			if envelope.Error.Message != "" {
				return envelope.Error.Message
			}

			if envelope.Message != "" {
				return envelope.Message
			}
		}

		return string(body)
	}

	return fmt.Sprintf("HTTP %d", statusCode)
}

func errorHasKind(err error, kind ErrorKind) bool {
	apiErr := &Error{}
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}

	return false
}

// IsAuthentication checks if the error is an authentication error.
func IsAuthentication(err error) bool {
	return errorHasKind(err, ErrorKindAuthentication)
}

// IsTokenExpired checks if the error is a token expiry error.
func IsTokenExpired(err error) bool {
	return errorHasKind(err, ErrorKindTokenExpired)
}

// IsBadRequest checks if the error is a bad request error.
func IsBadRequest(err error) bool {
	return errorHasKind(err, ErrorKindBadRequest)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return errorHasKind(err, ErrorKindForbidden)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errorHasKind(err, ErrorKindNotFound)
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return errorHasKind(err, ErrorKindConflict)
}

// IsEndpointNotFound checks if the error is a catalog/configuration error.
func IsEndpointNotFound(err error) bool {
	return errorHasKind(err, ErrorKindEndpoint)
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrTenantRequired           = errors.New("tenant ID or tenant name is required")
	ErrNoCredentials            = errors.New("either a token or username/password credentials are required")
	ErrAmbiguousCredentials     = errors.New("username requires a password")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

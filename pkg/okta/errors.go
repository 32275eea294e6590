package okta

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError represents a structured error body returned by the Okta API.
type APIError struct {
	ErrorCode    string       `json:"errorCode"             yaml:"errorCode"`
	ErrorSummary string       `json:"errorSummary"          yaml:"errorSummary"`
	ErrorLink    string       `json:"errorLink,omitempty"   yaml:"errorLink,omitempty"`
	ErrorID      string       `json:"errorId,omitempty"     yaml:"errorId,omitempty"`
	ErrorCauses  []ErrorCause `json:"errorCauses,omitempty" yaml:"errorCauses,omitempty"`
}

// ErrorCause is a sub-cause of an APIError.
type ErrorCause struct {
	ErrorSummary string `json:"errorSummary" yaml:"errorSummary"`
}

// Error implements the error interface. The message prefers the static
// friendly description for the code and falls back to the server summary.
func (e *APIError) Error() string {
	if desc, ok := ErrorDescriptions[e.ErrorCode]; ok {
		return fmt.Sprintf("%s: %s", e.ErrorCode, desc)
	}

	return fmt.Sprintf("%s: %s", e.ErrorCode, e.ErrorSummary)
}

// CauseSummaries returns the summaries of all sub-causes.
func (e *APIError) CauseSummaries() []string {
	summaries := make([]string, 0, len(e.ErrorCauses))
	for _, cause := range e.ErrorCauses {
		summaries = append(summaries, cause.ErrorSummary)
	}

	return summaries
}

// ParseAPIError attempts to interpret a response body as an Okta error object.
// It reports no match unless the body carries both a string-coercible
// errorCode and errorSummary; every other field is optional. The function
// performs no I/O and never panics, so callers can probe arbitrary bodies and
// fall back to transport-level error handling on a miss.
func ParseAPIError(data []byte) (*APIError, bool) {
	var raw map[string]json.RawMessage

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return nil, false
	}

	code, ok := coerceString(raw["errorCode"])
	if !ok {
		return nil, false
	}

	summary, ok := coerceString(raw["errorSummary"])
	if !ok {
		return nil, false
	}

	apiErr := &APIError{
		ErrorCode:    code,
		ErrorSummary: summary,
	}

	if link, ok := coerceString(raw["errorLink"]); ok {
		apiErr.ErrorLink = link
	}

	if id, ok := coerceString(raw["errorId"]); ok {
		apiErr.ErrorID = id
	}

	if causes, ok := raw["errorCauses"]; ok {
		_ = json.Unmarshal(causes, &apiErr.ErrorCauses)
	}

	return apiErr, true
}

// coerceString converts a raw JSON value to a string if it is a string or a
// number; other shapes (objects, arrays, booleans, null, absent) do not match.
func coerceString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s, true
	}

	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String(), true
	}

	return "", false
}

// Well-known Okta error codes.
const (
	ErrorCodeValidationFailed     = "E0000001"
	ErrorCodeAuthenticationFailed = "E0000004"
	ErrorCodeAccessDenied         = "E0000006"
	ErrorCodeResourceNotFound     = "E0000007"
	ErrorCodeInternalServerError  = "E0000009"
	ErrorCodeInvalidToken         = "E0000011"
	ErrorCodeRateLimitExceeded    = "E0000047"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrOrgURLRequired           = errors.New("org URL is required")
	ErrOrgURLPlaceholder        = errors.New("org URL contains the {yourOktaDomain} placeholder, replace it with your Okta domain")
	ErrOrgURLAdminDomain        = errors.New("org URL must not be the admin console domain, remove \"-admin\"")
	ErrAuthenticationRequired   = errors.New("authentication is required: set a client ID and private key, or an API token")
	ErrEmptyScopeSet            = errors.New("at least one OAuth scope is required")
	ErrInvalidCredentialFormat  = errors.New("private key looks like JSON but could not be parsed as a JWK")
	ErrTokenRequestFailed       = errors.New("token request failed")
	ErrRequestFailed            = errors.New("API request failed")
	ErrStaticTokenCannotRefresh = errors.New("static API token cannot be refreshed")
	ErrNoMorePages              = errors.New("no more pages")
)

// IsNotFound checks if the error is an Okta resource-not-found error.
func IsNotFound(err error) bool {
	return hasErrorCode(err, ErrorCodeResourceNotFound)
}

// IsAuthenticationFailed checks if the error is an authentication failure.
func IsAuthenticationFailed(err error) bool {
	return hasErrorCode(err, ErrorCodeAuthenticationFailed)
}

// IsAccessDenied checks if the error is an access-denied error.
func IsAccessDenied(err error) bool {
	return hasErrorCode(err, ErrorCodeAccessDenied)
}

// IsRateLimited checks if the error is a rate-limit error.
func IsRateLimited(err error) bool {
	return hasErrorCode(err, ErrorCodeRateLimitExceeded)
}

func hasErrorCode(err error, code string) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == code
	}

	return false
}

// RequestError reports a non-2xx response whose body did not match the Okta
// error shape.
func RequestError(status int, body []byte) error {
	return fmt.Errorf("%w with status %d: %s", ErrRequestFailed, status, string(body))
}

package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for API requests.
	DefaultHTTPTimeout = 30 * time.Second

	// TokenRequestTimeout is the timeout for token endpoint requests.
	TokenRequestTimeout = 30 * time.Second
)

// Rate-limit retry behavior.
const (
	// RateLimitMaxRetries is the retry ceiling for 429 responses.
	RateLimitMaxRetries = 3

	// RateLimitDefaultWait is the backoff used when a 429 response carries no
	// usable Retry-After header.
	RateLimitDefaultWait = 1 * time.Second
)

// Token lifecycle.
const (
	// TokenExpirationBuffer is subtracted from a token's expiry when deciding
	// whether it is still usable; it absorbs clock skew and in-flight request
	// latency.
	TokenExpirationBuffer = 60 * time.Second

	// ClientAssertionLifetime is the validity window of a signed client
	// assertion JWT.
	ClientAssertionLifetime = 5 * time.Minute
)

// API paths and headers.
const (
	// APIBasePath is the base path of the standard management API.
	APIBasePath = "/api/v1"

	// GovernanceBasePath is the base path of the governance API.
	GovernanceBasePath = "/api/v1/governance"

	// TokenEndpointPath is the org-level OAuth2 token endpoint.
	TokenEndpointPath = "/oauth2/v1/token"

	// GovernanceHeaderName is the fixed extra header sent on every governance
	// request.
	GovernanceHeaderName = "X-Okta-Governance"

	// GovernanceHeaderValue is the value of the governance header.
	GovernanceHeaderValue = "enabled"
)

// Authorization schemes.
const (
	// AuthSchemeBearer is used for OAuth access tokens.
	AuthSchemeBearer = "Bearer"

	// AuthSchemeSSWS is used for static Okta API tokens.
	AuthSchemeSSWS = "SSWS"
)

// OAuth2 request values.
const (
	// GrantTypeClientCredentials is the grant requested from the token
	// endpoint.
	GrantTypeClientCredentials = "client_credentials"

	// ClientAssertionType identifies the RFC 7523 JWT bearer assertion.
	ClientAssertionType = "urn:ietf:params:oauth:client-assertion-type:jwt-bearer"
)

// Pagination defaults.
const (
	// DefaultPageLimit is the page size requested when the caller does not
	// specify one.
	DefaultPageLimit = 200

	// MaxPages bounds pagination walks in the CLI to prevent runaway loops.
	MaxPages = 50
)

// DefaultUserAgent is sent when the caller does not override it.
const DefaultUserAgent = "oktakit-go"

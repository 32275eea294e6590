package okta

import (
	"context"
	"net/url"
)

// Client is the request surface exposed by a configured Okta API client.
//
// Paths are relative to the client's API base path ("/api/v1", or
// "/api/v1/governance" for the governance variant). Paths that already begin
// with "/api/" (typically pagination cursor URLs) are dispatched verbatim.
type Client interface {
	Get(ctx context.Context, path string, query url.Values) (*Response, error)
	Post(ctx context.Context, path string, body interface{}) (*Response, error)
	Put(ctx context.Context, path string, body interface{}) (*Response, error)
	Patch(ctx context.Context, path string, body interface{}) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)

	// AccessToken returns the credential the client would attach to its next
	// request, refreshing it first if needed.
	AccessToken(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building an okta.Client.
//
// # Authentication modes
//
// Exactly one mode must be fully configured:
//  1. ClientID + PrivateKey: the OAuth2 client_credentials grant with an RFC
//     7523 private-key JWT client assertion. The private key may be a PEM
//     string (literal "\n" sequences are expanded, so single-line environment
//     variables work) or a JSON Web Key.
//  2. APIToken: a static Okta API token sent as "Authorization: SSWS <token>".
//
// When both are configured, OAuth wins. When neither is, construction fails
// with ErrAuthenticationRequired.
//
// # Scopes
//
// In OAuth mode the requested scope set is the union of Scopes and
// AdditionalScopes (insertion order kept, duplicates removed). The Okta token
// endpoint rejects empty scope requests, so an empty union fails construction
// with ErrEmptyScopeSet before any network call.
//
// # Retries
//
// Rate-limited (429) responses are retried up to RetryMax times (default 3),
// honoring the Retry-After header. Retried requests are replayed byte-for-byte
// including non-idempotent bodies; if the server partially processed a request
// before rate-limiting it, a retry can double-apply. Callers performing
// non-idempotent writes should be aware of this.
type Config struct {
	// OrgURL: base URL of the Okta org (e.g., "https://example.okta.com").
	// oktaclient.New normalizes this value by trimming trailing slashes and
	// adding "https://" if no scheme is present.
	OrgURL string

	// ClientID: OAuth2 client ID of the service app (paired with PrivateKey).
	ClientID string
	// PrivateKey: PEM or JSON-JWK encoded RSA private key used to sign the
	// client assertion.
	PrivateKey string
	// APIToken: static Okta API token, used verbatim as an SSWS credential.
	APIToken string

	// Scopes: caller-declared OAuth scopes required by the workload.
	Scopes []string
	// AdditionalScopes: extra scopes merged into the request, typically
	// supplied through the environment at the process boundary.
	AdditionalScopes []string

	// RetryMax: maximum number of rate-limit retries per request. Zero means
	// the default of 3.
	RetryMax int
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the transport and the token
	// manager.
	Logger Logger
}

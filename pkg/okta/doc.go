// Package okta provides the types, interfaces, and helpers for working with
// the Okta management API.
//
// # Overview
//
// The okta package defines the client configuration (Config), the generic
// request surface (Client), the structured error model (APIError and the
// ParseAPIError translator), query parameter building (QueryParams), and
// cursor pagination over RFC 5988 Link headers (PageIterator). A concrete
// implementation is provided by the oktaclient package, which wires
// configuration, transport, authentication, and retry handling. Most
// consumers should import oktaclient to construct a client and then use the
// Client interface exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//	  "os"
//
//	  "github.com/oktakit/okta/pkg/okta"
//	  "github.com/oktakit/okta/pkg/oktaclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := oktaclient.New(&okta.Config{
//	    OrgURL:     "https://example.okta.com",
//	    ClientID:   "0oa1bc2d3e4F5G6h7i8j",
//	    PrivateKey: os.Getenv("OKTA_PRIVATE_KEY"), // PEM or JWK
//	    Scopes:     []string{"okta.users.read"},
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  resp, err := cli.Get(ctx, "/users", okta.NewQueryParams().WithLimit(200).ToValues())
//	  if err != nil { log.Fatal(err) }
//	  _ = resp
//	}
//
// # Pagination
//
// List endpoints return a Link header with a rel="next" cursor. PageIterator
// follows it lazily:
//
//	it := okta.NewPageIterator[map[string]any](cli, "/users", nil)
//	for it.HasNext() {
//	  page, err := it.NextPage(ctx)
//	  if err != nil { break }
//	  _ = page
//	}
//
// # Errors
//
// Structured Okta error bodies are surfaced as *APIError; helpers such as
// IsNotFound, IsRateLimited, and IsAccessDenied make it easy to branch on the
// common cases. Non-2xx responses whose bodies do not match the Okta error
// shape are wrapped with ErrRequestFailed instead.
//
// # Rate limiting
//
// 429 responses are retried up to three times per request, sleeping for the
// number of seconds given by Retry-After (1s when absent). The replay is
// byte-identical, including non-idempotent bodies; see Config for the
// implications.
package okta

package okta

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// PageClient is the subset of Client that the pagination walker drives.
type PageClient interface {
	Get(ctx context.Context, path string, query url.Values) (*Response, error)
}

// LinkEntry is one parsed entry of an RFC 5988 Link header.
type LinkEntry struct {
	URL string
	Rel string
}

// ParseLinkHeader parses a Link header value into its entries. Segments
// without a URL in angle brackets are skipped.
func ParseLinkHeader(value string) []LinkEntry {
	var entries []LinkEntry

	for _, segment := range strings.Split(value, ",") {
		segment = strings.TrimSpace(segment)

		start := strings.Index(segment, "<")
		end := strings.Index(segment, ">")

		if start < 0 || end < 0 || end < start {
			continue
		}

		entry := LinkEntry{URL: segment[start+1 : end]}

		for _, param := range strings.Split(segment[end+1:], ";") {
			param = strings.TrimSpace(param)

			relValue, ok := strings.CutPrefix(param, "rel=")
			if !ok {
				continue
			}

			entry.Rel = strings.Trim(relValue, `"`)
		}

		entries = append(entries, entry)
	}

	return entries
}

// NextPageURL extracts the rel="next" cursor from a response's Link headers
// and returns it as a path+query string ready to pass back to the client.
func NextPageURL(headers map[string][]string) (string, bool) {
	for _, value := range headers["Link"] {
		for _, entry := range ParseLinkHeader(value) {
			if entry.Rel != "next" {
				continue
			}

			cursor, err := url.Parse(entry.URL)
			if err != nil {
				continue
			}

			path := cursor.Path
			if cursor.RawQuery != "" {
				path += "?" + cursor.RawQuery
			}

			return path, true
		}
	}

	return "", false
}

// PageIterator lazily walks the pages of a list endpoint by following
// rel="next" Link headers. The walk is finite and non-restartable: once a
// response carries no next cursor the iterator is exhausted.
type PageIterator[T any] struct {
	client PageClient
	path   string
	query  url.Values
	done   bool
}

// NewPageIterator creates an iterator starting at path with the given query
// parameters. Subsequent requests take their path and query entirely from the
// next-page cursor; the initial parameters are not re-applied.
func NewPageIterator[T any](client PageClient, path string, query url.Values) *PageIterator[T] {
	return &PageIterator[T]{
		client: client,
		path:   path,
		query:  query,
	}
}

// HasNext reports whether another page may be fetched.
func (it *PageIterator[T]) HasNext() bool {
	return !it.done
}

// NextPage fetches and decodes the next page. After the last page it returns
// ErrNoMorePages.
func (it *PageIterator[T]) NextPage(ctx context.Context) ([]T, error) {
	if it.done {
		return nil, ErrNoMorePages
	}

	resp, err := it.client.Get(ctx, it.path, it.query)
	if err != nil {
		it.done = true

		return nil, fmt.Errorf("fetching page: %w", err)
	}

	var page []T

	err = resp.JSON(&page)
	if err != nil {
		it.done = true

		return nil, fmt.Errorf("parsing page: %w", err)
	}

	next, ok := NextPageURL(resp.Headers)
	if ok {
		// The cursor URL already encodes the paging parameters.
		it.path = next
		it.query = nil
	} else {
		it.done = true
	}

	return page, nil
}

// All fetches every remaining page and returns the concatenated items.
func (it *PageIterator[T]) All(ctx context.Context) ([]T, error) {
	var all []T

	for it.HasNext() {
		page, err := it.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
	}

	return all, nil
}

// ForEach applies fn to every remaining item, stopping on the first error.
func (it *PageIterator[T]) ForEach(ctx context.Context, fn func(item T) error) error {
	for it.HasNext() {
		page, err := it.NextPage(ctx)
		if err != nil {
			return err
		}

		for _, item := range page {
			err = fn(item)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages walks the pages on a goroutine and delivers them on the
// returned channel. The channel is closed after the last page or the first
// error; cancellation of ctx also ends the stream.
func StreamPages[T any](ctx context.Context, client PageClient, path string, query url.Values) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		iterator := NewPageIterator[T](client, path, query)

		for iterator.HasNext() {
			page, err := iterator.NextPage(ctx)

			select {
			case results <- PageResult[T]{Items: page, Err: err}:
			case <-ctx.Done():
				return
			}

			if err != nil {
				return
			}
		}
	}()

	return results
}

package okta

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams expresses the common Okta list parameters.
type QueryParams struct {
	Q         string
	After     string
	Limit     int
	Filter    string
	Search    string
	SortBy    string
	SortOrder string
	Expand    []string

	// Extra holds endpoint-specific parameters not covered by the named
	// fields.
	Extra map[string][]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Extra: make(map[string][]string),
	}
}

// WithQ sets the simple text match parameter.
func (p *QueryParams) WithQ(q string) *QueryParams {
	p.Q = q

	return p
}

// WithAfter sets the pagination cursor.
func (p *QueryParams) WithAfter(after string) *QueryParams {
	p.After = after

	return p
}

// WithLimit sets the page size.
func (p *QueryParams) WithLimit(limit int) *QueryParams {
	p.Limit = limit

	return p
}

// WithFilter sets the filter expression.
func (p *QueryParams) WithFilter(filter string) *QueryParams {
	p.Filter = filter

	return p
}

// WithSearch sets the search expression.
func (p *QueryParams) WithSearch(search string) *QueryParams {
	p.Search = search

	return p
}

// WithSort sets sortBy and sortOrder.
func (p *QueryParams) WithSort(by, order string) *QueryParams {
	p.SortBy = by
	p.SortOrder = order

	return p
}

// WithExpand appends expand values.
func (p *QueryParams) WithExpand(expand ...string) *QueryParams {
	p.Expand = append(p.Expand, expand...)

	return p
}

// WithExtra appends values for an endpoint-specific parameter.
func (p *QueryParams) WithExtra(key string, values ...string) *QueryParams {
	if p.Extra == nil {
		p.Extra = make(map[string][]string)
	}

	p.Extra[key] = append(p.Extra[key], values...)

	return p
}

// ToValues converts the params to url.Values.
func (p *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if p.Q != "" {
		values.Set("q", p.Q)
	}

	if p.After != "" {
		values.Set("after", p.After)
	}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	if p.Filter != "" {
		values.Set("filter", p.Filter)
	}

	if p.Search != "" {
		values.Set("search", p.Search)
	}

	if p.SortBy != "" {
		values.Set("sortBy", p.SortBy)
	}

	if p.SortOrder != "" {
		values.Set("sortOrder", p.SortOrder)
	}

	if len(p.Expand) > 0 {
		values.Set("expand", strings.Join(p.Expand, ","))
	}

	for key, vals := range p.Extra {
		values.Set(key, strings.Join(vals, ","))
	}

	return values
}

package commands

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/oktakit/okta/internal/constants"
	"github.com/oktakit/okta/pkg/okta"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var (
		params   []string
		limit    int
		maxPages int
	)

	cmd := &cobra.Command{
		Use:   "list <path>",
		Short: "Walk a paginated list endpoint",
		Long: `Issue GET requests against a list endpoint, following next-page cursors
until the collection is exhausted or the page ceiling is reached, and print
the concatenated items.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}

			query, err := parseQueryParams(params)
			if err != nil {
				return err
			}

			if limit > 0 {
				if query == nil {
					query = url.Values{}
				}

				query.Set("limit", strconv.Itoa(limit))
			}

			iterator := okta.NewPageIterator[json.RawMessage](client, args[0], query)

			var items []json.RawMessage

			for page := 0; page < maxPages && iterator.HasNext(); page++ {
				pageItems, err := iterator.NextPage(cmd.Context())
				if err != nil {
					return err
				}

				items = append(items, pageItems...)
			}

			body, err := json.Marshal(items)
			if err != nil {
				return err
			}

			return printJSON(body)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().IntVar(&limit, "limit", constants.DefaultPageLimit, "page size requested from the server")
	cmd.Flags().IntVar(&maxPages, "max-pages", constants.MaxPages, "maximum number of pages to fetch")

	return cmd
}

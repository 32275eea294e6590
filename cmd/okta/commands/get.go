package commands

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oktakit/okta/internal/constants"
)

// NewGetCommand creates the get command.
func NewGetCommand() *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Issue a GET request against an org endpoint",
		Long: `Issue a GET request against an API path relative to the client's base
path, for example "/users" or "/groups/00g1ab2cd3".`,
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

			resp, err := client.Get(cmd.Context(), args[0], query)
			if err != nil {
				return err
			}

			return printJSON(resp.Body)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as key=value (repeatable)")

	return cmd
}

// parseQueryParams converts repeated key=value flags into url.Values.
func parseQueryParams(params []string) (url.Values, error) {
	if len(params) == 0 {
		return nil, nil
	}

	query := url.Values{}

	for _, param := range params {
		key, value, found := strings.Cut(param, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidQueryParam, param)
		}

		query.Add(key, value)
	}

	return query, nil
}

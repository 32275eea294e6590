package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewTokenCommand creates the token command. It forces a credential
// resolution round trip, which makes it a quick end-to-end check of the
// configured authentication mode.
func NewTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print the access token the client would use",
		Long:  "Authenticate with the configured credentials and print the resulting access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient()
			if err != nil {
				return err
			}

			token, err := client.AccessToken(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get access token: %w", err)
			}

			_, _ = fmt.Fprintln(os.Stdout, token)

			return nil
		},
	}
}

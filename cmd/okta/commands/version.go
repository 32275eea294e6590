package commands

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the Okta CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			type VersionInfo struct {
				Version string `json:"version"`
				Commit  string `json:"commit"`
				Built   string `json:"built"`
			}

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")

			return encoder.Encode(VersionInfo{
				Version: version,
				Commit:  commit,
				Built:   date,
			})
		},
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oktakit/okta/cmd/okta/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "okta",
	Short: "Okta API diagnostic CLI",
	Long: `A command-line interface for exercising the Okta API client.

It authenticates with either a static API token or the OAuth2
client_credentials grant and issues requests against org endpoints.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("org-url", "", "Okta org URL (e.g. https://example.okta.com)")
	rootCmd.PersistentFlags().String("api-token", "", "static SSWS API token")
	rootCmd.PersistentFlags().String("client-id", "", "OAuth2 client ID")
	rootCmd.PersistentFlags().String("private-key", "", "PEM or JWK encoded RSA private key")
	rootCmd.PersistentFlags().StringSlice("scopes", nil, "OAuth2 scopes to request")
	rootCmd.PersistentFlags().Bool("governance", false, "use the governance API base path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("org-url", rootCmd.PersistentFlags().Lookup("org-url"))
	_ = viper.BindPFlag("api-token", rootCmd.PersistentFlags().Lookup("api-token"))
	_ = viper.BindPFlag("client-id", rootCmd.PersistentFlags().Lookup("client-id"))
	_ = viper.BindPFlag("private-key", rootCmd.PersistentFlags().Lookup("private-key"))
	_ = viper.BindPFlag("scopes", rootCmd.PersistentFlags().Lookup("scopes"))
	_ = viper.BindPFlag("governance", rootCmd.PersistentFlags().Lookup("governance"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewTokenCommand())
	rootCmd.AddCommand(commands.NewGetCommand())
	rootCmd.AddCommand(commands.NewListCommand())
}

func initConfig() {
	// Load a local .env if present; real environment variables win
	_ = godotenv.Load()

	// Read in environment variables that match (OKTA_ORG_URL, OKTA_API_TOKEN, ...)
	viper.SetEnvPrefix("OKTA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/oktakit/okta/internal/constants"
	"github.com/oktakit/okta/pkg/okta"
	"github.com/oktakit/okta/pkg/oktaclient"
)

// buildClient constructs a client from the resolved flag and environment
// configuration.
func buildClient() (okta.Client, error) {
	if viper.GetString("org-url") == "" {
		return nil, constants.ErrNoOrgConfigured
	}

	config := &okta.Config{
		OrgURL:     viper.GetString("org-url"),
		APIToken:   viper.GetString("api-token"),
		ClientID:   viper.GetString("client-id"),
		PrivateKey: viper.GetString("private-key"),
		Scopes:     viper.GetStringSlice("scopes"),
		Debug:      viper.GetBool("verbose"),
	}

	if viper.GetBool("verbose") {
		logger, err := newZapLogger()
		if err != nil {
			return nil, err
		}

		config.Logger = logger
	}

	if viper.GetBool("governance") {
		return oktaclient.NewGovernance(config)
	}

	return oktaclient.New(config)
}

// printJSON pretty-prints an API response body to stdout.
func printJSON(body []byte) error {
	var decoded interface{}

	err := json.Unmarshal(body, &decoded)
	if err != nil {
		// Not JSON, print raw
		_, _ = os.Stdout.Write(body)

		return nil
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err = encoder.Encode(decoded)
	if err != nil {
		return fmt.Errorf("encoding response to JSON: %w", err)
	}

	return nil
}

// zapLogger adapts a zap logger to the okta.Logger interface.
type zapLogger struct {
	logger *zap.Logger
}

func newZapLogger() (*zapLogger, error) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return &zapLogger{logger: logger}, nil
}

func (l *zapLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, zapFields(fields)...)
}

func (l *zapLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, zapFields(fields)...)
}

func (l *zapLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, zapFields(fields)...)
}

func (l *zapLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, zapFields(fields)...)
}

func zapFields(fields map[string]interface{}) []zap.Field {
	zfields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zfields = append(zfields, zap.Any(key, value))
	}

	return zfields
}

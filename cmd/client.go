package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"kv-storage/core/config"
	"kv-storage/core/kv"
	"kv-storage/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig loads configuration and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.Client.APIKey = apiKeyFlag
	}
	if flags.Changed("base-url") {
		cfg.Client.BaseURL = baseURLFlag
	}
	if flags.Changed("timeout") {
		cfg.Client.TimeoutSeconds = timeoutFlag
	}
	return cfg, nil
}

// newClient builds a kv client and logger from configuration and flags.
func newClient(cmd *cobra.Command) (*kv.Client, *config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if cfg.Client.APIKey == "" {
		logg.Warn("No API key configured; requests will be rejected by the server")
	}

	clientCfg := cfg.Client
	clientCfg.Logger = logg
	client, err := kv.NewClient(clientCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return client, cfg, logg, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

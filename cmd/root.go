package cmd

import (
	"fmt"
	"os"

	"kv-storage/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath  string
	apiKeyFlag  string
	baseURLFlag string
	timeoutFlag int
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "kv-storage",
	Short: "KV Storage client and emulator",
	Long: `kv-storage talks to the KV Storage REST API: read, write, delete and list
JSON values grouped in namespaces, back namespaces up to S3 compatible storage,
or run a local emulator of the API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the development config for readable CLI errors
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config-path", ".", "Directory holding the .env file")
	flags.StringVar(&apiKeyFlag, "api-key", "", "API key (overrides CLIENT_API_KEY)")
	flags.StringVar(&baseURLFlag, "base-url", "", "API base URL (overrides CLIENT_BASE_URL)")
	flags.IntVar(&timeoutFlag, "timeout", 0, "Request timeout in seconds (overrides CLIENT_TIMEOUT_SECONDS)")
}

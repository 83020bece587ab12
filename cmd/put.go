package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"kv-storage/core/utils"

	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <namespace> <key> [value]",
	Short: "Store a value under a key",
	Long: `Stores a value under a key, replacing any previous value.

The value is parsed as JSON when possible and stored as a JSON string otherwise,
so "put app greeting hello" stores "hello" and "put app count 3" stores 3.
Use --file to read the value from a file ("-" reads stdin); file contents must be JSON.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		var value json.RawMessage
		switch {
		case file != "" && len(args) == 3:
			return fmt.Errorf("value argument and --file are mutually exclusive")
		case file != "":
			data, err := readValueFile(cmd, file)
			if err != nil {
				return err
			}
			if !json.Valid(data) {
				return fmt.Errorf("%s does not contain valid JSON", file)
			}
			value = data
		case len(args) == 3:
			value = utils.ParseValue(args[2])
		default:
			return fmt.Errorf("missing value: pass it as an argument or with --file")
		}

		client, _, logg, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		res, err := client.Put(cmd.Context(), args[0], args[1], value)
		if err != nil {
			return err
		}

		msg := res.Message
		if msg == "" {
			msg = "Value stored"
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
		return err
	},
}

func readValueFile(cmd *cobra.Command, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read value file: %w", err)
	}
	return data, nil
}

func init() {
	putCmd.Flags().StringP("file", "f", "", "Read the JSON value from a file (\"-\" for stdin)")
	RootCmd.AddCommand(putCmd)
}

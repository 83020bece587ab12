package cmd

import (
	"fmt"

	"kv-storage/core/utils"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <namespace> <key>",
	Short: "Print the value stored under a key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, logg, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		res, err := client.Get(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		raw, _ := cmd.Flags().GetBool("raw")
		if raw {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), utils.ToString(res.Value))
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), utils.Indent(res.Value))
		return err
	},
}

func init() {
	getCmd.Flags().Bool("raw", false, "Print strings unquoted and other values compact")
	RootCmd.AddCommand(getCmd)
}

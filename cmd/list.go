package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list <namespace>",
	Aliases: []string{"ls"},
	Short:   "List the keys of a namespace",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, logg, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		prefix, _ := cmd.Flags().GetString("prefix")
		res, err := client.List(cmd.Context(), args[0], prefix)
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(cmd.OutOrStdout(), res.Entries)
		}
		for _, key := range res.Keys {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
				return err
			}
		}
		return nil
	},
}

// namespacesCmd represents the namespaces command
var namespacesCmd = &cobra.Command{
	Use:   "namespaces",
	Short: "List the namespaces of the account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, logg, err := newClient(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		namespaces, err := client.ListNamespaces(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(cmd.OutOrStdout(), namespaces)
		}
		for _, ns := range namespaces {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), ns.Name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	listCmd.Flags().String("prefix", "", "Only list keys starting with this prefix")
	listCmd.Flags().Bool("json", false, "Print keys with their timestamps as JSON")
	namespacesCmd.Flags().Bool("json", false, "Print namespaces with their creation time as JSON")
	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(namespacesCmd)
}

package cmd

import (
	"fmt"
	"io"
	"time"

	"kv-storage/core/reconcile"
	"kv-storage/core/storage"
	"kv-storage/feature/backup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot namespaces to S3 compatible storage",
	Long: `Exports, lists, verifies, restores and removes namespace snapshots kept in the
bucket configured by STORAGE_*. Values are read and written through the API.`,
}

// backupExportCmd represents the backup export command
var backupExportCmd = &cobra.Command{
	Use:   "export <namespace>",
	Short: "Write a snapshot of a namespace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newBackupService(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		start := time.Now()
		info, err := svc.Export(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logg.Info("Export finished", zap.Duration("duration", time.Since(start)))
		return printJSON(cmd.OutOrStdout(), info)
	},
}

// backupListCmd represents the backup list command
var backupListCmd = &cobra.Command{
	Use:   "list <namespace>",
	Short: "List the snapshots of a namespace, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newBackupService(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		infos, err := svc.List(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, info := range infos {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", info.Object, info.Size, info.CreatedAt.Format(time.RFC3339)); err != nil {
				return err
			}
		}
		return nil
	},
}

// backupVerifyCmd represents the backup verify command
var backupVerifyCmd = &cobra.Command{
	Use:   "verify <namespace> [object]",
	Short: "Compare a snapshot with the live namespace",
	Long:  `Compares a snapshot (the newest when object is omitted) with the live namespace. Exits non-zero when they differ.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newBackupService(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		result, err := svc.Verify(cmd.Context(), args[0], optionalArg(args, 1))
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			if err := printJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
		} else if err := printVerifySummary(cmd.OutOrStdout(), result); err != nil {
			return err
		}

		if !result.Summary.Clean() {
			return fmt.Errorf("namespace %s differs from %s", args[0], result.Object)
		}
		return nil
	},
}

// backupRestoreCmd represents the backup restore command
var backupRestoreCmd = &cobra.Command{
	Use:   "restore <namespace> [object]",
	Short: "Restore a snapshot into a namespace",
	Long: `Writes the keys of a snapshot (the newest when object is omitted) that are missing
or different in the namespace. With --prune, keys absent from the snapshot are deleted.
Nothing is written unless --confirm is given.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newBackupService(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		prune, _ := cmd.Flags().GetBool("prune")
		confirm, _ := cmd.Flags().GetBool("confirm")
		opts := reconcile.Options{Prune: prune, Confirmed: confirm, DryRun: !confirm}

		result, err := svc.Restore(cmd.Context(), args[0], optionalArg(args, 1), opts)
		if result != nil {
			if printErr := printJSON(cmd.OutOrStdout(), result); printErr != nil && err == nil {
				err = printErr
			}
		}
		if err != nil {
			return err
		}
		if !confirm && len(result.Actions) > 0 {
			logg.Info("Dry run: re-run with --confirm to apply", zap.Int("actions", len(result.Actions)))
		}
		return nil
	},
}

// backupRemoveCmd represents the backup remove command
var backupRemoveCmd = &cobra.Command{
	Use:   "remove <namespace> <object>",
	Short: "Delete a snapshot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newBackupService(cmd)
		if err != nil {
			return err
		}
		defer logg.Sync()

		if err := svc.Remove(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[1])
		return err
	},
}

func newBackupService(cmd *cobra.Command) (*backup.Service, *zap.Logger, error) {
	client, cfg, logg, err := newClient(cmd)
	if err != nil {
		return nil, nil, err
	}

	objects, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return backup.NewService(client, objects, cfg.Storage, logg), logg, nil
}

func optionalArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return ""
}

func init() {
	backupVerifyCmd.Flags().Bool("json", false, "Output the per-key report as JSON")
	backupRestoreCmd.Flags().Bool("prune", false, "Delete keys that are not in the snapshot")
	backupRestoreCmd.Flags().Bool("confirm", false, "Apply the planned changes")

	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupVerifyCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupRemoveCmd)
	RootCmd.AddCommand(backupCmd)
}

func printVerifySummary(w io.Writer, result *backup.VerifyResult) error {
	s := result.Summary
	lines := []struct {
		label string
		value any
	}{
		{"Snapshot:", result.Object},
		{"Keys:", s.Total},
		{"In sync:", s.InSync},
		{"Missing live:", s.MissingActual},
		{"Not in snapshot:", s.MissingExpected},
		{"Value mismatches:", s.Mismatches},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-19s%v\n", l.label, l.value); err != nil {
			return err
		}
	}
	return nil
}

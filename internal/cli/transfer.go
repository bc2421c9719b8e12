package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/macrolog/macrolog/internal/app/transfer"
	"github.com/macrolog/macrolog/internal/daemon"
	"github.com/macrolog/macrolog/internal/infra/export"
	"github.com/macrolog/macrolog/internal/logger"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)

	exportCmd.Flags().StringP("output", "o", "", "Output file (default macrolog-DATE.FORMAT, - for stdout)")
}

// ─── export ─────────────────────────────────────────────────────────────────

var exportCmd = &cobra.Command{
	Use:       "export json|csv|xlsx",
	Short:     "Export all records",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "csv", "xlsx"},
	RunE:      runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(args[0])
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		path = export.FileName(f, time.Now())
	}

	return withApp(cmd.Context(), func(app *daemon.App) error {
		if path == "-" {
			return transfer.Export(out(cmd), app.Store, f)
		}

		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := transfer.Export(file, app.Store, f); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(out(cmd), "✅ Exported to %s\n", path)
		return nil
	})
}

// ─── import ─────────────────────────────────────────────────────────────────

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Replace all records with a JSON export",
	Long: `Replace targets and days with the contents of a JSON export. The file
must hold a non-empty "days" list; otherwise nothing changes. The current
records are saved as a backup first (see 'macrolog backup list').`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open import file: %w", err)
	}
	defer file.Close()

	return withApp(cmd.Context(), func(app *daemon.App) error {
		n, err := transfer.Import(cmd.Context(), app.Store, file, logger.L())
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "✅ Imported %d days from %s\n", n, args[0])
		return nil
	})
}

// ─── backup ─────────────────────────────────────────────────────────────────

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "List and restore the backups taken before imports",
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE:  runBackupList,
}

func runBackupList(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *daemon.App) error {
		backups, err := app.Store.Backups(cmd.Context())
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Fprintln(out(cmd), "No backups.")
			return nil
		}
		tw := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tCREATED\tREASON\tDAYS")
		for _, b := range backups {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", b.ID, b.CreatedAt.Local().Format(time.DateTime), b.Reason, b.Days)
		}
		return tw.Flush()
	})
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore ID",
	Short: "Replace all records with a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupRestore,
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *daemon.App) error {
		if err := app.Store.RestoreBackup(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "✅ Restored backup %s\n", args[0])
		return nil
	})
}

package cli

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/macrolog/macrolog/internal/app/macros"
	"github.com/macrolog/macrolog/internal/daemon"
	"github.com/macrolog/macrolog/internal/domain"
)

func init() {
	rootCmd.AddCommand(dayCmd)
	dayCmd.AddCommand(dayNewCmd)
	dayCmd.AddCommand(dayListCmd)
	dayCmd.AddCommand(daySetCmd)
	dayCmd.AddCommand(dayDeleteCmd)

	dayDeleteCmd.Flags().Bool("yes", false, "Confirm the delete")
}

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Manage day records",
	Long: `Manage day records. Days are addressed by their position in the list,
newest first, as shown by 'macrolog day list'.`,
}

// ─── day new ────────────────────────────────────────────────────────────────

var dayNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new day for today",
	Args:  cobra.NoArgs,
	RunE:  runDayNew,
}

func runDayNew(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *daemon.App) error {
		d, err := app.Store.NewDay(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "✅ Day 0 started for %s\n", d.Date)
		return nil
	})
}

// ─── day list ───────────────────────────────────────────────────────────────

var dayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List day records",
	Args:  cobra.NoArgs,
	RunE:  runDayList,
}

func runDayList(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *daemon.App) error {
		printDays(cmd, app.Store.Snapshot().Days)
		return nil
	})
}

func printDays(cmd *cobra.Command, days []domain.DayRecord) {
	tw := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDATE\tKCAL\tPROTEIN\tCARBS\tFAT\tDELTA\tEXERCISES")
	for i, d := range days {
		delta := ""
		if md, ok := macros.Delta(d); ok {
			delta = md.Sign() + fmt.Sprint(math.Abs(md.Delta))
			if md.Status == macros.DeltaMatch {
				delta = "ok"
			}
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			i, d.Date, d.Calories, d.Protein, d.Carbs, d.Fat, delta, len(d.Exercises))
	}
	tw.Flush()
}

// ─── day set ────────────────────────────────────────────────────────────────

var daySetCmd = &cobra.Command{
	Use:   "set DAY FIELD VALUE",
	Short: "Set date, calories, protein, carbs or fat on a day",
	Long: `Set one field on a day. FIELD is date, calories, protein, carbs or fat.
An empty VALUE ("") clears a macro; values that are not numbers or are
out of range are stored as 0.`,
	Args: cobra.ExactArgs(3),
	RunE: runDaySet,
}

func runDaySet(cmd *cobra.Command, args []string) error {
	i, err := parseIndex("DAY", args[0])
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(app *daemon.App) error {
		if err := app.Store.SetDayField(cmd.Context(), i, args[1], args[2]); err != nil {
			return err
		}
		d, _ := app.Store.Day(i)
		printDays(cmd, []domain.DayRecord{d})
		return nil
	})
}

// ─── day delete ─────────────────────────────────────────────────────────────

var dayDeleteCmd = &cobra.Command{
	Use:   "delete DAY",
	Short: "Delete a day record",
	Long: `Delete a day record. Without --yes this only shows what would be
deleted. Deleting the last remaining day leaves a fresh day for today.`,
	Args: cobra.ExactArgs(1),
	RunE: runDayDelete,
}

func runDayDelete(cmd *cobra.Command, args []string) error {
	i, err := parseIndex("DAY", args[0])
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")

	return withApp(cmd.Context(), func(app *daemon.App) error {
		d, err := app.Store.Day(i)
		if err != nil {
			return err
		}
		if err := app.Store.ArmDelete(i); err != nil {
			return err
		}
		if !yes {
			app.Store.CancelDelete()
			fmt.Fprintf(out(cmd), "Day %d (%s) would be deleted. Run again with --yes to confirm.\n", i, d.Date)
			return nil
		}
		if err := app.Store.ConfirmDelete(cmd.Context(), i); err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "✅ Day %d (%s) deleted.\n", i, d.Date)
		return nil
	})
}

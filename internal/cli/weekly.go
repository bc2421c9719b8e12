package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/macrolog/macrolog/internal/daemon"
)

func init() {
	rootCmd.AddCommand(weeklyCmd)
}

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show the last seven entries against targets",
	Long: `Show the seven most recent entries by date with per-day averages
and the current targets. Empty fields count as 0 in the averages.`,
	Args: cobra.NoArgs,
	RunE: runWeekly,
}

func runWeekly(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *daemon.App) error {
		wk := app.Store.Weekly()

		tw := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tKCAL\tPROTEIN\tCARBS\tFAT")
		for _, d := range wk.Entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Date, d.Calories, d.Protein, d.Carbs, d.Fat)
		}
		fmt.Fprintf(tw, "Average\t%g\t%g\t%g\t%g\n",
			wk.Averages.Calories, wk.Averages.Protein, wk.Averages.Carbs, wk.Averages.Fat)
		fmt.Fprintf(tw, "Target\t%g\t%g\t%g\t%g\n",
			wk.Targets.Calories, wk.Targets.Protein, wk.Targets.Carbs, wk.Targets.Fat)
		return tw.Flush()
	})
}

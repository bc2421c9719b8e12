package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/macrolog/macrolog/internal/daemon"
	"github.com/macrolog/macrolog/internal/domain"
)

func init() {
	rootCmd.AddCommand(targetsCmd)
}

var targetsCmd = &cobra.Command{
	Use:   "targets [GOAL_WEIGHT CALORIES]",
	Short: "Show or recompute macro targets",
	Long: `Without arguments, print the current targets. With a goal weight (lb)
and a daily calorie budget, recompute them: protein is 1 g per lb, fat
is a quarter of the calories and carbs take the rest.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or GOAL_WEIGHT CALORIES")
		}
		return nil
	},
	RunE: runTargets,
}

func runTargets(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(app *daemon.App) error {
		if len(args) == 0 {
			printTargets(cmd, app.Store.Snapshot().Targets)
			return nil
		}

		gw, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("goal weight %q is not a number", args[0])
		}
		cal, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("calories %q is not a number", args[1])
		}

		t, err := app.Store.SetTargets(cmd.Context(), gw, cal)
		if err != nil {
			return err
		}
		printTargets(cmd, t)
		return nil
	})
}

func printTargets(cmd *cobra.Command, t domain.MacroTargets) {
	fmt.Fprintf(out(cmd), "Goal weight: %g lb\n", t.GoalWeight)
	fmt.Fprintf(out(cmd), "  Calories:  %g kcal\n", t.Calories)
	fmt.Fprintf(out(cmd), "  Protein:   %g g\n", t.Protein)
	fmt.Fprintf(out(cmd), "  Carbs:     %g g\n", t.Carbs)
	fmt.Fprintf(out(cmd), "  Fat:       %g g\n", t.Fat)
}

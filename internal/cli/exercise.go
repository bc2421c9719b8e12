package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/macrolog/macrolog/internal/daemon"
	"github.com/macrolog/macrolog/internal/domain"
	"github.com/macrolog/macrolog/internal/infra/catalog"
)

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseSetCmd)
	exerciseCmd.AddCommand(exerciseRmCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
}

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage the exercises logged on a day",
}

// ─── exercise add ───────────────────────────────────────────────────────────

var exerciseAddCmd = &cobra.Command{
	Use:   "add DAY",
	Short: "Append an empty exercise entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runExerciseAdd,
}

func runExerciseAdd(cmd *cobra.Command, args []string) error {
	i, err := parseIndex("DAY", args[0])
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(app *daemon.App) error {
		j, err := app.Store.AddExercise(cmd.Context(), i)
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "✅ Exercise %d added to day %d\n", j, i)
		return nil
	})
}

// ─── exercise set ───────────────────────────────────────────────────────────

var exerciseSetCmd = &cobra.Command{
	Use:   "set DAY EX FIELD VALUE",
	Short: "Set one field of an exercise entry",
	Long: fmt.Sprintf(`Set one field of an exercise entry.

Selector fields cascade: category resets type, group and name; type
resets group and name; group resets name. Cardio entries use group %q
and only record a duration. Setting name to %q replaces the entry with
one entry per exercise in its group.

Metric fields are weight, sets, reps and duration (minutes).`, catalog.CardioGroup, catalog.SelectAll),
	Args: cobra.ExactArgs(4),
	RunE: runExerciseSet,
}

func runExerciseSet(cmd *cobra.Command, args []string) error {
	i, err := parseIndex("DAY", args[0])
	if err != nil {
		return err
	}
	j, err := parseIndex("EX", args[1])
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(app *daemon.App) error {
		if err := app.Store.SetExerciseField(cmd.Context(), i, j, args[2], args[3]); err != nil {
			return err
		}
		d, _ := app.Store.Day(i)
		printExercises(cmd, d.Exercises)
		return nil
	})
}

// ─── exercise rm ────────────────────────────────────────────────────────────

var exerciseRmCmd = &cobra.Command{
	Use:   "rm DAY EX",
	Short: "Remove an exercise entry",
	Args:  cobra.ExactArgs(2),
	RunE:  runExerciseRm,
}

func runExerciseRm(cmd *cobra.Command, args []string) error {
	i, err := parseIndex("DAY", args[0])
	if err != nil {
		return err
	}
	j, err := parseIndex("EX", args[1])
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(app *daemon.App) error {
		if err := app.Store.RemoveExercise(cmd.Context(), i, j); err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "✅ Exercise %d removed from day %d\n", j, i)
		return nil
	})
}

// ─── exercise list ──────────────────────────────────────────────────────────

var exerciseListCmd = &cobra.Command{
	Use:   "list DAY",
	Short: "List the exercises of a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runExerciseList,
}

func runExerciseList(cmd *cobra.Command, args []string) error {
	i, err := parseIndex("DAY", args[0])
	if err != nil {
		return err
	}
	return withApp(cmd.Context(), func(app *daemon.App) error {
		d, err := app.Store.Day(i)
		if err != nil {
			return err
		}
		printExercises(cmd, d.Exercises)
		return nil
	})
}

func printExercises(cmd *cobra.Command, list []domain.ExerciseEntry) {
	if len(list) == 0 {
		fmt.Fprintln(out(cmd), "No exercises logged.")
		return
	}
	tw := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCATEGORY\tTYPE\tGROUP\tNAME\tWEIGHT\tSETS\tREPS\tMIN")
	for j, e := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			j, e.Category, e.Type, e.Group, e.Name, e.Weight, e.Sets, e.Reps, e.Duration)
	}
	tw.Flush()
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macrolog/macrolog/internal/infra/catalog"
)

func init() {
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog [CATEGORY [TYPE [GROUP]]]",
	Short: "Browse the exercise catalog",
	Long: `Walk the exercise catalog one level at a time. With no arguments,
list categories; each extra argument descends a level.`,
	Args: cobra.MaximumNArgs(3),
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	var (
		title string
		items []string
	)
	switch len(args) {
	case 0:
		title, items = "Categories", catalog.Categories()
	case 1:
		title, items = "Types in "+args[0], catalog.TypesFor(args[0])
	case 2:
		title, items = "Groups in "+args[0]+"/"+args[1], catalog.GroupsFor(args[0], args[1])
	case 3:
		title, items = "Exercises in "+args[0]+"/"+args[1]+"/"+args[2], catalog.ExercisesFor(args[0], args[1], args[2])
	}

	if len(items) == 0 {
		return fmt.Errorf("nothing in the catalog under %v", args)
	}
	fmt.Fprintf(out(cmd), "%s (%d):\n", title, len(items))
	for _, it := range items {
		fmt.Fprintf(out(cmd), "  • %s\n", it)
	}
	return nil
}

// Command macrolog tracks daily macros and workouts.
package main

import (
	"os"

	"github.com/macrolog/macrolog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

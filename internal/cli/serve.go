package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/macrolog/macrolog/internal/daemon"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "", "Override [api].host")
	serveCmd.Flags().Int("port", 0, "Override [api].port")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON form API",
	Long: `Serve the local HTTP API that a form UI uses to edit targets, days
and exercises, download exports and upload imports. Stops on SIGINT or
SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		cfg.API.Host = host
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.API.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withApp(ctx, func(app *daemon.App) error {
		return app.Serve(ctx)
	})
}

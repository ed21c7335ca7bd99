package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/taskrank/taskrank/internal/api"
	"github.com/taskrank/taskrank/internal/config"
	"github.com/taskrank/taskrank/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the taskrank HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	addr := cfg.ListenAddr
	if flagAddr, _ := cmd.Flags().GetString("listen"); flagAddr != "" {
		addr = flagAddr
	}

	st, err := store.Open(context.Background(), cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	emitter, err := openTelemetry(cfg)
	if err != nil {
		return err
	}
	defer emitter.Close()

	srv := api.NewServer(newEngine(cfg), st,
		api.WithTelemetry(emitter),
		api.WithSuggestLimit(cfg.SuggestLimit),
	)
	return srv.ListenAndServe(addr)
}

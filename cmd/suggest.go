package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskrank/taskrank/internal/config"
	"github.com/taskrank/taskrank/internal/report"
	"github.com/taskrank/taskrank/internal/store"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest the next actionable tasks from the stored set",
	Args:  cobra.NoArgs,
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().IntP("limit", "n", 0, "how many tasks to suggest (default from config)")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	today, err := refDate(cmd)
	if err != nil {
		return err
	}

	limit := cfg.SuggestLimit
	if n, _ := cmd.Flags().GetInt("limit"); n > 0 {
		limit = n
	}

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	snapshot, err := st.LoadAll(ctx)
	if err != nil {
		return err
	}
	if len(snapshot) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tasks stored. Run `taskrank analyze --save` first.")
		return nil
	}

	res, err := scoreWithTelemetry(cfg, newEngine(cfg), snapshot, today)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), report.ReasonStrategy{Limit: limit}.Render(res))
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskrank/taskrank/internal/config"
	"github.com/taskrank/taskrank/internal/report"
	"github.com/taskrank/taskrank/internal/task"
	"github.com/taskrank/taskrank/internal/taskfile"
	"github.com/taskrank/taskrank/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [tasks.toml]",
	Short: "Re-rank the task file every time it changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	path := cfg.TasksFile
	if len(args) == 1 {
		path = args[0]
	}

	today, err := refDate(cmd)
	if err != nil {
		return err
	}

	eng := newEngine(cfg)
	rerank := func() {
		records, err := taskfile.Load(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
			return
		}
		tasks, rejected := task.ValidateBatch(records, today)
		for _, re := range rejected {
			fmt.Fprintf(cmd.ErrOrStderr(), "record %d rejected: %s\n", re.Index, re.Errors[0])
		}
		res := eng.Run(tasks, today)
		fmt.Fprint(cmd.OutOrStdout(), report.RankingStrategy{}.Render(res))
	}
	rerank()

	w, err := watch.New(path)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if change.Kind == watch.ChangeRemoved {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s removed, waiting for it to return\n", path)
				continue
			}
			rerank()
		case <-sig:
			return nil
		}
	}
}

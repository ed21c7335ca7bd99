package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskrank/taskrank/internal/config"
	"github.com/taskrank/taskrank/internal/task"
	"github.com/taskrank/taskrank/internal/taskfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate [tasks.toml]",
	Short: "Check a task file against the validation rules without scoring",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	path := cfg.TasksFile
	if len(args) == 1 {
		path = args[0]
	}

	today, err := refDate(cmd)
	if err != nil {
		return err
	}

	records, err := taskfile.Load(path)
	if err != nil {
		return err
	}

	tasks, rejected := task.ValidateBatch(records, today)
	for _, re := range rejected {
		fmt.Fprintf(cmd.OutOrStdout(), "record %d: %s\n", re.Index, re.Errors[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d valid, %d rejected\n", len(tasks), len(rejected))
	if len(rejected) > 0 {
		return fmt.Errorf("%s has invalid records", path)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/taskrank/taskrank/internal/config"
	"github.com/taskrank/taskrank/internal/engine"
	"github.com/taskrank/taskrank/internal/task"
	"github.com/taskrank/taskrank/internal/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "taskrank",
	Short: "Dependency-aware task priority ranking",
	Long: "Taskrank scores tasks by urgency, importance, effort and unblocking influence\n" +
		"over their dependency graph, quarantining cycles instead of mis-ranking them.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .taskrank.yaml)")
	rootCmd.PersistentFlags().String("today", "", "reference date as YYYY-MM-DD (default: current date)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".taskrank")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("TASKRANK")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// refDate resolves the reference date for scoring: the --today flag when
// set, the current calendar date otherwise.
func refDate(cmd *cobra.Command) (time.Time, error) {
	raw, _ := cmd.Flags().GetString("today")
	if raw == "" {
		return task.Midnight(time.Now()), nil
	}
	d, err := time.Parse(task.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q: expected YYYY-MM-DD", raw)
	}
	return d, nil
}

// newEngine builds an engine from the loaded configuration.
func newEngine(cfg config.Config) *engine.Engine {
	return engine.New(cfg.EngineOptions())
}

// openTelemetry opens the configured telemetry stream, or returns a nil
// (no-op) emitter when none is configured.
func openTelemetry(cfg config.Config) (*telemetry.Emitter, error) {
	if cfg.TelemetryPath == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(cfg.TelemetryPath)
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/endosim/simcheck/internal/config"
	"github.com/endosim/simcheck/internal/exitcode"
	"github.com/endosim/simcheck/internal/logging"
)

var (
	cfg        config.Config
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "simcheck",
	Short: "Validate simulation input file headers",
	Long: "Checks that patient, surgeon and operating room input files declare every required column " +
		"before a simulation run, and warns about columns the model will ignore.",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Path to YAML config file (schemas and inputs)")
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("SIMCHECK_DB_URL"), "Postgres connection string for the audit store (or set SIMCHECK_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.BoolVar(&cfg.PrintWarnings, "print-warnings", true, "Print unused-column warnings")
}

// loadConfig overlays the YAML config file; explicit flags keep precedence.
func loadConfig(cmd *cobra.Command, args []string) error {
	if configPath == "" {
		return nil
	}
	flagWarnings := cfg.PrintWarnings
	if err := cfg.LoadFromFile(configPath); err != nil {
		log := logging.Setup(cfg.LogFormat)
		log.Error().Err(err).Str("config", configPath).Msg("config load failed")
		os.Exit(exitcode.UsageError)
	}
	if cmd.Flags().Changed("print-warnings") {
		cfg.PrintWarnings = flagWarnings
	}
	return nil
}

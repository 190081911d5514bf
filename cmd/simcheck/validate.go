package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/endosim/simcheck/internal/check"
	"github.com/endosim/simcheck/internal/db"
	"github.com/endosim/simcheck/internal/exitcode"
	"github.com/endosim/simcheck/internal/logging"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate input file headers against their schemas",
	Example: "  simcheck validate --kind patient --file data/patients.tsv\n" +
		"  simcheck validate --config simcheck.yaml --record",
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&cfg.Kind, "kind", "", "File kind: patient, surgeon, operating_room, or one declared in --config")
	f.StringVar(&cfg.FilePath, "file", "", "Path to the input file (defaults to the inputs in --config)")
	f.StringVar(&cfg.Delimiter, "delimiter", "", `Column delimiter: a character, \t, tab, comma, semicolon or pipe (default: "," for .csv, tab otherwise)`)
	f.BoolVar(&cfg.Record, "record", false, "Store outcomes in the audit database")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	var rec check.Recorder
	if cfg.Record {
		pool, err := db.NewPool(ctx, cfg.DSN)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			os.Exit(exitcode.DBConnError)
		}
		defer pool.Close()
		rec = db.NewStore(pool)
	}

	sink := logging.NewWarningSink(log, cfg.PrintWarnings, nil)
	summary, err := check.Run(ctx, log, &cfg, sink, rec)
	if err != nil {
		if pe, ok := err.(*check.PhaseError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Str("file", pe.Path).Msg("validate failed")
			switch pe.Phase {
			case "config":
				os.Exit(exitcode.UsageError)
			case "record":
				os.Exit(exitcode.RecordError)
			case "cancel":
				os.Exit(exitcode.Cancelled)
			default:
				os.Exit(exitcode.IOError)
			}
		}
		log.Error().Err(err).Msg("validate failed")
		os.Exit(exitcode.IOError)
	}

	for _, r := range summary.Records {
		status := "OK"
		detail := ""
		if !r.OK {
			status = "FAIL"
			detail = "missing: " + strings.Join(r.Missing, ", ")
		} else if len(r.Unused) > 0 {
			detail = "unused: " + strings.Join(r.Unused, ", ")
		}
		fmt.Printf("%-4s  %-15s %s  %s\n", status, r.Kind, r.SourceFile, detail)
	}
	fmt.Printf("\n%d file(s) checked, %d failed (run %s)\n", len(summary.Records), summary.Failed(), summary.RunID)

	if summary.Failed() > 0 {
		os.Exit(exitcode.ValidationError)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/endosim/simcheck/internal/db"
	"github.com/endosim/simcheck/internal/exitcode"
	"github.com/endosim/simcheck/internal/logging"
)

var (
	historyKind  string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent recorded validations",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyKind, "kind", "", "Only show this file kind")
	f.IntVar(&historyLimit, "limit", 20, "Maximum number of records")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if cfg.DSN == "" {
		log.Error().Msg("--dsn or SIMCHECK_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}
	if historyLimit <= 0 {
		log.Error().Int("limit", historyLimit).Msg("--limit must be positive")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	recs, err := db.NewStore(pool).Recent(ctx, historyKind, historyLimit)
	if err != nil {
		log.Error().Err(err).Msg("history query failed")
		os.Exit(exitcode.RecordError)
	}

	for _, r := range recs {
		status := "OK"
		if !r.OK {
			status = "FAIL"
		}
		fmt.Printf("%s  %-4s  %-15s %s", r.ValidatedAt.Format("2006-01-02 15:04:05"), status, r.Kind, r.SourceFile)
		if len(r.Missing) > 0 {
			fmt.Printf("  missing: %s", strings.Join(r.Missing, ", "))
		}
		if len(r.Unused) > 0 {
			fmt.Printf("  unused: %s", strings.Join(r.Unused, ", "))
		}
		fmt.Println()
	}
	if len(recs) == 0 {
		fmt.Println("no recorded validations")
	}
	return nil
}

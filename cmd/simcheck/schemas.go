package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/endosim/simcheck/internal/exitcode"
	"github.com/endosim/simcheck/internal/logging"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List registered file kinds and their columns",
	RunE:  runSchemas,
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}

func runSchemas(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	reg, err := cfg.Registry()
	if err != nil {
		log.Error().Err(err).Msg("invalid schemas")
		os.Exit(exitcode.UsageError)
	}

	for _, kind := range reg.Kinds() {
		s, _ := reg.Lookup(kind)
		fmt.Printf("%s\n", kind)
		for _, f := range s.Fields() {
			flag := "optional"
			if f.Required {
				flag = "required"
			}
			name := f.Name
			if f.Family() {
				name += "<n>"
			}
			fmt.Printf("  %-24s %s\n", name, flag)
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/exitcode"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/grouper"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/logging"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Load and validate the annex tables, then print their size",
	Args:  cobra.NoArgs,
	RunE:  runTables,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd); err != nil {
		l := logging.Setup(cfg.LogFormat, cfg.LogLevel)
		l.Error().Err(err).Msg("config file invalid")
		os.Exit(exitcode.UsageError)
	}
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if err := cfg.ValidateTables(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	t, dur, err := grouper.LoadTables(log, cfg.TablesDir)
	if err != nil {
		exitOnPipelineError(log, err)
	}

	fmt.Println("=== msgrouper tables ===")
	fmt.Printf("Directory: %s\n", cfg.TablesDir)
	fmt.Printf("SHA-256:   %s\n", t.SHA256())
	fmt.Printf("Loaded in: %s\n", dur)
	fmt.Println()
	fmt.Printf("  %-40s %8s %8s %8s\n", "table", "rows", "markers", "unknown")
	for _, s := range t.Summary() {
		fmt.Printf("  %-40s %8d %8d %8d\n", s.Name, s.Rows, s.MarkerRows, s.UnknownCriteria)
	}
	fmt.Printf("\nTotal rows: %d\n", t.TotalRows())
	if unknown := t.UnknownCriteria(); len(unknown) > 0 {
		fmt.Printf("\nUnknown criteria (%d rows never match):\n", len(unknown))
		for _, u := range unknown {
			fmt.Printf("  %-20s %-8s %q\n", u.Table, u.Service, u.Text)
		}
	}
	return nil
}

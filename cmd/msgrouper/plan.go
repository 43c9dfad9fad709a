package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/exitcode"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/grouper"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/logging"
)

var planSample int64

var planCmd = &cobra.Command{
	Use:   "plan INPUT",
	Short: "Dry-run validation and service stats on a sample (no writes)",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	f := planCmd.Flags()
	f.Int64Var(&planSample, "sample", 1000, "Number of rows to classify (0 for all)")
	f.BoolVarP(&cfg.AllProceduresPrimary, "vsetky-vykony-hlavne", "v", false, "Treat every reported procedure as a possible primary procedure")
	f.BoolVarP(&cfg.EvaluateIncomplete, "vyhodnot-neuplne-pripady", "n", false, "Evaluate cases with missing or invalid values instead of rejecting them")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd); err != nil {
		l := logging.Setup(cfg.LogFormat, cfg.LogLevel)
		l.Error().Err(err).Msg("config file invalid")
		os.Exit(exitcode.UsageError)
	}
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	cfg.InputPath = args[0]
	cfg.ProgressEvery = 0
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	t, _, err := grouper.LoadTables(log, cfg.TablesDir)
	if err != nil {
		exitOnPipelineError(log, err)
	}

	plan, err := grouper.Plan(context.Background(), log, &cfg, t, planSample)
	if err != nil {
		exitOnPipelineError(log, err)
	}

	s := plan.Sample
	fmt.Println("=== msgrouper plan ===")
	fmt.Printf("File:         %s\n", plan.InputPath)
	fmt.Printf("SHA-256:      %s\n", plan.InputSHA256)
	fmt.Printf("Size:         %d bytes\n", plan.FileSize)
	fmt.Printf("Output:       %s\n", plan.OutputPath)
	if plan.TotalRows >= 0 {
		fmt.Printf("Total rows:   %d\n", plan.TotalRows)
	}
	fmt.Printf("Sampled:      %d rows\n", s.RowsRead)
	fmt.Printf("Rejected:     %d rows\n", s.RowsRejected)
	fmt.Printf("Unclassified: %d rows\n", s.RowsUnclassified)
	fmt.Println()
	printServices(s.ServicesByCode, 20)
	fmt.Println("Header validation: OK")
	return nil
}

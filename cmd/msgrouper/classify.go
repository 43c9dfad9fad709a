package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/exitcode"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/grouper"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/logging"
	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/records"
)

var classifyCmd = &cobra.Command{
	Use:   "classify INPUT [OUTPUT]",
	Short: "Assign medical services to every case of an input file",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.BoolVarP(&cfg.AllProceduresPrimary, "vsetky-vykony-hlavne", "v", false, "Treat every reported procedure as a possible primary procedure")
	f.BoolVarP(&cfg.EvaluateIncomplete, "vyhodnot-neuplne-pripady", "n", false, "Evaluate cases with missing or invalid values instead of rejecting them")
	f.BoolVarP(&cfg.KeepDuplicates, "ponechaj-duplicity", "d", false, "Keep duplicate services in the output")
	f.StringVar(&cfg.OutputFormat, "format", cfg.OutputFormat, "Output format: csv or parquet")
	f.IntVar(&cfg.ProgressEvery, "progress-every", cfg.ProgressEvery, "Log progress every N rows (0 disables)")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if err := applyConfigFile(cmd); err != nil {
		l := logging.Setup(cfg.LogFormat, cfg.LogLevel)
		l.Error().Err(err).Msg("config file invalid")
		os.Exit(exitcode.UsageError)
	}
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	cfg.InputPath = args[0]
	if len(args) == 2 {
		cfg.OutputPath = args[1]
	}
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t, tablesDur, err := grouper.LoadTables(log, cfg.TablesDir)
	if err != nil {
		exitOnPipelineError(log, err)
	}

	summary, err := grouper.Run(ctx, log, &cfg, t)
	if err != nil {
		exitOnPipelineError(log, err)
	}
	summary.DurationTables = tablesDur

	fmt.Printf("Classification complete: %d rows read, %d classified, %d rejected, %d unclassified (%.1fs)\n",
		summary.RowsRead, summary.RowsClassified, summary.RowsRejected, summary.RowsUnclassified,
		(summary.DurationTables + summary.DurationTotal).Seconds())
	fmt.Printf("Output: %s\n", summary.OutputPath)
	fmt.Printf("Input SHA-256:  %s\n", summary.InputSHA256)
	fmt.Printf("Tables SHA-256: %s\n", summary.TablesSHA256)
	printServices(summary.ServicesByCode, 10)
	return nil
}

func exitOnPipelineError(log zerolog.Logger, err error) {
	var pe *grouper.PipelineError
	if !errors.As(err, &pe) {
		log.Error().Err(err).Msg("classification failed")
		os.Exit(exitcode.WriteError)
	}
	log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("classification failed")
	switch {
	case errors.Is(err, context.Canceled):
		os.Exit(exitcode.Interrupted)
	case pe.Phase == grouper.PhaseTables:
		os.Exit(exitcode.TablesError)
	case pe.Phase == grouper.PhaseInput && errors.Is(err, records.ErrSchema):
		os.Exit(exitcode.ValidationError)
	case pe.Phase == grouper.PhaseInput:
		os.Exit(exitcode.UsageError)
	default:
		os.Exit(exitcode.WriteError)
	}
}

// printServices prints the most frequent services, most frequent first.
func printServices(counts map[string]int64, limit int) {
	if len(counts) == 0 {
		return
	}
	codes := make([]string, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		if counts[codes[i]] != counts[codes[j]] {
			return counts[codes[i]] > counts[codes[j]]
		}
		return codes[i] < codes[j]
	})
	if len(codes) > limit {
		codes = codes[:limit]
	}
	fmt.Println("Top services:")
	for _, code := range codes {
		fmt.Printf("  %-8s %d\n", code, counts[code])
	}
}

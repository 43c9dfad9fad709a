package main

import (
	"github.com/spf13/cobra"

	"github.com/Institut-zdravotnych-analyz/OSN-Algoritmus-MS/internal/config"
)

var (
	cfg        = config.Default()
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "msgrouper",
	Short: "OSN medical service grouper",
	Long: "Assigns medical services (medicínske služby) and their levels to hospital cases " +
		"according to the annex tables of regulation 531/2023.",
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	pf.StringVar(&cfg.TablesDir, "tables", "", "Directory with the annex tables")
	pf.StringVar(&configPath, "config", "", "Optional YAML config file")
}

// applyConfigFile merges the YAML config file into cfg. Flags set on the
// command line take precedence over the file.
func applyConfigFile(cmd *cobra.Command) error {
	if configPath == "" {
		return nil
	}
	file := cfg
	if err := file.LoadFromFile(configPath); err != nil {
		return err
	}

	flags := cmd.Flags()
	keep := func(name string, apply func()) {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			apply()
		}
	}
	keep("tables", func() { cfg.TablesDir = file.TablesDir })
	keep("format", func() { cfg.OutputFormat = file.OutputFormat })
	keep("log-format", func() { cfg.LogFormat = file.LogFormat })
	keep("log-level", func() { cfg.LogLevel = file.LogLevel })
	keep("vsetky-vykony-hlavne", func() { cfg.AllProceduresPrimary = file.AllProceduresPrimary })
	keep("vyhodnot-neuplne-pripady", func() { cfg.EvaluateIncomplete = file.EvaluateIncomplete })
	keep("ponechaj-duplicity", func() { cfg.KeepDuplicates = file.KeepDuplicates })
	keep("progress-every", func() { cfg.ProgressEvery = file.ProgressEvery })
	cfg.Delimiters = file.Delimiters
	return nil
}

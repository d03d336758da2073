// Package main provides the CLI entry point for timereport.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/time-butler/timereport/internal/app"
	"github.com/time-butler/timereport/internal/config"
	"github.com/time-butler/timereport/pkg/timereport"
	"github.com/time-butler/timereport/pkg/timereport/output"
)

const version = "3.0"

var (
	configPath string
	initConfig string
	summary    bool
	asJSON     bool
	pretty     bool
	onCorrupt  string
	logLevel   string
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timereport <report.csv> [archive.xlsx]",
		Short: "Append time reports from CSV files to a main Excel file",
		Long: `timereport appends weekly, monthly, or project time reports from CSV
files to a single xlsx archive. Weekly and monthly reports land in
per-year sheets, project reports in a sheet named after the project.
Rows already present in the archive are discarded.`,
		Example: `  timereport week24_report.csv
  timereport month5_report.csv main_reports.xlsx
  timereport SPA2-Generic_time_report.csv project_reports.xlsx
  timereport --summary main_reports.xlsx
  timereport --init-config timereport.yaml main_reports.xlsx`,
		Version:       "Time Report Processor v" + version,
		Args:          cobra.RangeArgs(0, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, stdout, stderr)
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.Flags().StringVar(&initConfig, "init-config", "", "Write the effective settings as YAML to this file and exit")
	rootCmd.Flags().BoolVar(&summary, "summary", false, "Print a summary of the archive and exit")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().StringVar(&onCorrupt, "on-corrupt", "", "Unreadable archive policy: fallback, backup, or fail")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, disabled")

	return rootCmd
}

func run(cmd *cobra.Command, args []string, stdout, stderr io.Writer) error {
	envLoaded := app.LoadEnv()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("on-corrupt") {
		cfg.OnCorrupt = onCorrupt
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	app.SetupLogging(stderr, cfg.LogLevel)
	if envLoaded {
		log.Debug().Msg("Loaded environment variables from .env file.")
	}

	if initConfig != "" {
		if len(args) > 0 {
			cfg.Store = args[len(args)-1]
		}
		if err := cfg.Save(initConfig); err != nil {
			return err
		}
		_, err := fmt.Fprintf(stdout, "Wrote settings to %s\n", initConfig)
		return err
	}

	// In summary mode the single positional argument is the archive.
	var csvPath string
	switch {
	case summary && len(args) == 1:
		cfg.Store = args[0]
	case summary && len(args) == 2:
		cfg.Store = args[1]
	case !summary && len(args) == 0:
		return fmt.Errorf("a CSV file is required")
	case len(args) == 2:
		csvPath, cfg.Store = args[0], args[1]
	case len(args) == 1:
		csvPath = args[0]
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	processor := timereport.NewProcessor(opts)

	var report *timereport.Report
	if summary {
		report, err = processor.Summary()
	} else {
		report, err = processor.Process(csvPath)
	}
	if err != nil {
		log.Error().Err(err).Msg("Processing failed")
		return err
	}

	if asJSON {
		data, err := output.ToJSON(report, pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
		_, err = fmt.Fprintln(stdout, string(data))
		return err
	}
	if summary {
		return output.WriteSummary(stdout, report)
	}
	return output.WriteReport(stdout, report)
}

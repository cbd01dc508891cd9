package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fopina/fixshift/internal/errors"
	"github.com/fopina/fixshift/internal/logger"
	"github.com/fopina/fixshift/internal/output"
	"github.com/fopina/fixshift/internal/shifter"
	"github.com/fopina/fixshift/internal/timestamp"
)

func newShiftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shift <fixture-file>",
		Short: "Shift fixture timestamps so the most recent becomes the target time",
		Long: `Shift every UTC timestamp string found under each fixture object's
"fields" by a single delta, so the most recent timestamp lands on the
target time (default: the current UTC time).

Values keep their original shape: date-only values stay date-only, and
fractional seconds keep their original digit count.`,
		Example: `  # Shift so the newest timestamp becomes now
  fixshift shift testdata/dojo.json

  # Write to a specific file
  fixshift shift testdata/dojo.json -o fresh.json

  # Anchor the newest timestamp on an explicit instant
  fixshift shift testdata/dojo.json --latest-time 2026-09-01T00:00:00Z

  # Count what would change without writing
  fixshift shift testdata/dojo.json --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: runShift,
	}

	cmd.Flags().StringP("output-file", "o", "", "path to output JSON file (default from config, output.json)")
	cmd.Flags().String("latest-time", "", "custom UTC target for the most recent fixture timestamp")
	cmd.Flags().String("report", "", "report format (text, json, yaml)")
	cmd.Flags().Bool("dry-run", false, "plan and count changes without writing any file")

	return cmd
}

func runShift(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	log := logger.New(cfg.Logging.Level)

	outputFile, _ := cmd.Flags().GetString("output-file")
	if outputFile == "" {
		outputFile = cfg.Shift.OutputFile
	}

	// Validate the target before any file is read.
	var target time.Time
	if latest, _ := cmd.Flags().GetString("latest-time"); latest != "" {
		var err error
		target, err = timestamp.ParseTarget(latest)
		if err != nil {
			return errors.New(errors.ErrorTypeFormat, err.Error())
		}
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")

	result, err := shifter.Run(shifter.Options{
		FixturePath: args[0],
		OutputPath:  outputFile,
		Target:      target,
		DryRun:      dryRun,
	}, log)
	if err != nil {
		return err
	}

	reportFormat, _ := cmd.Flags().GetString("report")
	if reportFormat == "" {
		reportFormat = cfg.Output.Format
	}

	report, err := output.FormatReport(result, reportFormat, cfg.Output.NoColor)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), report)

	return nil
}

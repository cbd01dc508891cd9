// Package output renders the run report in the supported formats.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fopina/fixshift/internal/shifter"
)

// FormatReport renders a run result in the requested format: "text" for
// humans, "json" or "yaml" for machines.
func FormatReport(result *shifter.Result, format string, noColor bool) (string, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal report: %w", err)
		}
		return string(data) + "\n", nil
	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", fmt.Errorf("failed to marshal report: %w", err)
		}
		return string(data), nil
	case "text", "":
		return formatText(result, noColor), nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", format)
	}
}

func formatText(result *shifter.Result, noColor bool) string {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	if noColor {
		bold.DisableColor()
		green.DisableColor()
		yellow.DisableColor()
	}

	var sb strings.Builder

	if result.NoChange {
		sb.WriteString(yellow.Sprint("No matching UTC date strings found. No changes made."))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Completed in %dms!\n", result.ElapsedMS))
		return sb.String()
	}

	sb.WriteString(bold.Sprintf("Dates moved up by %.1f days", result.DaysMoved))
	sb.WriteString("\n")
	sb.WriteString(separator())
	sb.WriteString(fmt.Sprintf("Updated %d date value(s).\n", result.Updated))
	sb.WriteString(fmt.Sprintf("Most recent original timestamp: %s\n", result.LatestBefore))
	sb.WriteString(fmt.Sprintf("New most recent timestamp:      %s\n", green.Sprint(result.LatestAfter)))
	if result.DryRun {
		sb.WriteString(yellow.Sprint("Dry run: no output file written."))
		sb.WriteString("\n")
	} else {
		sb.WriteString(fmt.Sprintf("Wrote updated fixture to:       %s\n", result.OutputPath))
	}
	sb.WriteString(fmt.Sprintf("Completed in %dms!\n", result.ElapsedMS))

	return sb.String()
}

func separator() string {
	width := 60
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}
	return strings.Repeat("-", width) + "\n"
}

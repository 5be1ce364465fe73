package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmarrero/acbtrack/internal/pipeline"
)

// OutputFormat specifies the report output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

func writeReport(w io.Writer, report *pipeline.RunReport) error {
	format := OutputFormat(flagFormat)
	if format == "" {
		format = FormatText
	}
	return WriteReport(w, report, format)
}

// WriteReport writes a join report in the given format.
func WriteReport(w io.Writer, report *pipeline.RunReport, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case FormatText:
		return writeTextReport(w, report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeTextReport(w io.Writer, report *pipeline.RunReport) error {
	if report.Players == 0 {
		fmt.Fprintln(w, "No players in the joined output.")
	} else {
		fmt.Fprintf(w, "Joined %d players: %d matched, %d unmatched, %d with games.\n",
			report.Players, report.Matched, report.Unmatched, report.WithGames)
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "\n%d warnings:\n", len(report.Warnings))
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}

	fmt.Fprintf(w, "\nOutput: %s\n", report.UnifiedFile)
	return nil
}

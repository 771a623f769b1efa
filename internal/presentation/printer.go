package presentation

import (
	"fmt"
	"io"
	"path/filepath"

	"pyxsync/internal/domain"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintRun writes the end-of-run summary.
func (p Printer) PrintRun(report domain.RunReport) {
	if len(report.Batches) > 0 {
		fmt.Fprintln(p.Writer, "Copying:")
		fmt.Fprintln(p.Writer)
		for _, line := range formatCopyLines(report) {
			fmt.Fprintln(p.Writer, line)
		}
		fmt.Fprintln(p.Writer)
	}

	if len(report.Errors) > 0 {
		fmt.Fprintln(p.Writer, "Not Copied:")
		for _, e := range report.Errors {
			fmt.Fprintf(p.Writer, "%s: %s\n", e.Category, e.Message)
		}
		fmt.Fprintln(p.Writer)
	}

	p.printSummary(report)

	if p.Verbose {
		warnings := warningLines(report)
		if len(warnings) > 0 {
			fmt.Fprintln(p.Writer)
			fmt.Fprintln(p.Writer, "Warnings:")
			for _, warning := range warnings {
				fmt.Fprintln(p.Writer, "- "+warning)
			}
		}
	}
}

func (p Printer) printSummary(report domain.RunReport) {
	counts := copiedCounts(report)
	line := fmt.Sprintf("Copied %d RAW, %d JPEG and %d VIDEO files", counts[domain.RAW], counts[domain.JPEG], counts[domain.VIDEO])
	switch {
	case report.DateRange.Earliest.IsZero():
		fmt.Fprintln(p.Writer, line+".")
	case report.DateRange.SingleDay():
		fmt.Fprintf(p.Writer, "%s taken on %s.\n", line, report.DateRange)
	default:
		fmt.Fprintf(p.Writer, "%s from %s until %s.\n", line,
			report.DateRange.Earliest.Format("2006-01-02"), report.DateRange.Latest.Format("2006-01-02"))
	}

	if report.Destination != "" {
		fmt.Fprintf(p.Writer, "Destination: %s\n", report.Destination)
	}
	if n := report.Warnings(); n > 0 {
		fmt.Fprintf(p.Writer, "%d warnings, see --verbose for details.\n", n)
	}

	switch report.Status {
	case domain.RunCancelled:
		fmt.Fprintln(p.Writer, "Transfer was cancelled, the destination is incomplete.")
	case domain.RunFailed:
		fmt.Fprintln(p.Writer, "Transfer failed.")
	}
}

func copiedCounts(report domain.RunReport) map[domain.MediaCategory]int {
	counts := map[domain.MediaCategory]int{}
	for _, b := range report.Batches {
		counts[b.Category] += len(b.Copied)
	}
	return counts
}

func formatCopyLines(report domain.RunReport) []string {
	var lines []string
	for _, batch := range report.Batches {
		rel := relativeTo(report.Destination, batch.Destination)
		for _, path := range batch.Copied {
			lines = append(lines, fmt.Sprintf("Copy %s  -> %s", filepath.Base(path), rel))
		}
	}

	if len(lines) <= 4 {
		return lines
	}
	head := lines[:2]
	tail := lines[len(lines)-2:]
	return append(append(head, "..."), tail...)
}

func relativeTo(root, dir string) string {
	if root == "" {
		return dir
	}
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return dir
	}
	return rel
}

func warningLines(report domain.RunReport) []string {
	var lines []string
	for _, batch := range report.Batches {
		for _, path := range batch.Skipped {
			lines = append(lines, fmt.Sprintf("%s was skipped (not a regular file)", path))
		}
		for _, c := range batch.Collisions {
			lines = append(lines, fmt.Sprintf("%s overwrote %s", c.Winner, c.Overwrites))
		}
	}
	return lines
}

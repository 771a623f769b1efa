package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"pyxsync/internal/domain"
)

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatYAML, "yml", "":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown report format %q (want yaml or json)", value)
}

type reportDoc struct {
	ID          string         `yaml:"id" json:"id"`
	Status      string         `yaml:"status" json:"status"`
	Sources     []string       `yaml:"sources" json:"sources"`
	Target      string         `yaml:"target" json:"target"`
	Camera      string         `yaml:"camera,omitempty" json:"camera,omitempty"`
	Dates       string         `yaml:"dates,omitempty" json:"dates,omitempty"`
	Destination string         `yaml:"destination,omitempty" json:"destination,omitempty"`
	Found       map[string]int `yaml:"found" json:"found"`
	Batches     []batchDoc     `yaml:"batches,omitempty" json:"batches,omitempty"`
	Errors      []errorDoc     `yaml:"errors,omitempty" json:"errors,omitempty"`
	StartedAt   time.Time      `yaml:"started_at" json:"started_at"`
	FinishedAt  time.Time      `yaml:"finished_at" json:"finished_at"`
	Duration    string         `yaml:"duration" json:"duration"`
}

type batchDoc struct {
	Category    string         `yaml:"category" json:"category"`
	Destination string         `yaml:"destination" json:"destination"`
	Copied      []string       `yaml:"copied,omitempty" json:"copied,omitempty"`
	Skipped     []string       `yaml:"skipped,omitempty" json:"skipped,omitempty"`
	Collisions  []collisionDoc `yaml:"collisions,omitempty" json:"collisions,omitempty"`
	Bytes       int64          `yaml:"bytes" json:"bytes"`
}

type collisionDoc struct {
	Name       string `yaml:"name" json:"name"`
	Overwrites string `yaml:"overwrites" json:"overwrites"`
	Winner     string `yaml:"winner" json:"winner"`
}

type errorDoc struct {
	Category string `yaml:"category" json:"category"`
	Message  string `yaml:"message" json:"message"`
}

func newReportDoc(report domain.RunReport) reportDoc {
	doc := reportDoc{
		ID:          report.ID,
		Status:      string(report.Status),
		Sources:     report.Sources,
		Target:      report.Target,
		Camera:      string(report.Camera),
		Destination: report.Destination,
		Found:       map[string]int{},
		StartedAt:   report.StartedAt,
		FinishedAt:  report.FinishedAt,
		Duration:    report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond).String(),
	}
	if !report.DateRange.Earliest.IsZero() {
		doc.Dates = report.DateRange.String()
	}
	for c, n := range report.Found {
		doc.Found[c.String()] = n
	}
	for _, b := range report.Batches {
		bd := batchDoc{
			Category:    b.Category.String(),
			Destination: b.Destination,
			Copied:      b.Copied,
			Skipped:     b.Skipped,
			Bytes:       b.Bytes,
		}
		for _, c := range b.Collisions {
			bd.Collisions = append(bd.Collisions, collisionDoc{Name: c.Name, Overwrites: c.Overwrites, Winner: c.Winner})
		}
		doc.Batches = append(doc.Batches, bd)
	}
	for _, e := range report.Errors {
		doc.Errors = append(doc.Errors, errorDoc{Category: e.Category.String(), Message: e.Message})
	}
	return doc
}

// EncodeReport writes report to w in the given format.
func EncodeReport(w io.Writer, report domain.RunReport, format Format) error {
	doc := newReportDoc(report)
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	case FormatYAML:
		data, err := yaml.Marshal(&doc)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	return fmt.Errorf("unknown report format %q", format)
}

// WriteReport writes the report file at path, or to stdout when path is "-".
func WriteReport(path string, report domain.RunReport, format Format) error {
	if path == "-" {
		return EncodeReport(os.Stdout, report, format)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := EncodeReport(file, report, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

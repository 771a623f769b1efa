package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
)

type Config struct {
	Sources      []string
	Target       string
	Verbose      bool
	Plain        bool
	ReportPath   string
	ReportFormat string
	HistoryDB    string
	LogFile      string
}

// BindFlags registers every transfer flag on fs, writing into cfg.
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringArrayVarP(&cfg.Sources, "source", "s", nil, "Source directory to copy from (repeatable)")
	fs.StringVarP(&cfg.Target, "target", "t", "", "Target directory to copy to")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&cfg.Plain, "plain", false, "Plain progress bar instead of the interactive UI")
	fs.StringVar(&cfg.ReportPath, "report", "", "Write a run report to this file (- for stdout)")
	fs.StringVar(&cfg.ReportFormat, "report-format", "yaml", "Run report format: yaml or json")
	fs.StringVar(&cfg.HistoryDB, "history-db", "", "SQLite file recording every run")
	fs.StringVar(&cfg.LogFile, "log-file", "", "Write logs to this file")
}

// ApplyEnv fills unset values from PYXSYNC_* variables.
func (c *Config) ApplyEnv() {
	if len(c.Sources) == 0 {
		c.Sources = envList("PYXSYNC_SOURCES")
	}
	if c.Target == "" {
		c.Target = envOrEmpty("PYXSYNC_TARGET")
	}
	if !c.Verbose {
		c.Verbose = envTruthy("PYXSYNC_VERBOSE")
	}
	if c.HistoryDB == "" {
		c.HistoryDB = envOrEmpty("PYXSYNC_HISTORY_DB")
	}
	if c.LogFile == "" {
		c.LogFile = envOrEmpty("PYXSYNC_LOG_FILE")
	}
}

func (c Config) Validate() error {
	if len(c.Sources) == 0 || c.Target == "" {
		return errors.New("at least one source and a target are required")
	}
	switch strings.ToLower(c.ReportFormat) {
	case "", "yaml", "yml", "json":
	default:
		return fmt.Errorf("invalid report format %q, use yaml or json", c.ReportFormat)
	}
	return nil
}

// Complete adds bare arguments as extra sources, fills the rest from the
// environment and validates the result.
func (c *Config) Complete(args []string) error {
	c.Sources = append(c.Sources, args...)
	c.ApplyEnv()
	return c.Validate()
}

func envOrEmpty(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envTruthy(key string) bool {
	val := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	return val == "1" || val == "true" || val == "yes" || val == "y"
}

func envList(key string) []string {
	var out []string
	for _, part := range filepath.SplitList(os.Getenv(key)) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

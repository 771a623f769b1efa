package cli

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"pyxsync/internal/app"
	"pyxsync/internal/config"
	"pyxsync/internal/domain"
	appErrors "pyxsync/internal/errors"
	"pyxsync/internal/events"
	"pyxsync/internal/infra/exif"
	"pyxsync/internal/infra/fs"
	"pyxsync/internal/logging"
	"pyxsync/internal/presentation"
	"pyxsync/internal/store"
	"pyxsync/internal/tui"
)

type runResult struct {
	report domain.RunReport
	err    error
}

func runTransfer(cmd *cobra.Command, cfg config.Config) error {
	ctx := cmd.Context()
	interactive := !cfg.Plain && isTerminal(cmd.OutOrStdout())

	logOut := io.Writer(cmd.ErrOrStderr())
	if interactive {
		logOut = io.Discard
	}
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return userError(appErrors.Wrap(appErrors.InvalidConfig, "open", cfg.LogFile, err))
		}
		defer file.Close()
		logOut = file
	}
	logger := logging.New(logOut, cfg.Verbose)

	format, err := presentation.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return userError(appErrors.Wrap(appErrors.InvalidConfig, "config", "", err))
	}

	runner := &app.Runner{
		FS:     fs.OSFS{},
		Exif:   exif.Reader{},
		Logger: logger,
	}
	if cfg.HistoryDB != "" {
		history, err := store.Open(cfg.HistoryDB)
		if err != nil {
			logger.Warnf("Run history unavailable: %v", err)
		} else {
			defer history.Close()
			runner.History = history
		}
	}

	var res runResult
	if interactive {
		res, err = runInteractive(ctx, runner, cfg)
		if err != nil {
			return userError(appErrors.Wrap(appErrors.Internal, "tui", "", err))
		}
	} else {
		runner.Observer = events.Multi{
			logging.EventLogger{Logger: logger},
			presentation.NewPlainProgress(cmd.ErrOrStderr()),
		}
		res.report, res.err = runner.Run(ctx, cfg.Sources, cfg.Target)
		presentation.Printer{Writer: cmd.OutOrStdout(), Verbose: cfg.Verbose}.PrintRun(res.report)
	}

	runLog := logger.With("run", res.report.ID)
	if res.err != nil {
		runLog.Warnf("Run finished with status %s (%s): %v", res.report.Status, appErrors.KindOf(res.err), res.err)
	} else {
		runLog.Infof("Run finished with status %s", res.report.Status)
	}

	if cfg.ReportPath != "" {
		if err := presentation.WriteReport(cfg.ReportPath, res.report, format); err != nil {
			logger.Errorf("Could not write report: %v", err)
			if res.err == nil {
				return userError(appErrors.Wrap(appErrors.IOFailure, "report", cfg.ReportPath, err))
			}
		}
	}

	return userError(res.err)
}

// runInteractive drives the runner on a worker goroutine while the UI owns
// the main one. Quitting the UI cancels the run and waits for it to stop.
func runInteractive(ctx context.Context, runner *app.Runner, cfg config.Config) (runResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.NewModel(tui.Config{
		Sources: cfg.Sources,
		Target:  cfg.Target,
		Verbose: cfg.Verbose,
		Cancel:  cancel,
	})
	program := tea.NewProgram(model)

	async := events.NewAsync(tui.NewObserver(program))
	runner.Observer = events.Multi{logging.EventLogger{Logger: runner.Logger}, async}

	done := make(chan runResult, 1)
	go func() {
		report, err := runner.Run(ctx, cfg.Sources, cfg.Target)
		async.Close()
		program.Send(tui.RunFinishedMsg{Report: report, Err: err})
		done <- runResult{report: report, err: err}
	}()

	_, uiErr := program.Run()
	cancel()
	res := <-done
	return res, uiErr
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

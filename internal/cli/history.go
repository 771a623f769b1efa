package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	appErrors "pyxsync/internal/errors"
	"pyxsync/internal/store"
)

func newHistoryCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded transfer runs",
		Long: `Lists the runs recorded with --history-db, newest first. Given a run id,
lists every file that run handled and what happened to it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = strings.TrimSpace(os.Getenv("PYXSYNC_HISTORY_DB"))
			}
			if dbPath == "" {
				return userError(appErrors.New(appErrors.InvalidConfig, "history", "", "--history-db or PYXSYNC_HISTORY_DB is required"))
			}

			history, err := store.Open(dbPath)
			if err != nil {
				return userError(appErrors.Wrap(appErrors.IOFailure, "open", dbPath, err))
			}
			defer history.Close()

			out := cmd.OutOrStdout()
			if len(args) == 1 {
				files, err := history.Files(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintf(out, "%-11s %-5s %s -> %s\n", f.Outcome, f.Category, f.SrcPath, f.Destination)
				}
				return nil
			}

			runs, err := history.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Fprintf(out, "%s  %s  %-9s %4d files  %s\n",
					r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.Status, r.Copied, describeRun(r))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "history-db", "", "SQLite file recording every run")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list")

	return cmd
}

func describeRun(r store.RunRecord) string {
	if r.Destination != "" {
		return r.Destination
	}
	if r.LastError != "" {
		return r.LastError
	}
	return strings.Join(r.Sources, ", ")
}

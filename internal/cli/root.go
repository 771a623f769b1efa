// Package cli wires configuration, adapters and presentation into cobra
// commands.
package cli

import (
	"errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"pyxsync/internal/config"
	appErrors "pyxsync/internal/errors"
)

func NewRootCmd() *cobra.Command {
	var cfg config.Config

	cmd := &cobra.Command{
		Use:   "pyxsync [source...]",
		Short: "Copy camera cards into camera and date folders",
		Long: `pyxsync copies RAW, JPEG and video files from one or more memory cards into
<target>/<camera>/<date or date range>, reading camera and capture dates
from the RAW files. JPEGs land in a JPG subfolder and videos in MOV.

An existing destination folder is never written into.`,
		Example: `  # Copy one card
  pyxsync -s /Volumes/SD -t ~/Pictures/Archive

  # Two cards from the same shoot, plain output and a JSON report
  pyxsync -t ~/Pictures/Archive --plain --report run.json --report-format json /Volumes/A /Volumes/B`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Complete(args); err != nil {
				return userError(appErrors.Wrap(appErrors.InvalidConfig, "config", "", err))
			}
			return runTransfer(cmd, cfg)
		},
	}

	config.BindFlags(cmd.Flags(), &cfg)
	cmd.AddCommand(newHistoryCmd())

	return cmd
}

func userError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(appErrors.UserMessage(err))
}

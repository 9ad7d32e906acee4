package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/corey/orgscan/internal/app"
	"github.com/corey/orgscan/internal/config"
	"github.com/corey/orgscan/internal/logging"
)

func newWatchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "watch [documents...]",
		Short: "Rescan whenever the deny-list or a document changes",
		Long: "Runs a full scan, then a fresh, independent scan each time an input file changes\n" +
			"and, with --schedule, on every tick of a cron expression. Stop with Ctrl-C.",
		RunE: runWatch,
	}
	addScanFlags(c.Flags())
	c.Flags().String(config.KeySchedule, "", `cron expression for periodic rescans, e.g. "*/15 * * * *" or "@hourly"`)
	return c
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg = cfg.WithDocuments(args)
	}

	a, err := app.New(app.Config{
		Settings: cfg,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
		Color:    useColor(cmd, cfg),
	})
	if err != nil {
		return err
	}
	return a.Watch(cmd.Context(), func(out *app.Outcome, err error) {
		switch {
		case errors.Is(err, app.ErrVerifyMismatch):
			logging.Error().Int("blocks", len(out.Mismatches)).Msg("verification failed")
		case err != nil:
			logging.Error().Err(err).Msg("scan failed")
		default:
			logging.Info().Int("violations", out.Result.Summary.UniqueViolations).Msg("scan complete")
		}
	})
}

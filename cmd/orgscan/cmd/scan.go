package cmd

import (
	"github.com/spf13/cobra"

	"github.com/corey/orgscan/internal/app"
	"github.com/corey/orgscan/internal/config"
)

func newScanCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "scan [documents...]",
		Short: "Scan documents once with every matcher",
		Long: "Splits each document into blank-line separated blocks, flags blocks mentioning\n" +
			"a deny-listed organization, and reports the deduplicated violations together\n" +
			"with per-matcher timings. Documents given as arguments replace the configured list.",
		RunE: runScan,
	}
	addScanFlags(c.Flags())
	c.Flags().Bool(config.KeyFailOnViolation, false, "exit with status 1 when violations are found")
	return c
}

func runScan(cmd *cobra.Command, args []string) error {
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
	out, err := a.Scan(cmd.Context())
	if err != nil {
		return err
	}
	if cfg.FailOnViolation && out.Result.Summary.UniqueViolations > 0 {
		return scanExit{code: exitViolations}
	}
	return nil
}

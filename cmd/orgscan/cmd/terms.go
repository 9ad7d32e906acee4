package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/corey/orgscan/internal/app"
)

func newTermsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "terms",
		Short: "Print the normalized deny-list",
		Long:  "Loads the deny-list the way a scan does (trimmed, lowercased, deduplicated) and prints it.",
		RunE:  runTerms,
	}
	addInputFlags(c.Flags())
	return c
}

func runTerms(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	a, err := app.New(app.Config{Settings: cfg, Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()})
	if err != nil {
		return err
	}
	ts, err := a.LoadTerms()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	c := useColor(cmd, cfg)
	bold, reset := "", ""
	if c {
		bold, reset = colorBold, colorReset
	}
	fmt.Fprintf(w, "%s%d terms%s │ %s\n", bold, ts.Len(), reset, cfg.DenyList)
	for i, term := range ts.Terms() {
		fmt.Fprintf(w, "%5d  %s\n", i+1, term)
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/corey/orgscan/internal/config"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGray  = "\033[90m"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: "Prints every setting after merging defaults, the config file, .env,\n" +
			"ORGSCAN_* environment variables, and flags.",
		RunE: runConfig,
	}
	addScanFlags(c.Flags())
	c.Flags().Bool(config.KeyFailOnViolation, false, "exit with status 1 when violations are found")
	c.Flags().String(config.KeySchedule, "", "cron expression for periodic rescans")
	return c
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	gray, reset := "", ""
	if useColor(cmd, cfg) {
		gray, reset = colorGray, colorReset
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s# config file: %s%s\n", gray, orNone(cfg.ConfigFile), reset)
	fmt.Fprintf(w, "%s# env file:    %s%s\n", gray, orNone(cfg.EnvFile), reset)
	_, err = w.Write(data)
	return err
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

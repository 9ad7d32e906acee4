package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/corey/orgscan/internal/config"
	"github.com/corey/orgscan/internal/logging"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "orgscan",
		Short: "Deny-listed organization checker",
		Long: "Scans text documents block by block for mentions of deny-listed organizations.\n" +
			"Every scan runs four matching strategies over the same input and compares their speed.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default: orgscan.yaml in the working directory)")
	pf.String("env-file", ".env", "dotenv file with ORGSCAN_* variables")
	pf.String(config.KeyLogLevel, "info", "log level: trace, debug, info, warn, error")
	pf.String(config.KeyColor, "auto", "color output: auto, always, never")
	pf.Bool("no-color", false, "disable color output")

	root.AddCommand(newScanCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newTermsCmd())
	root.AddCommand(newConfigCmd())
	return root
}

// addInputFlags registers the flags naming the scan inputs.
func addInputFlags(fs *pflag.FlagSet) {
	fs.String(config.KeyDenyList, config.DefaultDenyList, "deny-list file, one organization per line")
	fs.StringArray(config.KeyDocuments, config.DefaultDocuments(), "document to scan (repeatable)")
	fs.String(config.KeyEncoding, "utf-8", "document charset, any WHATWG label (windows-1251, koi8-r, ...)")
}

// addScanFlags registers the flags shared by scan and watch.
func addScanFlags(fs *pflag.FlagSet) {
	addInputFlags(fs)
	fs.Bool(config.KeyParallel, false, "run the four passes concurrently")
	fs.String(config.KeyVerify, "", "cross-check the automaton against a reference library: petar, bobusumisu")
	fs.String(config.KeyOutput, "", "also write the report to a .json or .yaml file")
	fs.Bool(config.KeyLogFile, false, "tee the report to orgscan_<timestamp>.log")
	fs.String(config.KeyLogDir, ".", "directory for the log file")
}

// loadConfig resolves settings for cmd and applies the log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(cmd.Flags(), config.Options{ConfigFile: cfgFile, EnvFile: envFile})
	if err != nil {
		return nil, err
	}
	if err := logging.Configure(cfg.LogLevel, cmd.ErrOrStderr(), nil); err != nil {
		return nil, err
	}
	if cfg.ConfigFile != "" {
		logging.Debug().Str("path", cfg.ConfigFile).Msg("config file loaded")
	}
	return cfg, nil
}

// useColor decides whether cmd's output is colored: --no-color wins, then
// the color setting, where "auto" means stdout is a terminal.
func useColor(cmd *cobra.Command, cfg *config.Config) bool {
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		return false
	}
	return colorEnabled(cfg.Color, stdoutIsTerminal)
}

func colorEnabled(setting string, isTerminal func() bool) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal()
	}
}

func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

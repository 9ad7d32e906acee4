// Package config resolves orgscan settings.
//
// Sources, lowest precedence first:
//  1. Built-in defaults (DefaultDenyList, DefaultDocuments, ...)
//  2. A config file: --config, or orgscan.{yaml,toml,json} in the working directory
//  3. A .env file (never overrides variables already set in the environment)
//  4. ORGSCAN_* environment variables, e.g. ORGSCAN_DENY_LIST
//  5. Command-line flags that were explicitly set
//
// Environment and .env values for list keys (documents) are split with the
// platform path-list separator, like PATH.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/corey/orgscan/internal/logging"
	"github.com/corey/orgscan/internal/ports"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "ORGSCAN"

// Setting keys. Flags use the same names.
const (
	KeyDenyList        = "deny-list"
	KeyDocuments       = "documents"
	KeyEncoding        = "encoding"
	KeyLogLevel        = "log-level"
	KeyLogFile         = "log-file"
	KeyLogDir          = "log-dir"
	KeyParallel        = "parallel"
	KeyVerify          = "verify"
	KeyColor           = "color"
	KeyOutput          = "output"
	KeyFailOnViolation = "fail-on-violation"
	KeySchedule        = "schedule"
)

// Keys lists every setting key in display order.
func Keys() []string {
	return []string{
		KeyDenyList, KeyDocuments, KeyEncoding, KeyLogLevel, KeyLogFile, KeyLogDir,
		KeyParallel, KeyVerify, KeyColor, KeyOutput, KeyFailOnViolation, KeySchedule,
	}
}

// Default input files.
const DefaultDenyList = "Запрещенные организации.txt"

// DefaultDocuments returns the default document list.
func DefaultDocuments() []string {
	return []string{
		"Список документов ams.txt",
		"Список документов arb.txt",
		"Список документов r002.txt",
	}
}

// Config holds every resolved setting.
type Config struct {
	DenyList        string   `json:"deny_list" yaml:"deny-list"`
	Documents       []string `json:"documents" yaml:"documents"`
	Encoding        string   `json:"encoding" yaml:"encoding"`
	LogLevel        string   `json:"log_level" yaml:"log-level"`
	LogFile         bool     `json:"log_file" yaml:"log-file"`
	LogDir          string   `json:"log_dir" yaml:"log-dir"`
	Parallel        bool     `json:"parallel" yaml:"parallel"`
	Verify          string   `json:"verify" yaml:"verify"`
	Color           string   `json:"color" yaml:"color"`
	Output          string   `json:"output" yaml:"output"`
	FailOnViolation bool     `json:"fail_on_violation" yaml:"fail-on-violation"`
	Schedule        string   `json:"schedule" yaml:"schedule"`

	// ConfigFile and EnvFile name the files actually read, if any.
	ConfigFile string `json:"-" yaml:"-"`
	EnvFile    string `json:"-" yaml:"-"`
}

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDenyList, DefaultDenyList)
	v.SetDefault(KeyDocuments, DefaultDocuments())
	v.SetDefault(KeyEncoding, "utf-8")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, false)
	v.SetDefault(KeyLogDir, ".")
	v.SetDefault(KeyParallel, false)
	v.SetDefault(KeyVerify, "")
	v.SetDefault(KeyColor, "auto")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyFailOnViolation, false)
	v.SetDefault(KeySchedule, "")
}

// Options selects the optional files Load reads.
type Options struct {
	// ConfigFile is an explicit config file path; it must exist when set.
	ConfigFile string
	// SearchDir is where orgscan.{yaml,toml,json} is looked up when
	// ConfigFile is empty. Empty means the working directory.
	SearchDir string
	// EnvFile is a .env path; a missing file is ignored.
	EnvFile string
}

// Load resolves the configuration. flags may be nil.
func Load(flags *pflag.FlagSet, opts Options) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	cfg := &Config{}

	if opts.EnvFile != "" {
		err := godotenv.Load(opts.EnvFile)
		switch {
		case err == nil:
			cfg.EnvFile = opts.EnvFile
		case errors.Is(err, fs.ErrNotExist):
			logging.Debug().Str("path", opts.EnvFile).Msg("no .env file")
		default:
			return nil, &ports.ConfigurationError{Source: opts.EnvFile, Err: err}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ports.ConfigurationError{Source: opts.ConfigFile, Err: err}
		}
	} else {
		dir := opts.SearchDir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName("orgscan")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, &ports.ConfigurationError{Source: "orgscan config", Err: err}
			}
		}
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if flags != nil {
		for _, key := range Keys() {
			if f := flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", key, err)
				}
			}
		}
	}

	cfg.DenyList = strings.TrimSpace(v.GetString(KeyDenyList))
	cfg.Documents = stringList(v.Get(KeyDocuments))
	cfg.Encoding = v.GetString(KeyEncoding)
	cfg.LogLevel = v.GetString(KeyLogLevel)
	cfg.LogFile = v.GetBool(KeyLogFile)
	cfg.LogDir = v.GetString(KeyLogDir)
	cfg.Parallel = v.GetBool(KeyParallel)
	cfg.Verify = strings.ToLower(strings.TrimSpace(v.GetString(KeyVerify)))
	cfg.Color = strings.ToLower(strings.TrimSpace(v.GetString(KeyColor)))
	cfg.Output = v.GetString(KeyOutput)
	cfg.FailOnViolation = v.GetBool(KeyFailOnViolation)
	cfg.Schedule = strings.TrimSpace(v.GetString(KeySchedule))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// stringList normalizes the shapes viper returns for a list setting.
func stringList(val any) []string {
	var raw []string
	switch t := val.(type) {
	case nil:
		return nil
	case []string:
		raw = t
	case []any:
		for _, item := range t {
			raw = append(raw, fmt.Sprint(item))
		}
	case string:
		raw = filepath.SplitList(t)
	default:
		raw = []string{fmt.Sprint(t)}
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the settings that do not need an adapter to verify.
func (c *Config) Validate() error {
	if c.DenyList == "" {
		return &ports.ConfigurationError{Source: KeyDenyList, Err: errors.New("deny-list path is required")}
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return &ports.ConfigurationError{Source: KeyColor, Err: fmt.Errorf("want auto, always or never, got %q", c.Color)}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return &ports.ConfigurationError{Source: KeyLogLevel, Err: err}
	}
	if c.Output != "" {
		switch strings.ToLower(filepath.Ext(c.Output)) {
		case ".json", ".yaml", ".yml":
		default:
			return &ports.ConfigurationError{Source: KeyOutput, Err: fmt.Errorf("unsupported report format %q (use .json, .yaml or .yml)", c.Output)}
		}
	}
	return nil
}

// WithDocuments returns a copy of c reading the given documents instead.
func (c *Config) WithDocuments(docs []string) *Config {
	cp := *c
	cp.Documents = append([]string(nil), docs...)
	return &cp
}

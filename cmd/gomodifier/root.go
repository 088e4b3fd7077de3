package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/sandrolain/gomodifier"
	"github.com/sandrolain/gomodifier/pkg/logger"
)

const defaultConfigPath = ".gomodifier.yaml"

// Config is the content of the YAML configuration file. Command line flags
// take precedence over it.
type Config struct {
	Locale      string  `yaml:"locale"`
	Concurrency int     `yaml:"concurrency"`
	Rate        float64 `yaml:"rate"`
	Indent      bool    `yaml:"indent"`
	Verbose     bool    `yaml:"verbose"`
}

// app holds the state shared by the subcommands.
type app struct {
	out, errOut io.Writer

	configPath string
	flags      Config
	cfg        Config

	logger   *slog.Logger
	modifier *gomodifier.Modifier
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	rootCmd := &cobra.Command{
		Use:   "gomodifier",
		Short: "Apply string and date modifier functions",
		Long: `gomodifier applies the modifier functions (toLowerCase, toUpperCase, trim,
concat, substring, join, split, leftPad, rightPad, transformDate) to JSON values,
one call at a time or in batches read from YAML, JSON or NDJSON files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default "+defaultConfigPath+" when present)")
	pf.StringVar(&a.flags.Locale, "locale", "", "BCP 47 locale for toLowerCase/toUpperCase (default: locale-neutral)")
	pf.IntVar(&a.flags.Concurrency, "concurrency", 0, "batch workers (default: number of CPUs)")
	pf.Float64Var(&a.flags.Rate, "rate", 0, "maximum batch calls per second (default: unlimited)")
	pf.BoolVarP(&a.flags.Verbose, "verbose", "v", false, "log every call to stderr")
	pf.BoolVar(&a.flags.Indent, "indent", false, "indent JSON output")

	rootCmd.AddCommand(
		newApplyCmd(a),
		newRunCmd(a),
		newListCmd(a),
		newVersionCmd(a),
	)
	return rootCmd
}

// setup merges the config file with the flags and builds the logger and the
// Modifier.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	pf := cmd.Flags()
	if pf.Changed("locale") {
		cfg.Locale = a.flags.Locale
	}
	if pf.Changed("concurrency") {
		cfg.Concurrency = a.flags.Concurrency
	}
	if pf.Changed("rate") {
		cfg.Rate = a.flags.Rate
	}
	if pf.Changed("verbose") {
		cfg.Verbose = a.flags.Verbose
	}
	if pf.Changed("indent") {
		cfg.Indent = a.flags.Indent
	}
	a.cfg = cfg

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	a.logger = logger.New(a.errOut, level)

	tag := language.Und
	if cfg.Locale != "" {
		tag, err = language.Parse(cfg.Locale)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
		}
	}
	a.modifier, err = gomodifier.New(gomodifier.WithLocale(tag))
	if err != nil {
		return fmt.Errorf("failed to build function registry: %w", err)
	}
	a.logger.Debug("configured", "locale", tag.String(), "concurrency", cfg.Concurrency, "rate", cfg.Rate)
	return nil
}

// loadConfig reads the YAML config at path. An empty path reads
// defaultConfigPath when it exists.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

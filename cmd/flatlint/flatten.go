// File: lixenwraith/flatlint/cmd/flatlint/flatten.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/flatlint"
)

// flattenFlags holds flags that are not tool settings
type flattenFlags struct {
	settingsFile string
	verbose      bool
	watch        bool
	strictExit   bool
	noModules    bool
	printOrigins bool
}

// newFlattenCmd builds the root command, which flattens the configuration
// found in the working directory
func newFlattenCmd(stdout, stderr io.Writer) *cobra.Command {
	var flags flattenFlags
	defaults := flatlint.DefaultSettings()

	cmd := &cobra.Command{
		Use:   "flatlint",
		Short: "Flatten an ESLint configuration and everything it extends",
		Long: `flatlint resolves the root ESLint configuration of a project and every
configuration it transitively extends, then writes a single configuration with
no extends field and one merged rules object.

The root is the first of .eslintrc, .eslintrc.json, .eslintrc.yaml and
.eslintrc.yml found in the base directory. The output is written next to it
with the leading dot removed (.eslintrc -> eslintrc).

Settings are read from flags, FLATLINT_* environment variables and
.flatlint.toml, in that order of precedence.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFlatten(cmd, flags, stdout, stderr)
			if err != nil && flags.strictExit {
				return &ExitError{Code: 1, Err: err}
			}
			return err
		},
	}

	fs := cmd.Flags()
	fs.StringP("base-dir", "d", defaults.BaseDir, "Directory containing the root configuration")
	fs.String("dependency-dir", defaults.DependencyDir, "Installed dependency directory below the base directory")
	fs.String("package-prefix", defaults.PackagePrefix, "Name prefix of shareable configuration packages")
	fs.String("package-root", defaults.PackageRoot, "Root configuration file inside a package")
	fs.StringSlice("candidates", defaults.Candidates, "Root configuration names in search order")
	fs.Int64("sentinel", defaults.Sentinel, "Value written in place of infinite numbers")
	fs.Bool("show-duplicates", defaults.ShowDuplicates, "Log every overwritten rule value")
	fs.String("node-binary", defaults.NodeBinary, "Node executable used to evaluate configuration modules")
	fs.Duration("module-timeout", defaults.ModuleTimeout, "Maximum duration of one module evaluation")
	fs.String("output-format", defaults.OutputFormat, "Output encoding: 'auto', 'json' or 'yaml'")
	fs.String("log-level", defaults.LogLevel, "Logging level: 'debug', 'info', 'warn' or 'error'")

	fs.StringVar(&flags.settingsFile, "settings", "", "Settings file (default <base-dir>/"+flatlint.DefaultSettingsFile+")")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "Shorthand for --log-level=debug")
	fs.BoolVarP(&flags.watch, "watch", "w", false, "Flatten again whenever a loaded configuration changes")
	fs.BoolVar(&flags.strictExit, "strict-exit", false, "Exit with status 1 on failure")
	fs.BoolVar(&flags.noModules, "no-modules", false, "Disable evaluation of configuration modules")
	fs.BoolVar(&flags.printOrigins, "print-origins", false, "Print the source of every final rule")

	return cmd
}

// runFlatten loads settings, builds the flattener and runs it once or in watch mode
func runFlatten(cmd *cobra.Command, flags flattenFlags, stdout, stderr io.Writer) error {
	settingsFile := flags.settingsFile
	if settingsFile == "" {
		baseDir, _ := cmd.Flags().GetString("base-dir")
		settingsFile = filepath.Join(baseDir, flatlint.DefaultSettingsFile)
	}

	settings, sources, err := flatlint.LoadSettingsWithSources(flatlint.SettingsOptions{
		File:      settingsFile,
		EnvPrefix: flatlint.DefaultEnvPrefix,
		Flags:     cmd.Flags(),
	})
	if err != nil {
		return err
	}
	if flags.verbose {
		settings.LogLevel = "debug"
	}

	logger, err := newLogger(settings.LogLevel, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	for _, key := range sortedKeys(sources) {
		if sources[key] != flatlint.SourceDefault {
			logger.Debug("Setting override", zap.String("key", key), zap.String("source", string(sources[key])))
		}
	}

	builder := flatlint.NewBuilder().
		WithSettings(settings).
		WithLogger(logger)
	if flags.noModules {
		builder = builder.WithModuleLoader(nil)
	}

	flattener, err := builder.Build()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flags.watch {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("Watching for configuration changes, press Ctrl+C to exit")
		return flattener.Watch(ctx, flatlint.WatchOptions{
			Debounce: flatlint.DefaultDebounce,
			OnResult: func(res *flatlint.Result) {
				printSummary(stdout, res)
			},
			OnError: func(err error) {
				printError(stderr, err)
			},
		})
	}

	res, err := flattener.Run(ctx)
	if err != nil {
		return err
	}

	if flags.printOrigins {
		printOrigins(stdout, res)
	}
	printSummary(stdout, res)
	return nil
}

// sortedKeys returns the keys of m in lexical order
func sortedKeys(m map[string]flatlint.Source) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// newLogger creates a console logger on w at the given level
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = ""
	encoderConfig.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}

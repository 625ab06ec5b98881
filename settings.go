// File: lixenwraith/flatlint/settings.go
package flatlint

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
)

// DefaultSettingsFile is looked up in the working directory
const DefaultSettingsFile = ".flatlint.toml"

// DefaultEnvPrefix is prepended to environment variable names
const DefaultEnvPrefix = "FLATLINT_"

// Source identifies where a setting value came from
type Source string

const (
	// SourceDefault represents the built-in default values
	SourceDefault Source = "default"
	// SourceFile represents values loaded from the settings file
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents values loaded from command-line flags
	SourceCLI Source = "cli"
)

// Settings configures the flattener itself
type Settings struct {
	BaseDir        string        `toml:"base_dir"`
	DependencyDir  string        `toml:"dependency_dir"`
	PackagePrefix  string        `toml:"package_prefix"`
	PackageRoot    string        `toml:"package_root"`
	Candidates     []string      `toml:"candidates"`
	Sentinel       int64         `toml:"sentinel"`
	ShowDuplicates bool          `toml:"show_duplicates"`
	NodeBinary     string        `toml:"node_binary"`
	ModuleTimeout  time.Duration `toml:"module_timeout"`
	OutputFormat   string        `toml:"output_format"`
	LogLevel       string        `toml:"log_level"`
}

// DefaultSettings returns the built-in settings
func DefaultSettings() Settings {
	return Settings{
		BaseDir:        ".",
		DependencyDir:  DefaultDependencyDir,
		PackagePrefix:  DefaultPackagePrefix,
		PackageRoot:    DefaultPackageRoot,
		Candidates:     DefaultCandidates(),
		Sentinel:       DefaultSentinel,
		ShowDuplicates: true,
		NodeBinary:     "node",
		ModuleTimeout:  DefaultModuleTimeout,
		OutputFormat:   string(OutputAuto),
		LogLevel:       "info",
	}
}

// Validate checks settings for values the flattener cannot run with
func (s Settings) Validate() error {
	if len(s.Candidates) == 0 {
		return fmt.Errorf("candidates must not be empty")
	}
	if s.Sentinel <= 0 {
		return fmt.Errorf("sentinel must be positive, got %d", s.Sentinel)
	}
	if s.ModuleTimeout < 0 {
		return fmt.Errorf("module_timeout must not be negative")
	}
	if _, err := ParseOutputFormat(s.OutputFormat); err != nil {
		return err
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be 'debug', 'info', 'warn', or 'error'", s.LogLevel)
	}
	return nil
}

// SettingsOptions configures LoadSettings
type SettingsOptions struct {
	// File is the TOML settings file, a missing file is not an error
	File string

	// EnvPrefix is prepended to environment variable names
	// Example: "FLATLINT_" maps "dependency_dir" to "FLATLINT_DEPENDENCY_DIR"
	EnvPrefix string

	// LookupEnv reads environment variables, defaults to os.LookupEnv
	LookupEnv func(key string) (string, bool)

	// Flags holds command-line overrides. Only flags marked as changed apply,
	// flag names map to keys with dashes replaced by underscores.
	Flags *pflag.FlagSet
}

// LoadSettings layers defaults, file, environment and flags, lowest to highest
// precedence, and decodes the result into Settings
func LoadSettings(opts SettingsOptions) (Settings, error) {
	settings, _, err := LoadSettingsWithSources(opts)
	return settings, err
}

// LoadSettingsWithSources is LoadSettings that also reports, per settings key,
// the layer its final value came from
func LoadSettingsWithSources(opts SettingsOptions) (Settings, map[string]Source, error) {
	layered, err := settingsToMap(DefaultSettings())
	if err != nil {
		return Settings{}, nil, err
	}
	sources := make(map[string]Source, len(layered))
	for key := range layered {
		sources[key] = SourceDefault
	}

	// Settings file
	if opts.File != "" {
		fileValues, err := loadSettingsFile(opts.File)
		if err != nil {
			return Settings{}, nil, err
		}
		for key, value := range fileValues {
			if _, known := layered[key]; !known {
				return Settings{}, nil, fmt.Errorf("unknown setting %q in '%s'", key, opts.File)
			}
			layered[key] = value
			sources[key] = SourceFile
		}
	}

	// Environment
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for key := range layered {
		if value, ok := lookup(envName(opts.EnvPrefix, key)); ok {
			layered[key] = value
			sources[key] = SourceEnv
		}
	}

	// Command-line flags
	if opts.Flags != nil {
		var flagErr error
		opts.Flags.Visit(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, known := layered[key]; !known || flagErr != nil {
				return
			}
			if f.Value.Type() == "stringSlice" {
				values, err := opts.Flags.GetStringSlice(f.Name)
				if err != nil {
					flagErr = err
					return
				}
				layered[key] = values
			} else {
				layered[key] = f.Value.String()
			}
			sources[key] = SourceCLI
		})
		if flagErr != nil {
			return Settings{}, nil, flagErr
		}
	}

	var settings Settings
	if err := decodeSettings(layered, &settings); err != nil {
		return Settings{}, nil, err
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return settings, sources, nil
}

// loadSettingsFile reads a TOML settings file
func loadSettingsFile(path string) (map[string]any, error) {
	values := make(map[string]any)
	if _, err := toml.DecodeFile(path, &values); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse TOML settings '%s': %w", path, err)
	}
	return values, nil
}

// envName maps a settings key to its environment variable
func envName(prefix, key string) string {
	return prefix + strings.ToUpper(key)
}

// settingsToMap flattens Settings into a key/value map using its toml tags
func settingsToMap(s Settings) (map[string]any, error) {
	out := make(map[string]any)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "toml",
	})
	if err != nil {
		return nil, fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(s); err != nil {
		return nil, fmt.Errorf("failed to encode default settings: %w", err)
	}
	return out, nil
}

// decodeSettings decodes a layered map into Settings with string conversions
func decodeSettings(layered map[string]any, target *Settings) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "toml",
		WeaklyTypedInput: true,
		ZeroFields:       true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			stringToBoolHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}
	if err := decoder.Decode(layered); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	return nil
}

// stringToBoolHookFunc accepts the strconv.ParseBool spellings for bool fields,
// weak decoding alone rejects values such as "yes" with an unhelpful message
func stringToBoolHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t.Kind() != reflect.Bool {
			return data, nil
		}
		switch strings.ToLower(strings.TrimSpace(data.(string))) {
		case "1", "t", "true", "yes", "on":
			return true, nil
		case "0", "f", "false", "no", "off", "":
			return false, nil
		default:
			return nil, fmt.Errorf("invalid boolean value %q", data)
		}
	}
}

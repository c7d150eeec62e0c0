package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tacogips/clismith/internal/debug"
)

// Settings is the configuration of the clismith tool itself, as opposed to
// the raw CLI description documents it generates code from.
type Settings struct {
	// Output configures terminal output.
	Output OutputSettings `mapstructure:"output"`
	// Generate configures file generation.
	Generate GenerateSettings `mapstructure:"generate"`
	// Analyzer holds the feature analyzer thresholds.
	Analyzer AnalyzerSettings `mapstructure:"analyzer"`
	// Cache configures the component store cache.
	Cache CacheSettings `mapstructure:"cache"`
}

// OutputSettings represents output and display settings.
type OutputSettings struct {
	// Color enables colored terminal output.
	Color bool `mapstructure:"color"`
	// Quiet suppresses non-error output.
	Quiet bool `mapstructure:"quiet"`
}

// GenerateSettings represents file generation settings.
type GenerateSettings struct {
	// OutputDir is the default directory generated files are written under.
	OutputDir string `mapstructure:"output_dir"`
	// Overwrite replaces existing generated files.
	Overwrite bool `mapstructure:"overwrite"`
	// TemplatesDir overrides the embedded templates with a directory on disk.
	TemplatesDir string `mapstructure:"templates_dir"`
	// Skip lists doublestar patterns of output paths that are never written.
	Skip []string `mapstructure:"skip"`
}

// AnalyzerSettings holds the size thresholds under which a CLI is considered
// small enough for plain output.
type AnalyzerSettings struct {
	// MaxPlainCommands is the largest command count that stays plain.
	MaxPlainCommands int `mapstructure:"max_plain_commands"`
	// MaxPlainOptions is the largest per-command option count that stays plain.
	MaxPlainOptions int `mapstructure:"max_plain_options"`
}

// CacheSettings represents component cache settings.
type CacheSettings struct {
	// Templates is the number of component templates kept in memory.
	Templates int `mapstructure:"templates"`
}

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "CLISMITH"

// SettingsFileName is the base name of the settings file searched for.
const SettingsFileName = ".clismith"

// DefaultSettings returns the default settings.
func DefaultSettings() *Settings {
	return &Settings{
		Output: OutputSettings{
			Color: true,
			Quiet: false,
		},
		Generate: GenerateSettings{
			OutputDir:    ".",
			Overwrite:    false,
			TemplatesDir: "",
			Skip:         []string{},
		},
		Analyzer: AnalyzerSettings{
			MaxPlainCommands: 2,
			MaxPlainOptions:  5,
		},
		Cache: CacheSettings{
			Templates: 64,
		},
	}
}

// DefaultSettingsDir returns the per-user settings directory.
func DefaultSettingsDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "clismith")
}

// LoadSettings loads settings from defaults, an optional .env file, the
// settings file and CLISMITH_* environment variables, in increasing priority.
// When file is empty the settings file is searched for in the working
// directory and DefaultSettingsDir; a missing file is not an error.
func LoadSettings(file string) (*Settings, error) {
	// A missing .env is the common case.
	if err := godotenv.Load(); err == nil {
		debug.Debug("[config] Loaded .env")
	}

	v := viper.New()
	setDefaults(v, DefaultSettings())

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
				return nil, NewConfigErrorWithCause(ConfigNotFound, file, "settings file not found", err)
			}
			return nil, NewConfigErrorWithCause(ConfigInvalid, file, "failed to read settings file", err)
		}
	} else {
		v.SetConfigName(SettingsFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := DefaultSettingsDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, NewConfigErrorWithCause(ConfigInvalid, v.ConfigFileUsed(), "failed to read settings file", err)
			}
		}
	}
	if used := v.ConfigFileUsed(); used != "" {
		debug.DebugValue("[config] Settings file", used)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, v.ConfigFileUsed(), "failed to decode settings", err)
	}
	if err := ValidateSettings(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func setDefaults(v *viper.Viper, d *Settings) {
	v.SetDefault("output.color", d.Output.Color)
	v.SetDefault("output.quiet", d.Output.Quiet)
	v.SetDefault("generate.output_dir", d.Generate.OutputDir)
	v.SetDefault("generate.overwrite", d.Generate.Overwrite)
	v.SetDefault("generate.templates_dir", d.Generate.TemplatesDir)
	v.SetDefault("generate.skip", d.Generate.Skip)
	v.SetDefault("analyzer.max_plain_commands", d.Analyzer.MaxPlainCommands)
	v.SetDefault("analyzer.max_plain_options", d.Analyzer.MaxPlainOptions)
	v.SetDefault("cache.templates", d.Cache.Templates)
}

// ValidateSettings validates the tool settings.
func ValidateSettings(s *Settings) error {
	if s.Analyzer.MaxPlainCommands < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "analyzer.max_plain_commands", "threshold cannot be negative")
	}
	if s.Analyzer.MaxPlainOptions < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "analyzer.max_plain_options", "threshold cannot be negative")
	}
	if s.Cache.Templates < 1 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "cache.templates", "cache size must be at least 1")
	}
	if s.Generate.OutputDir == "" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "generate.output_dir", "output directory cannot be empty")
	}
	return nil
}

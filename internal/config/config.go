// semrel - Conventional-commit versioning and release notes
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/semrel

// Package config provides layered configuration for semrel using koanf.
// Configuration is loaded with priority: command-line flags (applied by the
// caller) > environment variables (SEMREL_*) > config file > defaults. The
// config file is either the path given with --config, or the project config
// (.semrel/config.yml, with .semrel/config.json also accepted).
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "SEMREL_"

// Configuration represents the semrel configuration.
type Configuration struct {
	// Repo is the path inside the git repository to operate on.
	Repo string `koanf:"repo" validate:"required"`
	// TagPrefix is stripped from tag names before parsing them as versions.
	TagPrefix string `koanf:"tag_prefix"`

	Manifest ManifestConfig `koanf:"manifest"`
	Notes    NotesConfig    `koanf:"notes"`
	Bump     BumpConfig     `koanf:"bump"`
}

// ManifestConfig locates the manifest holding the version and build counter.
type ManifestConfig struct {
	// Path is the manifest file. Empty means versions come from tags only
	// and nothing is written.
	Path string `koanf:"path"`
	// Format overrides extension based detection: yaml | json | plist.
	Format     string `koanf:"format" validate:"omitempty,oneof=yaml yml json plist"`
	VersionKey string `koanf:"version_key"`
	BuildKey   string `koanf:"build_key"`
	// Create allows writing a manifest that does not exist yet.
	Create bool `koanf:"create"`
}

// NotesConfig controls release notes output.
type NotesConfig struct {
	Output      string `koanf:"output" validate:"required"`
	SummaryFile string `koanf:"summary_file" validate:"required"`
	Compact     bool   `koanf:"compact"`
}

// BumpConfig controls the bump command.
type BumpConfig struct {
	// OutputJSON is where the result record is written. Empty disables it.
	OutputJSON string `koanf:"output_json"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath is an explicit config file. It must exist when set.
	ConfigPath string
	// ProjectDir is where .semrel/ is looked up (default: current directory).
	ProjectDir string
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// Load loads configuration from defaults, the config file and the environment.
func Load(configPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ConfigPath: configPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if opts.ConfigPath != "" {
		if err := loadExplicitConfig(k, opts.ConfigPath); err != nil {
			return nil, err
		}
	} else if err := loadProjectConfig(k, opts.ProjectDir, getWarningWriter(opts.WarningWriter), opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadExplicitConfig loads the file given with --config. The parser is chosen
// by extension; anything but .json is read as YAML.
func loadExplicitConfig(k *koanf.Koanf, path string) error {
	if !fileExists(path) {
		return fmt.Errorf("config file %s not found", path)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return loadJSONConfig(k, path)
	}
	return loadYAMLConfig(k, path)
}

// loadProjectConfig loads .semrel/config.yml, falling back to
// .semrel/config.json. Warns when both exist.
func loadProjectConfig(k *koanf.Koanf, dir string, warningWriter io.Writer, skipWarnings bool) error {
	yamlPath := ProjectConfigPath(dir)
	jsonPath := ProjectJSONConfigPath(dir)

	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if err := loadYAMLConfig(k, yamlPath); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
		if jsonExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: %s ignored, using %s\n", jsonPath, yamlPath)
		}
	case jsonExists:
		if err := loadJSONConfig(k, jsonPath); err != nil {
			return fmt.Errorf("loading project config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Repo = expandHomePath(cfg.Repo)
	cfg.Manifest.Path = expandHomePath(cfg.Manifest.Path)

	return &cfg, nil
}

// ResolvePaths makes the relative output and manifest paths absolute under
// dir, the repository root the configuration belongs to. An empty dir leaves
// them relative to the working directory.
func (c *Configuration) ResolvePaths(dir string) {
	if dir == "" {
		return
	}
	for _, p := range []*string{&c.Manifest.Path, &c.Notes.Output, &c.Bump.OutputJSON} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys.
// A double underscore separates nesting levels.
// Example: SEMREL_MANIFEST__VERSION_KEY -> manifest.version_key
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

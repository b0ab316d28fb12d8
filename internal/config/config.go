package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default validation limits. The size cap and worker count follow the
// original locale-pipeline contract.
const (
	// DefaultEncoding is the only supported text encoding
	DefaultEncoding = "utf-8"

	// DefaultMaxFileSize caps locale files at 10 MB
	DefaultMaxFileSize = 10 * 1024 * 1024

	// DefaultWorkers bounds the validation worker pool
	DefaultWorkers = 4

	// DefaultTimeoutSeconds is the wall-clock budget for a whole run
	DefaultTimeoutSeconds = 300
)

// Config represents the main configuration structure
type Config struct {
	// Validation holds validation engine configuration
	Validation ValidationConfig `json:"validation" mapstructure:"validation" yaml:"validation"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Files holds candidate collection configuration
	Files FilesConfig `json:"files" mapstructure:"files" yaml:"files"`

	// Versions holds version manifest generation configuration
	Versions VersionsConfig `json:"versions" mapstructure:"versions" yaml:"versions"`

	// GitHub holds the optional pull request integration configuration
	GitHub GitHubConfig `json:"github" mapstructure:"github" yaml:"github"`
}

// ValidationConfig holds configuration for the validation engine
type ValidationConfig struct {
	// Encoding is the required text encoding (only utf-8 is supported)
	Encoding string `json:"encoding" mapstructure:"encoding" yaml:"encoding"`

	// MaxFileSize is the hard per-file size cap in bytes
	MaxFileSize int64 `json:"maxFileSize" mapstructure:"max_file_size" yaml:"max_file_size"`

	// Workers is the maximum number of concurrent file validations
	Workers int `json:"workers" mapstructure:"workers" yaml:"workers"`

	// TimeoutSeconds is the wall-clock budget for the whole run
	TimeoutSeconds int `json:"timeoutSeconds" mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the console output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ReportPath is the well-known path of the report artifact
	ReportPath string `json:"reportPath" mapstructure:"report_path" yaml:"report_path"`

	// ShowDetails controls whether per-file errors are printed to the console
	ShowDetails bool `json:"showDetails" mapstructure:"show_details" yaml:"show_details"`
}

// FilesConfig holds candidate collection configuration
type FilesConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `json:"includePatterns" mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies gitignore-style patterns to skip
	ExcludePatterns []string `json:"excludePatterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// IgnoreFile is an optional gitignore-syntax file with extra skip patterns
	IgnoreFile string `json:"ignoreFile" mapstructure:"ignore_file" yaml:"ignore_file"`
}

// VersionsConfig holds configuration for the versions manifest generator
type VersionsConfig struct {
	// LanguagesDir is the root of the languages/<lang>/<service> tree
	LanguagesDir string `json:"languagesDir" mapstructure:"languages_dir" yaml:"languages_dir"`

	// Services lists the service directories scanned per language
	Services []string `json:"services" mapstructure:"services" yaml:"services"`

	// DefaultLanguage recorded in the manifest meta
	DefaultLanguage string `json:"defaultLanguage" mapstructure:"default_language" yaml:"default_language"`

	// OutputPath is where the manifest is written
	OutputPath string `json:"outputPath" mapstructure:"output_path" yaml:"output_path"`
}

// GitHubConfig holds the optional pull request integration
type GitHubConfig struct {
	// Enabled turns on report submission to the pull request
	Enabled bool `json:"enabled" mapstructure:"enabled" yaml:"enabled"`

	// Repository in owner/name form
	Repository string `json:"repository" mapstructure:"repository" yaml:"repository"`

	// PRNumber is the pull request to comment on and label
	PRNumber int `json:"prNumber" mapstructure:"pr_number" yaml:"pr_number"`

	// FailLabel is the label applied when validation fails
	FailLabel string `json:"failLabel" mapstructure:"fail_label" yaml:"fail_label"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Validation: ValidationConfig{
			Encoding:       DefaultEncoding,
			MaxFileSize:    DefaultMaxFileSize,
			Workers:        DefaultWorkers,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Output: OutputConfig{
			Format:      "text",
			ReportPath:  "validation-results.json",
			ShowDetails: false,
		},
		Files: FilesConfig{
			IncludePatterns: []string{"**/*.json"},
			ExcludePatterns: []string{
				"node_modules",
				".git",
				"dist",
				"build",
			},
			IgnoreFile: ".locscanignore",
		},
		Versions: VersionsConfig{
			LanguagesDir:    "languages",
			Services:        []string{"website", "launcher"},
			DefaultLanguage: "en",
			OutputPath:      "versions.json",
		},
		GitHub: GitHubConfig{
			Enabled:   false,
			FailLabel: "locale-validation-failed",
		},
	}
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if !strings.EqualFold(c.Validation.Encoding, "utf-8") && !strings.EqualFold(c.Validation.Encoding, "utf8") {
		return fmt.Errorf("unsupported encoding %q: only utf-8 is supported", c.Validation.Encoding)
	}
	if c.Validation.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be greater than 0, got %d", c.Validation.MaxFileSize)
	}
	if c.Validation.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0, got %d", c.Validation.Workers)
	}
	if c.Validation.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be greater than 0, got %d", c.Validation.TimeoutSeconds)
	}

	switch c.Output.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid output format: %s (must be one of: text, json, yaml)", c.Output.Format)
	}

	if c.Output.ReportPath == "" {
		return fmt.Errorf("report_path must not be empty")
	}

	if c.GitHub.Enabled {
		if c.GitHub.Repository == "" {
			return fmt.Errorf("github.repository is required when github integration is enabled")
		}
		if c.GitHub.PRNumber <= 0 {
			return fmt.Errorf("github.pr_number must be greater than 0, got %d", c.GitHub.PRNumber)
		}
	}

	return nil
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context.
// If no config path is given, one is discovered upward from the target.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file, layering
// environment overrides (LOCSCAN_*) on top of file values and defaults
func loadConfigFromFile(configPath string) (*Config, error) {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()

	setDefaults(v, config)
	v.SetEnvPrefix("LOCSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults registers every key so environment overrides resolve even
// without a config file
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("validation.encoding", c.Validation.Encoding)
	v.SetDefault("validation.max_file_size", c.Validation.MaxFileSize)
	v.SetDefault("validation.workers", c.Validation.Workers)
	v.SetDefault("validation.timeout_seconds", c.Validation.TimeoutSeconds)
	v.SetDefault("output.format", c.Output.Format)
	v.SetDefault("output.report_path", c.Output.ReportPath)
	v.SetDefault("output.show_details", c.Output.ShowDetails)
	v.SetDefault("files.include_patterns", c.Files.IncludePatterns)
	v.SetDefault("files.exclude_patterns", c.Files.ExcludePatterns)
	v.SetDefault("files.ignore_file", c.Files.IgnoreFile)
	v.SetDefault("versions.languages_dir", c.Versions.LanguagesDir)
	v.SetDefault("versions.services", c.Versions.Services)
	v.SetDefault("versions.default_language", c.Versions.DefaultLanguage)
	v.SetDefault("versions.output_path", c.Versions.OutputPath)
	v.SetDefault("github.enabled", c.GitHub.Enabled)
	v.SetDefault("github.repository", c.GitHub.Repository)
	v.SetDefault("github.pr_number", c.GitHub.PRNumber)
	v.SetDefault("github.fail_label", c.GitHub.FailLabel)
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the path being validated (a file or directory).
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"locscan.yaml",
		"locscan.yml",
		".locscan.yaml",
		".locscan.yml",
		"locscan.json",
		".locscan.json",
	}

	// If targetPath is provided, search from there upward
	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}
				if parent := filepath.Dir(dir); parent == dir {
					break
				}
			}
		}
	}

	// Fallback to current directory
	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "locscan"), candidates); config != "" {
			return config
		}
	}

	// Check ~/.config/locscan/ (XDG default)
	if home, err := os.UserHomeDir(); err == nil {
		if config := searchConfigInDirectory(filepath.Join(home, ".config", "locscan"), candidates); config != "" {
			return config
		}
	}

	return ""
}

package service

import (
	"time"

	"github.com/locscan/locscan/domain"
	"github.com/locscan/locscan/internal/config"
)

// ConfigurationLoaderImpl implements the domain.ConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.ValidationRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}

	return c.convertToValidationRequest(cfg), nil
}

// LoadDefaultConfig loads the default configuration, first checking for a
// discoverable config file
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.ValidationRequest {
	cfg, err := config.LoadConfigWithTarget("", "")
	if err != nil {
		cfg = config.DefaultConfig()
	}
	return c.convertToValidationRequest(cfg)
}

// MergeConfig merges CLI flags with configuration file. Values that were
// explicitly set on the command line win.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.ValidationRequest, override *domain.ValidationRequest) *domain.ValidationRequest {
	merged := *base

	// Candidates always come from the invocation, never from config
	if len(override.Candidates) > 0 {
		merged.Candidates = override.Candidates
	}

	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}

	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}

	if override.ReportPath != "" {
		merged.ReportPath = override.ReportPath
	}

	if override.ShowDetails {
		merged.ShowDetails = override.ShowDetails
	}

	if override.MaxFileSize > 0 {
		merged.MaxFileSize = override.MaxFileSize
	}

	if override.Workers > 0 {
		merged.Workers = override.Workers
	}

	if override.Timeout > 0 {
		merged.Timeout = override.Timeout
	}

	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

// convertToValidationRequest converts a Config to a ValidationRequest
func (c *ConfigurationLoaderImpl) convertToValidationRequest(cfg *config.Config) *domain.ValidationRequest {
	return &domain.ValidationRequest{
		// Candidates are set by the caller, not from config
		Candidates: []domain.Candidate{},

		Encoding:    cfg.Validation.Encoding,
		MaxFileSize: cfg.Validation.MaxFileSize,
		Workers:     cfg.Validation.Workers,
		Timeout:     time.Duration(cfg.Validation.TimeoutSeconds) * time.Second,

		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		ReportPath:   cfg.Output.ReportPath,
		ShowDetails:  cfg.Output.ShowDetails,
	}
}

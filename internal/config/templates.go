package config

import (
	"fmt"
	"strings"
)

// PipelineType represents the locale pipeline layout
type PipelineType string

const (
	PipelineTypeFull     PipelineType = "full"
	PipelineTypeWebsite  PipelineType = "website"
	PipelineTypeLauncher PipelineType = "launcher"
)

// Strictness represents the validation strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// PipelinePreset holds the service set for a pipeline layout
type PipelinePreset struct {
	Services []string
}

// StrictnessPreset holds validation limits for a strictness level
type StrictnessPreset struct {
	MaxFileSize    int64
	Workers        int
	TimeoutSeconds int
}

// GetPipelinePresets returns presets for the known pipeline layouts
func GetPipelinePresets() map[PipelineType]PipelinePreset {
	return map[PipelineType]PipelinePreset{
		PipelineTypeFull:     {Services: []string{"website", "launcher"}},
		PipelineTypeWebsite:  {Services: []string{"website"}},
		PipelineTypeLauncher: {Services: []string{"launcher"}},
	}
}

// GetStrictnessPresets returns presets for the strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			MaxFileSize:    50 * 1024 * 1024,
			Workers:        8,
			TimeoutSeconds: 600,
		},
		StrictnessStandard: {
			MaxFileSize:    DefaultMaxFileSize,
			Workers:        DefaultWorkers,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		StrictnessStrict: {
			MaxFileSize:    1 * 1024 * 1024,
			Workers:        DefaultWorkers,
			TimeoutSeconds: 120,
		},
	}
}

// GetFullConfigTemplate returns the documented config template as YAML
func GetFullConfigTemplate(pipeline PipelineType, strictness Strictness) string {
	preset := GetPipelinePresets()[pipeline]
	strict := GetStrictnessPresets()[strictness]

	return `# locscan configuration
# Documentation: https://github.com/locscan/locscan

# ==============================================================================
# VALIDATION ENGINE
# ==============================================================================
validation:
  # Required text encoding of locale files (only utf-8 is supported)
  encoding: utf-8

  # Hard per-file size cap in bytes; oversized files fail validation
  max_file_size: ` + fmt.Sprintf("%d", strict.MaxFileSize) + `

  # Number of concurrent file validations
  workers: ` + fmt.Sprintf("%d", strict.Workers) + `

  # Wall-clock budget for a whole run in seconds; files not validated in
  # time are reported as skipped and the run fails
  timeout_seconds: ` + fmt.Sprintf("%d", strict.TimeoutSeconds) + `

# ==============================================================================
# OUTPUT
# ==============================================================================
output:
  # Console output format: text, json, yaml
  format: text

  # Report artifact path consumed by the surrounding automation
  report_path: validation-results.json

  # Print per-file errors to the console
  show_details: true

# ==============================================================================
# CANDIDATE SELECTION
# ==============================================================================
files:
  include_patterns:
    - "**/*.json"
  # gitignore-style patterns; matching candidates are reported as skipped
  exclude_patterns:
    - node_modules
    - .git
  # Optional gitignore-syntax file with additional skip patterns
  ignore_file: .locscanignore

# ==============================================================================
# VERSION MANIFEST (locscan versions)
# ==============================================================================
versions:
  languages_dir: languages
  services:
` + formatYAMLList(preset.Services, "    ") + `  default_language: en
  output_path: versions.json

# ==============================================================================
# PULL REQUEST INTEGRATION (optional)
# ==============================================================================
github:
  enabled: false
  # repository: owner/name
  # pr_number: 0
  fail_label: locale-validation-failed
`
}

// GetMinimalConfigTemplate returns a minimal config template
func GetMinimalConfigTemplate() string {
	return `# locscan configuration (minimal)
# See full options: https://github.com/locscan/locscan

validation:
  max_file_size: 10485760
  workers: 4

output:
  report_path: validation-results.json

versions:
  languages_dir: languages
  services:
    - website
    - launcher
`
}

// formatYAMLList renders a string slice as an indented YAML list
func formatYAMLList(items []string, indent string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(indent + "- " + item + "\n")
	}
	return sb.String()
}

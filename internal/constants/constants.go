package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "locscan"

	// ConfigFileName is the default config file name
	ConfigFileName = "locscan.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "LOCSCAN"

	// ChangedFilesEnvVar carries the newline-separated candidate list in CI
	ChangedFilesEnvVar = "CHANGED_FILES"
)

// Default output artifacts
const (
	DefaultReportPath   = "validation-results.json"
	DefaultManifestPath = "versions.json"
)

// Process exit codes
const (
	ExitOK       = 0
	ExitFailures = 1
	ExitInternal = 2
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

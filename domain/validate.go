package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// FileStatus classifies the outcome of a single candidate
type FileStatus string

const (
	FileStatusPassed  FileStatus = "passed"
	FileStatusFailed  FileStatus = "failed"
	FileStatusSkipped FileStatus = "skipped"
)

// ValidationTarget describes a file handed to the engine. Size is filled in
// when the file is read; Encoding is the required text encoding.
type ValidationTarget struct {
	Path     string
	Size     int64
	Encoding string
}

// Candidate is a file submitted for a validation run. Files excluded by
// policy before validation (wrong suffix, ignore pattern) carry a skip
// reason and never reach the filesystem.
type Candidate struct {
	Path       string
	Skipped    bool
	SkipReason string
}

// FileResult is the immutable per-file outcome
type FileResult struct {
	File    string     `json:"file" yaml:"file"`
	Success bool       `json:"success" yaml:"success"`
	Status  FileStatus `json:"status" yaml:"status"`
	Errors  []string   `json:"errors,omitempty" yaml:"errors,omitempty"`
}

// Summary holds aggregate counts. Total always equals
// Passed + Failed + Skipped.
type Summary struct {
	Total   int `json:"total" yaml:"total"`
	Passed  int `json:"passed" yaml:"passed"`
	Failed  int `json:"failed" yaml:"failed"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// Report is the complete output of one validation run. Results preserve the
// candidate input order regardless of completion order.
type Report struct {
	HasErrors   bool         `json:"has_errors" yaml:"has_errors"`
	Summary     Summary      `json:"summary" yaml:"summary"`
	Results     []FileResult `json:"results" yaml:"results"`
	GeneratedAt string       `json:"generated_at" yaml:"generated_at"`
	Version     string       `json:"version" yaml:"version"`
	DurationMs  int64        `json:"duration_ms" yaml:"duration_ms"`
}

// ValidationRequest represents a request to validate a set of candidates
type ValidationRequest struct {
	// Candidates in input order, including policy-skipped entries
	Candidates []Candidate

	// Validation limits
	Encoding    string
	MaxFileSize int64
	Workers     int
	Timeout     time.Duration

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	ReportPath   string
	ShowDetails  bool

	// Configuration
	ConfigPath string
}

// ValidationResponse represents the outcome of a validation run
type ValidationResponse struct {
	Report   *Report  `json:"report"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidationService defines the core validation engine
type ValidationService interface {
	// Validate checks every candidate and returns exactly one report.
	// Per-file problems become FileResults; only infrastructure failures
	// are returned as errors.
	Validate(ctx context.Context, req ValidationRequest) (*ValidationResponse, error)
}

// ReportWriter renders and persists validation reports
type ReportWriter interface {
	// Write renders the report in the given format to the writer
	Write(report *Report, format OutputFormat, writer io.Writer) error

	// Save persists the report artifact as JSON to the well-known path
	Save(report *Report, path string) error
}

// PlatformNotifier is the narrow interface to the hosting platform.
// Implementations post results back to a pull request; the engine itself
// never talks to the platform.
type PlatformNotifier interface {
	// SubmitReport publishes the report summary to the platform
	SubmitReport(ctx context.Context, report *Report) error

	// RequestLabel asks the platform to apply or remove the gate label
	RequestLabel(ctx context.Context, label string, failed bool) error
}

// ConfigurationLoader defines the interface for loading configuration
type ConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*ValidationRequest, error)

	// LoadDefaultConfig loads the default configuration
	LoadDefaultConfig() *ValidationRequest

	// MergeConfig merges CLI flags with configuration file
	MergeConfig(base *ValidationRequest, override *ValidationRequest) *ValidationRequest
}

// ProgressManager creates progress tasks for long-running operations
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks progress of a single task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// NewSummary folds file results into aggregate counts
func NewSummary(results []FileResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case FileStatusPassed:
			s.Passed++
		case FileStatusFailed:
			s.Failed++
		case FileStatusSkipped:
			s.Skipped++
		}
	}
	return s
}

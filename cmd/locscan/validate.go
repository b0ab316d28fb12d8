package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/locscan/locscan/app"
	"github.com/locscan/locscan/domain"
	"github.com/locscan/locscan/internal/config"
	"github.com/locscan/locscan/internal/constants"
	"github.com/locscan/locscan/service"
	"github.com/spf13/cobra"
)

// ValidateExitError is a custom error type for validate command exit codes
type ValidateExitError struct {
	Code    int
	Message string
}

func (e *ValidateExitError) Error() string {
	return e.Message
}

var (
	validateChangedFiles string
	validateReportPath   string
	validateFormat       string
	validateMaxFileSize  int64
	validateWorkers      int
	validateTimeout      time.Duration
	validateShowDetails  bool
	validateNoNotify     bool
	validateConfigPath   string
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate locale JSON files and gate the pull request",
		Long: `Validate locale JSON files for structural correctness.

Candidates come from positional paths (files or directories), a changed-files
list (--changed-files, '-' for stdin), or the CHANGED_FILES environment
variable. Every candidate yields one result; the report artifact is written
to the configured path for downstream automation.

Exit codes:
  0 - All validated files passed (or zero candidates)
  1 - At least one file failed validation
  2 - Internal error (config unreadable, report not writable, etc.)

Examples:
  # Validate explicit files
  locscan validate languages/en/website/common/menu.json

  # Validate everything under a locale tree
  locscan validate languages/

  # Validate the files changed in a pull request
  locscan validate --changed-files changed.txt
  git diff --name-only origin/main | locscan validate --changed-files -

  # Machine-readable console output
  locscan validate --format json languages/`,
		RunE:          runValidate,
		SilenceUsage:  true, // Don't print usage on errors (we handle our own output)
		SilenceErrors: true, // Don't print error messages (we handle our own output)
	}

	cmd.Flags().StringVar(&validateChangedFiles, "changed-files", "",
		"Path to a newline-separated candidate list ('-' for stdin)")
	cmd.Flags().StringVarP(&validateReportPath, "report", "r", "",
		"Report artifact path (default validation-results.json)")
	cmd.Flags().StringVarP(&validateFormat, "format", "f", "",
		"Console output format: text, json, yaml")
	cmd.Flags().Int64Var(&validateMaxFileSize, "max-file-size", 0,
		"Maximum file size in bytes (default 10485760)")
	cmd.Flags().IntVarP(&validateWorkers, "workers", "w", 0,
		"Number of concurrent file validations (default 4)")
	cmd.Flags().DurationVar(&validateTimeout, "timeout", 0,
		"Wall-clock budget for the whole run (default 5m)")
	cmd.Flags().BoolVarP(&validateShowDetails, "show-details", "d", false,
		"Print per-file errors to the console")
	cmd.Flags().BoolVar(&validateNoNotify, "no-notify", false,
		"Skip pull request comment and label updates")
	cmd.Flags().StringVarP(&validateConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}

	cfg, err := config.LoadConfigWithTarget(validateConfigPath, target)
	if err != nil {
		return &ValidateExitError{Code: constants.ExitInternal, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	changedFiles, err := resolveChangedFiles(cmd)
	if err != nil {
		return &ValidateExitError{Code: constants.ExitInternal, Message: err.Error()}
	}

	req := buildValidationRequest(cmd, cfg)

	// Progress bars would corrupt machine-readable console output
	pm := service.NewProgressManager(req.OutputFormat == domain.OutputFormatText)
	defer pm.Close()

	notifier, failLabel, err := buildNotifier(cfg)
	if err != nil {
		return &ValidateExitError{Code: constants.ExitInternal, Message: err.Error()}
	}

	useCase := app.NewValidateUseCase(
		service.NewValidatorWithProgress(&cfg.Validation, pm),
		service.NewReportWriter(),
		notifier,
	)

	result, err := useCase.Execute(context.Background(), app.ValidateConfig{
		Paths:           args,
		ChangedFiles:    changedFiles,
		ExcludePatterns: cfg.Files.ExcludePatterns,
		IgnoreFile:      cfg.Files.IgnoreFile,
		Request:         req,
		FailLabel:       failLabel,
	})
	if err != nil {
		return &ValidateExitError{Code: constants.ExitInternal, Message: err.Error()}
	}

	app.WriteWarnings(os.Stderr, result.Response.Warnings)

	if result.Report.HasErrors {
		return &ValidateExitError{Code: constants.ExitFailures, Message: ""}
	}
	return nil
}

// resolveChangedFiles reads the candidate list from --changed-files or the
// CHANGED_FILES environment variable. Positional paths are used when
// neither source is present.
func resolveChangedFiles(cmd *cobra.Command) ([]string, error) {
	helper := app.NewFileHelper()

	if cmd.Flags().Changed("changed-files") {
		if validateChangedFiles == "-" {
			return helper.ReadChangedFiles(os.Stdin)
		}
		f, err := os.Open(validateChangedFiles)
		if err != nil {
			return nil, fmt.Errorf("failed to open changed files list: %v", err)
		}
		defer f.Close()
		return helper.ReadChangedFiles(f)
	}

	if env := os.Getenv(constants.ChangedFilesEnvVar); env != "" {
		return helper.ReadChangedFilesFromEnv(env), nil
	}

	return nil, nil
}

// buildValidationRequest layers explicit CLI flags over config values
func buildValidationRequest(cmd *cobra.Command, cfg *config.Config) domain.ValidationRequest {
	req := domain.ValidationRequest{
		Encoding:     cfg.Validation.Encoding,
		MaxFileSize:  cfg.Validation.MaxFileSize,
		Workers:      cfg.Validation.Workers,
		Timeout:      time.Duration(cfg.Validation.TimeoutSeconds) * time.Second,
		OutputFormat: domain.OutputFormat(cfg.Output.Format),
		OutputWriter: os.Stdout,
		ReportPath:   cfg.Output.ReportPath,
		ShowDetails:  cfg.Output.ShowDetails,
		ConfigPath:   validateConfigPath,
	}

	if cmd.Flags().Changed("max-file-size") {
		req.MaxFileSize = validateMaxFileSize
	}
	if cmd.Flags().Changed("workers") {
		req.Workers = validateWorkers
	}
	if cmd.Flags().Changed("timeout") {
		req.Timeout = validateTimeout
	}
	if cmd.Flags().Changed("format") {
		req.OutputFormat = domain.OutputFormat(validateFormat)
	}
	if cmd.Flags().Changed("report") {
		req.ReportPath = validateReportPath
	}
	if cmd.Flags().Changed("show-details") {
		req.ShowDetails = validateShowDetails
	}

	return req
}

// buildNotifier creates the platform notifier when the integration is
// enabled; otherwise the engine stays platform-free
func buildNotifier(cfg *config.Config) (domain.PlatformNotifier, string, error) {
	if validateNoNotify || !cfg.GitHub.Enabled {
		return &service.NoOpNotifier{}, "", nil
	}

	notifier, err := service.NewGitHubNotifier(cfg.GitHub.Repository, cfg.GitHub.PRNumber)
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize GitHub integration: %v", err)
	}
	return notifier, cfg.GitHub.FailLabel, nil
}

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/locscan/locscan/domain"
)

// ValidateConfig holds configuration for the validate use case
type ValidateConfig struct {
	// Candidate sources
	Paths        []string
	ChangedFiles []string

	// Policy filtering
	ExcludePatterns []string
	IgnoreFile      string

	// Engine request template (limits, output, report path)
	Request domain.ValidationRequest

	// Platform integration
	FailLabel string
}

// ValidateUseCase orchestrates a full validation run: candidate
// resolution, engine execution, report persistence and platform
// notification
type ValidateUseCase struct {
	validator  domain.ValidationService
	writer     domain.ReportWriter
	notifier   domain.PlatformNotifier
	fileHelper *FileHelper
}

// NewValidateUseCase creates a new validate use case
func NewValidateUseCase(
	validator domain.ValidationService,
	writer domain.ReportWriter,
	notifier domain.PlatformNotifier,
) *ValidateUseCase {
	return &ValidateUseCase{
		validator:  validator,
		writer:     writer,
		notifier:   notifier,
		fileHelper: NewFileHelper(),
	}
}

// ValidateResult holds the outcome of a validation run
type ValidateResult struct {
	Response *domain.ValidationResponse
	Report   *domain.Report
}

// Execute performs the validation run. Per-file findings are inside the
// returned report; a non-nil error means the tooling itself failed.
func (uc *ValidateUseCase) Execute(ctx context.Context, cfg ValidateConfig) (*ValidateResult, error) {
	paths := cfg.ChangedFiles
	if len(paths) == 0 && len(cfg.Paths) > 0 {
		collected, err := uc.fileHelper.CollectFiles(cfg.Paths)
		if err != nil {
			return nil, domain.NewInternalError("failed to enumerate candidate files", err)
		}
		paths = collected
	}

	filter, err := NewSkipFilter(cfg.ExcludePatterns, cfg.IgnoreFile)
	if err != nil {
		return nil, domain.NewInternalError("failed to build skip filter", err)
	}

	req := cfg.Request
	req.Candidates = filter.BuildCandidates(paths)

	response, err := uc.validator.Validate(ctx, req)
	if err != nil {
		return nil, err
	}
	report := response.Report

	if req.OutputWriter != nil {
		if err := uc.writer.Write(report, req.OutputFormat, req.OutputWriter); err != nil {
			return nil, err
		}
	}

	if req.ReportPath != "" {
		if err := uc.writer.Save(report, req.ReportPath); err != nil {
			return nil, err
		}
	}

	if uc.notifier != nil {
		if err := uc.notifier.SubmitReport(ctx, report); err != nil {
			return nil, domain.NewInternalError("failed to submit report to platform", err)
		}
		if cfg.FailLabel != "" {
			if err := uc.notifier.RequestLabel(ctx, cfg.FailLabel, report.HasErrors); err != nil {
				return nil, domain.NewInternalError("failed to update platform label", err)
			}
		}
	}

	return &ValidateResult{Response: response, Report: report}, nil
}

// WriteWarnings prints run warnings, if any, to the writer
func WriteWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}

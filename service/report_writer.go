package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/locscan/locscan/domain"
	"gopkg.in/yaml.v3"
)

// ReportWriterImpl implements the domain.ReportWriter interface
type ReportWriterImpl struct{}

// NewReportWriter creates a new report writer
func NewReportWriter() *ReportWriterImpl {
	return &ReportWriterImpl{}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Write renders the report in the specified format
func (w *ReportWriterImpl) Write(report *domain.Report, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatYAML:
		return w.writeYAML(report, writer)
	case domain.OutputFormatText:
		return w.writeText(report, writer)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// Save persists the report artifact as JSON to the well-known path.
// Failure here is an infrastructure error, not a validation finding.
func (w *ReportWriterImpl) Save(report *domain.Report, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return domain.NewOutputError(fmt.Sprintf("report directory does not exist: %s", dir), err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to create report artifact %s", path), err)
	}
	defer f.Close()

	if err := WriteJSON(f, report); err != nil {
		return domain.NewOutputError(fmt.Sprintf("failed to write report artifact %s", path), err)
	}

	return nil
}

func (w *ReportWriterImpl) writeYAML(report *domain.Report, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	return encoder.Encode(report)
}

func (w *ReportWriterImpl) writeText(report *domain.Report, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Locale Validation Report ===\n\n")
	fmt.Fprintf(writer, "Generated: %s\n", report.GeneratedAt)
	fmt.Fprintf(writer, "Duration: %dms\n", report.DurationMs)
	fmt.Fprintf(writer, "Version: %s\n\n", report.Version)

	fmt.Fprintf(writer, "Summary:\n")
	fmt.Fprintf(writer, "  Total files: %d\n", report.Summary.Total)
	fmt.Fprintf(writer, "  Passed: %d\n", report.Summary.Passed)
	fmt.Fprintf(writer, "  Failed: %d\n", report.Summary.Failed)
	fmt.Fprintf(writer, "  Skipped: %d\n", report.Summary.Skipped)

	if report.Summary.Failed > 0 {
		fmt.Fprintf(writer, "\nErrors found:\n")
		for _, r := range report.Results {
			if r.Status != domain.FileStatusFailed {
				continue
			}
			fmt.Fprintf(writer, "\n%s:\n", r.File)
			for _, e := range r.Errors {
				fmt.Fprintf(writer, "  - %s\n", e)
			}
		}
	}

	if report.Summary.Skipped > 0 {
		fmt.Fprintf(writer, "\nSkipped:\n")
		for _, r := range report.Results {
			if r.Status != domain.FileStatusSkipped {
				continue
			}
			reason := ""
			if len(r.Errors) > 0 {
				reason = " (" + r.Errors[0] + ")"
			}
			fmt.Fprintf(writer, "  - %s%s\n", r.File, reason)
		}
	}

	if report.Summary.Total == 0 {
		fmt.Fprintf(writer, "\nNo files to validate.\n")
	}

	return nil
}

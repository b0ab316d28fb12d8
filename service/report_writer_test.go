package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/locscan/locscan/domain"
	"github.com/locscan/locscan/internal/testutil"
)

func sampleReport() *domain.Report {
	results := []domain.FileResult{
		{File: "languages/en/website/common/menu.json", Success: true, Status: domain.FileStatusPassed, Errors: []string{}},
		{File: "languages/de/website/common/menu.json", Success: false, Status: domain.FileStatusFailed, Errors: []string{"JSON syntax error at line 3, column 1: unexpected end of JSON input"}},
		{File: "languages/fr/README.md", Success: false, Status: domain.FileStatusSkipped, Errors: []string{"not a JSON file"}},
	}
	return &domain.Report{
		HasErrors:   true,
		Summary:     domain.NewSummary(results),
		Results:     results,
		GeneratedAt: "2026-08-30T10:00:00Z",
		Version:     "dev",
		DurationMs:  12,
	}
}

func TestReportWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewReportWriter()

	err := w.Write(sampleReport(), domain.OutputFormatJSON, &buf)
	testutil.AssertNoError(t, err)

	var decoded domain.Report
	testutil.AssertNoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	testutil.AssertTrue(t, decoded.HasErrors, "has_errors should round-trip")
	testutil.AssertEqual(t, 3, decoded.Summary.Total)
	testutil.AssertEqual(t, 1, decoded.Summary.Passed)
	testutil.AssertEqual(t, 1, decoded.Summary.Failed)
	testutil.AssertEqual(t, 1, decoded.Summary.Skipped)
	testutil.AssertEqual(t, 3, len(decoded.Results))

	// Snake-case field names are part of the artifact contract
	for _, field := range []string{`"has_errors"`, `"summary"`, `"results"`, `"generated_at"`, `"duration_ms"`} {
		if !strings.Contains(buf.String(), field) {
			t.Errorf("Expected JSON output to contain %s", field)
		}
	}
}

func TestReportWriterYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewReportWriter()

	err := w.Write(sampleReport(), domain.OutputFormatYAML, &buf)
	testutil.AssertNoError(t, err)

	out := buf.String()
	for _, want := range []string{"has_errors: true", "total: 3", "status: failed"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected YAML output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestReportWriterText(t *testing.T) {
	var buf bytes.Buffer
	w := NewReportWriter()

	err := w.Write(sampleReport(), domain.OutputFormatText, &buf)
	testutil.AssertNoError(t, err)

	out := buf.String()
	wants := []string{
		"=== Locale Validation Report ===",
		"Total files: 3",
		"Passed: 1",
		"Failed: 1",
		"Skipped: 1",
		"Errors found:",
		"languages/de/website/common/menu.json",
		"JSON syntax error at line 3",
		"Skipped:",
		"not a JSON file",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("Expected text output to contain %q", want)
		}
	}
}

func TestReportWriterTextEmptyRun(t *testing.T) {
	var buf bytes.Buffer
	w := NewReportWriter()

	report := &domain.Report{
		Summary: domain.Summary{},
		Results: []domain.FileResult{},
	}
	testutil.AssertNoError(t, w.Write(report, domain.OutputFormatText, &buf))

	if !strings.Contains(buf.String(), "No files to validate.") {
		t.Errorf("Expected empty-run notice, got:\n%s", buf.String())
	}
}

func TestReportWriterUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewReportWriter()

	err := w.Write(sampleReport(), domain.OutputFormat("csv"), &buf)
	testutil.AssertError(t, err)
	if !strings.Contains(err.Error(), "unsupported format: csv") {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
}

func TestReportWriterSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "validation-results.json")
	w := NewReportWriter()

	testutil.AssertNoError(t, w.Save(sampleReport(), path))

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)

	var decoded domain.Report
	testutil.AssertNoError(t, json.Unmarshal(data, &decoded))
	testutil.AssertEqual(t, 3, decoded.Summary.Total)
}

func TestReportWriterSaveMissingDirectory(t *testing.T) {
	w := NewReportWriter()
	err := w.Save(sampleReport(), filepath.Join(t.TempDir(), "missing", "report.json"))
	testutil.AssertError(t, err)

	var domainErr domain.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("Expected DomainError, got %T", err)
	}
	testutil.AssertEqual(t, domain.ErrCodeOutputError, domainErr.Code)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/locscan/locscan/domain"
	"github.com/locscan/locscan/internal/config"
	"github.com/locscan/locscan/internal/version"
	"golang.org/x/sync/errgroup"
)

// Default values for the validation engine
const (
	// DefaultWorkers is used when the configured worker count is invalid
	DefaultWorkers = 4

	// DefaultTimeout bounds a whole validation run
	DefaultTimeout = 5 * time.Minute
)

// ValidatorImpl implements domain.ValidationService
type ValidatorImpl struct {
	workers     int
	timeout     time.Duration
	maxFileSize int64
	encoding    string
	progress    domain.ProgressManager
	mu          sync.RWMutex
}

// NewValidator creates a validation engine with defaults
func NewValidator() *ValidatorImpl {
	return &ValidatorImpl{
		workers:     DefaultWorkers,
		timeout:     DefaultTimeout,
		maxFileSize: config.DefaultMaxFileSize,
		encoding:    config.DefaultEncoding,
	}
}

// NewValidatorFromConfig creates a validation engine from configuration
func NewValidatorFromConfig(cfg *config.ValidationConfig) *ValidatorImpl {
	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	maxFileSize := cfg.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = config.DefaultMaxFileSize
	}

	encoding := cfg.Encoding
	if encoding == "" {
		encoding = config.DefaultEncoding
	}

	return &ValidatorImpl{
		workers:     workers,
		timeout:     timeout,
		maxFileSize: maxFileSize,
		encoding:    encoding,
	}
}

// NewValidatorWithProgress creates a validation engine with progress tracking
func NewValidatorWithProgress(cfg *config.ValidationConfig, pm domain.ProgressManager) *ValidatorImpl {
	v := NewValidatorFromConfig(cfg)
	v.progress = pm
	return v
}

// Validate checks every candidate and produces exactly one report.
// Per-file problems never abort the run; they become FileResults. Result
// order always matches candidate input order regardless of completion order.
func (v *ValidatorImpl) Validate(ctx context.Context, req domain.ValidationRequest) (*domain.ValidationResponse, error) {
	startTime := time.Now()

	v.mu.RLock()
	workers := v.workers
	timeout := v.timeout
	maxFileSize := v.maxFileSize
	v.mu.RUnlock()

	if req.Workers > 0 {
		workers = req.Workers
	}
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	if req.MaxFileSize > 0 {
		maxFileSize = req.MaxFileSize
	}

	// Empty candidate set is a valid, passing outcome
	results := make([]domain.FileResult, len(req.Candidates))
	if len(req.Candidates) == 0 {
		return v.buildResponse(results, startTime, nil), nil
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if v.progress != nil {
		task = v.progress.StartTask("Validating files", len(req.Candidates))
	}
	defer task.Complete()

	g, gCtx := errgroup.WithContext(timeoutCtx)
	g.SetLimit(workers)

	for i, cand := range req.Candidates {
		// Shadow loop variables so the closure below sees per-iteration
		// values under the pre-Go-1.22 loop semantics of this go directive
		i, cand := i, cand
		// Policy-excluded candidates never reach the filesystem
		if cand.Skipped {
			results[i] = skippedResult(cand.Path, cand.SkipReason)
			task.Increment(1)
			continue
		}

		g.Go(func() error {
			// Files whose slot comes up after the deadline are reported
			// as skipped, not silently omitted
			select {
			case <-gCtx.Done():
				results[i] = skippedResult(cand.Path, fmt.Sprintf("timed out after %s", timeout))
				task.Increment(1)
				return nil
			default:
			}

			results[i] = v.validateFile(cand.Path, maxFileSize)
			task.Increment(1)
			return nil
		})
	}

	_ = g.Wait()

	var warnings []string
	if timeoutCtx.Err() == context.DeadlineExceeded {
		warnings = append(warnings, fmt.Sprintf("validation run timed out after %s", timeout))
	}

	return v.buildResponse(results, startTime, warnings), nil
}

// validateFile runs the per-file pipeline: existence, size cap, empty
// check, encoding check, JSON parse
func (v *ValidatorImpl) validateFile(path string, maxFileSize int64) domain.FileResult {
	info, err := os.Stat(path)
	if err != nil {
		return failedResult(path, "file not found or unreadable")
	}

	target := domain.ValidationTarget{Path: path, Size: info.Size(), Encoding: v.encoding}

	// Size is a hard validation criterion, not an exemption
	if target.Size > maxFileSize {
		return failedResult(path, fmt.Sprintf("file exceeds maximum size of %d bytes", maxFileSize))
	}

	if target.Size == 0 {
		return failedResult(path, "file is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return failedResult(path, "file not found or unreadable")
	}

	if !utf8.Valid(data) {
		return failedResult(path, fmt.Sprintf("invalid %s encoding: invalid byte sequence at offset %d", target.Encoding, firstInvalidOffset(data)))
	}

	if err := checkJSONSyntax(data); err != nil {
		return failedResult(path, err.Error())
	}

	return domain.FileResult{
		File:    path,
		Success: true,
		Status:  domain.FileStatusPassed,
		Errors:  []string{},
	}
}

// checkJSONSyntax parses the content as a single JSON value and converts
// parser failures into positioned human-readable messages
func checkJSONSyntax(data []byte) error {
	var value any
	err := json.Unmarshal(data, &value)
	if err == nil {
		return nil
	}

	if syntaxErr, ok := err.(*json.SyntaxError); ok {
		line, col := lineColumn(data, syntaxErr.Offset)
		return fmt.Errorf("JSON syntax error at line %d, column %d: %v", line, col, syntaxErr)
	}

	return fmt.Errorf("JSON syntax error: %v", err)
}

// lineColumn converts a byte offset into 1-based line and column numbers
func lineColumn(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}

	line, col := 1, 1
	for _, b := range data[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// firstInvalidOffset returns the byte offset of the first invalid UTF-8 sequence
func firstInvalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}

func (v *ValidatorImpl) buildResponse(results []domain.FileResult, startTime time.Time, warnings []string) *domain.ValidationResponse {
	summary := domain.NewSummary(results)

	report := &domain.Report{
		HasErrors:   summary.Failed > 0 || len(warnings) > 0,
		Summary:     summary,
		Results:     results,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
		DurationMs:  time.Since(startTime).Milliseconds(),
	}

	return &domain.ValidationResponse{
		Report:   report,
		Warnings: warnings,
	}
}

// SetWorkers sets the maximum number of concurrent validations
func (v *ValidatorImpl) SetWorkers(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if n > 0 {
		v.workers = n
	}
}

// SetTimeout sets the wall-clock budget for a run
func (v *ValidatorImpl) SetTimeout(timeout time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if timeout > 0 {
		v.timeout = timeout
	}
}

func failedResult(path, message string) domain.FileResult {
	return domain.FileResult{
		File:    path,
		Success: false,
		Status:  domain.FileStatusFailed,
		Errors:  []string{message},
	}
}

func skippedResult(path, reason string) domain.FileResult {
	return domain.FileResult{
		File:    path,
		Success: false,
		Status:  domain.FileStatusSkipped,
		Errors:  []string{reason},
	}
}

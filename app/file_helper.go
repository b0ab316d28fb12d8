package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/locscan/locscan/domain"
	ignore "github.com/sabhiram/go-gitignore"
)

// FileHelper resolves run candidates from paths, changed-file lists and
// ignore rules
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// SkipFilter decides whether a candidate is excluded by policy before it
// reaches the validation engine
type SkipFilter struct {
	matcher *ignore.GitIgnore
}

// NewSkipFilter compiles exclude patterns plus an optional gitignore-syntax
// ignore file into a filter
func NewSkipFilter(excludePatterns []string, ignoreFile string) (*SkipFilter, error) {
	lines := append([]string{}, excludePatterns...)

	if ignoreFile != "" {
		data, err := os.ReadFile(ignoreFile)
		if err == nil {
			for _, line := range strings.Split(string(data), "\n") {
				line = strings.TrimSpace(line)
				if line != "" && !strings.HasPrefix(line, "#") {
					lines = append(lines, line)
				}
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read ignore file %s: %w", ignoreFile, err)
		}
	}

	return &SkipFilter{matcher: ignore.CompileIgnoreLines(lines...)}, nil
}

// SkipReason returns a non-empty reason when the path is excluded by policy
func (f *SkipFilter) SkipReason(path string) string {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return "not a JSON file"
	}
	if f.matcher != nil && f.matcher.MatchesPath(filepath.ToSlash(path)) {
		return "excluded by ignore pattern"
	}
	return ""
}

// BuildCandidates labels each path with its skip decision, preserving the
// input order
func (f *SkipFilter) BuildCandidates(paths []string) []domain.Candidate {
	candidates := make([]domain.Candidate, 0, len(paths))
	for _, p := range paths {
		reason := f.SkipReason(p)
		candidates = append(candidates, domain.Candidate{
			Path:       p,
			Skipped:    reason != "",
			SkipReason: reason,
		})
	}
	return candidates
}

// ReadChangedFiles parses a newline-separated candidate list, the contract
// used by the CI changed-files step. Blank lines are dropped; order and
// duplicates are preserved.
func (h *FileHelper) ReadChangedFiles(r io.Reader) ([]string, error) {
	var files []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			files = append(files, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read changed files list: %w", err)
	}
	return files, nil
}

// ReadChangedFilesFromEnv parses the candidate list from an environment value
func (h *FileHelper) ReadChangedFilesFromEnv(value string) []string {
	var files []string
	for _, line := range strings.Split(value, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files
}

// CollectFiles expands paths into candidate files. Plain files pass
// through untouched; directories are walked recursively in lexical order.
func (h *FileHelper) CollectFiles(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			// Missing candidates stay in the run so the engine reports them
			files = append(files, path)
			continue
		}

		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			files = append(files, filePath)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}
	}

	return files, nil
}

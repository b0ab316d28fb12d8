package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/locscan/locscan/domain"
)

// VersionGeneratorImpl implements domain.VersionGenerator. It derives
// content-addressed versions for every locale file and rolls them up per
// service so downstream consumers can detect stale translations.
type VersionGeneratorImpl struct {
	// now is injectable so version strings are stable in tests
	now func() time.Time
}

// NewVersionGenerator creates a new version generator
func NewVersionGenerator() *VersionGeneratorImpl {
	return &VersionGeneratorImpl{now: time.Now}
}

// Generate walks the languages tree and builds the version manifest
func (g *VersionGeneratorImpl) Generate(_ context.Context, req domain.VersionsRequest) (*domain.VersionsResponse, error) {
	languagesDir := req.LanguagesDir
	if languagesDir == "" {
		languagesDir = "languages"
	}
	services := req.Services
	if len(services) == 0 {
		services = []string{"website", "launcher"}
	}
	defaultLanguage := req.DefaultLanguage
	if defaultLanguage == "" {
		defaultLanguage = "en"
	}

	manifest := &domain.VersionManifest{
		Generated: g.now().UTC().Format(time.RFC3339),
		Languages: map[string]map[string]*domain.ServiceVersions{},
		Meta: domain.VersionMeta{
			SupportedLanguages: []string{},
			DefaultLanguage:    defaultLanguage,
			Services:           services,
		},
	}

	entries, err := os.ReadDir(languagesDir)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing tree yields an empty manifest, not a failure
			return &domain.VersionsResponse{Manifest: manifest}, nil
		}
		return nil, domain.NewInternalError(fmt.Sprintf("failed to read languages directory %s", languagesDir), err)
	}

	var warnings []string
	for _, entry := range sortedDirs(entries) {
		lang := entry.Name()
		manifest.Meta.SupportedLanguages = append(manifest.Meta.SupportedLanguages, lang)
		manifest.Languages[lang] = map[string]*domain.ServiceVersions{}

		for _, service := range services {
			servicePath := filepath.Join(languagesDir, lang, service)
			if _, err := os.Stat(servicePath); err != nil {
				continue
			}

			sv, err := g.buildService(servicePath, service)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("%s/%s: %v", lang, service, err))
				continue
			}
			if sv != nil {
				manifest.Languages[lang][service] = sv
			}
		}
	}

	return &domain.VersionsResponse{Manifest: manifest, Warnings: warnings}, nil
}

// buildService collects common, modules and (for website) standalone file
// sets and derives the service rollup hash and version
func (g *VersionGeneratorImpl) buildService(servicePath, service string) (*domain.ServiceVersions, error) {
	sv := &domain.ServiceVersions{}
	empty := true

	commonPath := filepath.Join(servicePath, "common")
	if dirExists(commonPath) {
		files, err := g.processDirectory(commonPath)
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			sv.Common = &domain.FileSet{Files: files}
			empty = false
		}
	}

	modulesPath := filepath.Join(servicePath, "modules")
	if dirExists(modulesPath) {
		modules, err := g.processSubdirectories(modulesPath)
		if err != nil {
			return nil, err
		}
		if len(modules) > 0 {
			sv.Modules = modules
			empty = false
		}
	}

	if service == "website" {
		standalonePath := filepath.Join(servicePath, "standalone")
		if dirExists(standalonePath) {
			standalone, err := g.processSubdirectories(standalonePath)
			if err != nil {
				return nil, err
			}
			if len(standalone) > 0 {
				sv.Standalone = standalone
				empty = false
			}
		}
	}

	if empty {
		return nil, nil
	}

	sv.Hash = rollupHash(sv)
	sv.Version = g.versionFor(sv.Hash)
	return sv, nil
}

// processSubdirectories builds one FileSet per immediate subdirectory
func (g *VersionGeneratorImpl) processSubdirectories(root string) (map[string]domain.FileSet, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	sets := map[string]domain.FileSet{}
	for _, entry := range sortedDirs(entries) {
		files, err := g.processDirectory(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		if len(files) > 0 {
			sets[entry.Name()] = domain.FileSet{Files: files}
		}
	}
	return sets, nil
}

// processDirectory hashes every JSON file under dir, keyed by its
// slash-prefixed path relative to dir
func (g *VersionGeneratorImpl) processDirectory(dir string) (map[string]domain.FileVersion, error) {
	files := map[string]domain.FileVersion{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}

		hash, err := hashFile(path)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := "/" + filepath.ToSlash(rel)

		files[key] = domain.FileVersion{
			Version: g.versionFor(hash),
			Hash:    hash,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// versionFor derives a date-stamped short version from a content hash
func (g *VersionGeneratorImpl) versionFor(hash string) string {
	timestamp := g.now().UTC().Format("20060102")
	short := hash
	if len(short) > 8 {
		short = short[:8]
	}
	return timestamp + "." + short
}

// rollupHash folds every contained file hash into a single service hash.
// Iteration is sorted so the rollup is deterministic.
func rollupHash(sv *domain.ServiceVersions) string {
	h := sha256.New()

	addSet := func(set domain.FileSet) {
		keys := make([]string, 0, len(set.Files))
		for k := range set.Files {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.Write([]byte(set.Files[k].Hash))
		}
	}

	if sv.Common != nil {
		addSet(*sv.Common)
	}
	for _, name := range sortedKeys(sv.Modules) {
		addSet(sv.Modules[name])
	}
	for _, name := range sortedKeys(sv.Standalone) {
		addSet(sv.Standalone[name])
	}

	return hex.EncodeToString(h.Sum(nil))
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func sortedDirs(entries []os.DirEntry) []os.DirEntry {
	dirs := make([]os.DirEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name() < dirs[j].Name() })
	return dirs
}

func sortedKeys(m map[string]domain.FileSet) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

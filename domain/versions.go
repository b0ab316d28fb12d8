package domain

import (
	"context"
	"io"
)

// FileVersion holds the derived version and content hash of one locale file
type FileVersion struct {
	Version string `json:"version"`
	Hash    string `json:"hash"`
}

// FileSet groups file versions keyed by path relative to their directory
type FileSet struct {
	Files map[string]FileVersion `json:"files"`
}

// ServiceVersions holds the version tree of one service within a language.
// Hash is the rollup over every contained file hash; Version is derived
// from it the same way file versions are.
type ServiceVersions struct {
	Common     *FileSet           `json:"common,omitempty"`
	Modules    map[string]FileSet `json:"modules,omitempty"`
	Standalone map[string]FileSet `json:"standalone,omitempty"`
	Hash       string             `json:"hash"`
	Version    string             `json:"version"`
}

// VersionMeta describes the manifest-wide metadata
type VersionMeta struct {
	SupportedLanguages []string `json:"supportedLanguages"`
	DefaultLanguage    string   `json:"defaultLanguage"`
	Services           []string `json:"services"`
}

// VersionManifest is the complete version-metadata artifact
type VersionManifest struct {
	Generated string                                 `json:"generated"`
	Languages map[string]map[string]*ServiceVersions `json:"languages"`
	Meta      VersionMeta                            `json:"meta"`
}

// VersionsRequest represents a request to generate the version manifest
type VersionsRequest struct {
	// LanguagesDir is the root of the languages/<lang>/<service> tree
	LanguagesDir string

	// Services to scan within each language directory
	Services []string

	// DefaultLanguage recorded in the manifest meta
	DefaultLanguage string

	// Output configuration
	OutputPath   string
	OutputWriter io.Writer
}

// VersionsResponse represents the generated manifest
type VersionsResponse struct {
	Manifest *VersionManifest `json:"manifest"`
	Warnings []string         `json:"warnings,omitempty"`
}

// VersionGenerator builds version manifests from a locale tree
type VersionGenerator interface {
	Generate(ctx context.Context, req VersionsRequest) (*VersionsResponse, error)
}

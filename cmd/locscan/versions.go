package main

import (
	"context"
	"fmt"
	"os"

	"github.com/locscan/locscan/app"
	"github.com/locscan/locscan/domain"
	"github.com/locscan/locscan/internal/config"
	"github.com/locscan/locscan/service"
	"github.com/spf13/cobra"
)

var (
	versionsLanguagesDir string
	versionsServices     []string
	versionsDefaultLang  string
	versionsOutputPath   string
	versionsStdout       bool
	versionsConfigPath   string
)

func versionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Generate the locale version manifest",
		Long: `Generate version metadata for the locale tree.

Walks languages/<lang>/<service> directories, hashes every JSON file with
sha256, and derives date-stamped content versions plus per-service rollup
hashes. The manifest lets downstream consumers detect stale translations
without diffing file contents.

Examples:
  # Generate versions.json from ./languages
  locscan versions

  # Custom tree and output
  locscan versions --languages-dir i18n --output build/versions.json

  # Print the manifest instead of writing it
  locscan versions --stdout`,
		RunE: runVersions,
	}

	cmd.Flags().StringVar(&versionsLanguagesDir, "languages-dir", "",
		"Root of the languages/<lang>/<service> tree (default languages)")
	cmd.Flags().StringSliceVar(&versionsServices, "services", nil,
		"Service directories to scan (default website,launcher)")
	cmd.Flags().StringVar(&versionsDefaultLang, "default-language", "",
		"Default language recorded in the manifest meta (default en)")
	cmd.Flags().StringVarP(&versionsOutputPath, "output", "o", "",
		"Manifest output path (default versions.json)")
	cmd.Flags().BoolVar(&versionsStdout, "stdout", false,
		"Write the manifest to stdout instead of a file")
	cmd.Flags().StringVarP(&versionsConfigPath, "config", "c", "",
		"Path to config file")

	return cmd
}

func runVersions(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(versionsConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	req := domain.VersionsRequest{
		LanguagesDir:    cfg.Versions.LanguagesDir,
		Services:        cfg.Versions.Services,
		DefaultLanguage: cfg.Versions.DefaultLanguage,
		OutputPath:      cfg.Versions.OutputPath,
	}

	if cmd.Flags().Changed("languages-dir") {
		req.LanguagesDir = versionsLanguagesDir
	}
	if cmd.Flags().Changed("services") {
		req.Services = versionsServices
	}
	if cmd.Flags().Changed("default-language") {
		req.DefaultLanguage = versionsDefaultLang
	}
	if cmd.Flags().Changed("output") {
		req.OutputPath = versionsOutputPath
	}
	if versionsStdout {
		req.OutputPath = ""
		req.OutputWriter = os.Stdout
	}

	useCase := app.NewVersionsUseCase(service.NewVersionGenerator())
	response, err := useCase.Execute(context.Background(), req)
	if err != nil {
		return err
	}

	app.WriteWarnings(os.Stderr, response.Warnings)

	if req.OutputPath != "" {
		fmt.Printf("%s has been generated successfully.\n", req.OutputPath)
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/locscan/locscan/internal/config"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a locscan configuration file",
		Long: `Generate a documented locscan configuration file with sensible defaults.

By default, creates locscan.yaml in the current directory with full
documentation. Use --interactive for a guided setup wizard.

Examples:
  # Create locscan.yaml in current directory
  locscan init

  # Custom output path
  locscan init --config custom.yaml

  # Overwrite existing file
  locscan init --force

  # Generate smaller config with essential options only
  locscan init --minimal

  # Interactive setup wizard
  locscan init --interactive
  locscan init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", "locscan.yaml",
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	var pipeline config.PipelineType = config.PipelineTypeFull
	var strictness config.Strictness = config.StrictnessStandard

	if interactive {
		var err error
		var interactiveConfigPath string
		pipeline, strictness, interactiveConfigPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
		configPath = interactiveConfigPath
	}

	// Check if file exists
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	// Check if parent directory exists
	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(pipeline, strictness)
	}

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'locscan validate languages/' to validate your locale files.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.PipelineType, config.Strictness, string, error) {
	fmt.Println()
	fmt.Println("locscan Configuration Setup")
	fmt.Println("===========================")
	fmt.Println()

	// Pipeline layout selection
	pipelines := []struct {
		Label string
		Value config.PipelineType
	}{
		{"Website and launcher locales", config.PipelineTypeFull},
		{"Website locales only", config.PipelineTypeWebsite},
		{"Launcher locales only", config.PipelineTypeLauncher},
	}

	pipelineTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	pipelinePrompt := promptui.Select{
		Label:     "Which services carry locale files?",
		Items:     pipelines,
		Templates: pipelineTemplates,
	}

	pipelineIdx, _, err := pipelinePrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("pipeline selection cancelled: %w", err)
	}
	selectedPipeline := pipelines[pipelineIdx].Value

	fmt.Println()

	// Strictness selection
	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "10 MB size cap, 5 minute budget", config.StrictnessStandard},
		{"Relaxed", "Large files allowed, longer budget", config.StrictnessRelaxed},
		{"Strict", "1 MB size cap, tight budget for CI", config.StrictnessStrict},
	}

	strictnessTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	strictnessPrompt := promptui.Select{
		Label:     "How strict should validation be?",
		Items:     strictnessLevels,
		Templates: strictnessTemplates,
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}
	selectedStrictness := strictnessLevels[strictnessIdx].Value

	fmt.Println()

	// Output path prompt
	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", "", fmt.Errorf("output path input cancelled: %w", err)
	}

	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selectedPipeline, selectedStrictness, outputPath, nil
}

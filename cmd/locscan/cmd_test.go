package main

import (
	"testing"
)

func TestValidateCmd_FlagsExist(t *testing.T) {
	cmd := validateCmd()

	expectedFlags := []string{"changed-files", "report", "format", "max-file-size", "workers", "timeout", "show-details", "no-notify", "config"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestValidateCmd_ShortFlags(t *testing.T) {
	cmd := validateCmd()

	shortFlags := map[string]string{
		"r": "report",
		"f": "format",
		"w": "workers",
		"d": "show-details",
		"c": "config",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestValidateCmd_SilencesUsage(t *testing.T) {
	cmd := validateCmd()

	if !cmd.SilenceUsage {
		t.Error("validate should not print usage on validation failures")
	}
	if !cmd.SilenceErrors {
		t.Error("validate handles its own error output")
	}
}

func TestVersionsCmd_FlagsExist(t *testing.T) {
	cmd := versionsCmd()

	expectedFlags := []string{"languages-dir", "services", "default-language", "output", "stdout", "config"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestVersionsCmd_ShortFlags(t *testing.T) {
	cmd := versionsCmd()

	shortFlags := map[string]string{
		"o": "output",
		"c": "config",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestValidateExitError_Error(t *testing.T) {
	err := &ValidateExitError{Code: 1, Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("Error() should return message, got '%s'", err.Error())
	}
}

func TestVersionCmd_FlagsExist(t *testing.T) {
	cmd := versionCmd()

	if cmd == nil {
		t.Fatal("versionCmd should not return nil")
	}

	verboseFlag := cmd.Flags().Lookup("verbose")
	if verboseFlag == nil {
		t.Error("Missing expected flag: --verbose")
	}
}

func TestVersionCmd_ShortFlag(t *testing.T) {
	cmd := versionCmd()

	flag := cmd.Flags().ShorthandLookup("v")
	if flag == nil {
		t.Error("Missing short flag -v for --verbose")
	}
}

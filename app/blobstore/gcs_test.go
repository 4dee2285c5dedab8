package blobstore

import (
	"os"
	"testing"
)

func TestUseEmulator(t *testing.T) {
	t.Setenv("STORAGE_EMULATOR_HOST", "")

	if err := UseEmulator("localhost:4443"); err != nil {
		t.Fatalf("Failed to configure emulator: %v", err)
	}
	if got := os.Getenv("STORAGE_EMULATOR_HOST"); got != "localhost:4443" {
		t.Errorf("Expected emulator host to be exported, got %q", got)
	}
}

func TestUseEmulator_EmptyHost(t *testing.T) {
	t.Setenv("STORAGE_EMULATOR_HOST", "preset:1234")

	if err := UseEmulator(""); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// An unset flag must not clobber an externally provided env var.
	if got := os.Getenv("STORAGE_EMULATOR_HOST"); got != "preset:1234" {
		t.Errorf("Expected env var untouched, got %q", got)
	}
}

package cli

import (
	"path/filepath"
	"testing"
)

func TestParseInterceptedEngineOverride(t *testing.T) {
	it, err := parseIntercepted([]string{"-O", "recipe_engine=/src/engine", "run", "my_recipe"})
	if err != nil {
		t.Fatalf("parseIntercepted returned error: %v", err)
	}
	if it.EngineOverride != "/src/engine" {
		t.Fatalf("expected override /src/engine, got %q", it.EngineOverride)
	}
}

func TestParseInterceptedIgnoresOtherOverrides(t *testing.T) {
	it, err := parseIntercepted([]string{"-O", "depot_tools=/src/depot_tools"})
	if err != nil {
		t.Fatalf("parseIntercepted returned error: %v", err)
	}
	if it.EngineOverride != "" {
		t.Fatalf("expected no engine override, got %q", it.EngineOverride)
	}
}

func TestParseInterceptedLastEngineOverrideWins(t *testing.T) {
	it, err := parseIntercepted([]string{
		"-O", "recipe_engine=/first",
		"-O", "recipe_engine=/second",
	})
	if err != nil {
		t.Fatalf("parseIntercepted returned error: %v", err)
	}
	if it.EngineOverride != "/second" {
		t.Fatalf("expected /second, got %q", it.EngineOverride)
	}
}

func TestParseInterceptedManifestPathIsAbsolute(t *testing.T) {
	it, err := parseIntercepted([]string{"--package", "infra/config/recipes.cfg"})
	if err != nil {
		t.Fatalf("parseIntercepted returned error: %v", err)
	}
	if !filepath.IsAbs(it.ManifestPath) {
		t.Fatalf("expected absolute manifest path, got %q", it.ManifestPath)
	}
}

func TestParseInterceptedVerbose(t *testing.T) {
	it, err := parseIntercepted([]string{"--verbose", "run"})
	if err != nil {
		t.Fatalf("parseIntercepted returned error: %v", err)
	}
	if !it.Verbose {
		t.Fatalf("expected verbose")
	}
}

func TestParseInterceptedSkipsUnknownFlags(t *testing.T) {
	it, err := parseIntercepted([]string{
		"run",
		"--properties-file", "props.json",
		"my_recipe",
		"-O", "recipe_engine=/src/engine",
	})
	if err != nil {
		t.Fatalf("parseIntercepted returned error: %v", err)
	}
	if it.EngineOverride != "/src/engine" {
		t.Fatalf("expected override extracted around unknown flags, got %q", it.EngineOverride)
	}
}

func TestParseInterceptedHelpDoesNotAbort(t *testing.T) {
	if _, err := parseIntercepted([]string{"--help"}); err != nil {
		t.Fatalf("expected --help to pass through, got %v", err)
	}
}

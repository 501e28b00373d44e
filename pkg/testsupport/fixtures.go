// Package testsupport holds helpers shared by package tests: a scripted
// render host and golden file utilities.
package testsupport

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-survey/pkg/model"
)

// MustLoadDefinition loads a survey definition fixture.
func MustLoadDefinition(t *testing.T, path string) *model.Definition {
	t.Helper()

	def, err := model.Load(path)
	if err != nil {
		t.Fatalf("load definition: %v", err)
	}
	return def
}

// MustParseDefinition parses an inline JSON or YAML definition.
func MustParseDefinition(t *testing.T, source string) *model.Definition {
	t.Helper()

	def, err := model.Parse([]byte(source), t.Name())
	if err != nil {
		t.Fatalf("parse definition: %v", err)
	}
	return def
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

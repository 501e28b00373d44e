// Package export moves survey answers in and out of files: JSON for
// round-tripping and XLSX for people who just want a spreadsheet.
package export

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Exporter produces the JSON form of a survey's answers.
type Exporter interface {
	Export() ([]byte, error)
}

// Importer replaces a survey's answers with a previous export. Failed
// imports must leave the answers untouched.
type Importer interface {
	Import(data []byte) error
}

// MaxImportSize bounds the payload accepted by ReadFrom.
const MaxImportSize = 8 << 20

// WriteFile writes the export of src to path, replacing it atomically.
func WriteFile(path string, src Exporter) error {
	data, err := src.Export()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".survey-*.json")
	if err != nil {
		return fmt.Errorf("export: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("export: rename %s: %w", path, err)
	}
	return nil
}

// ReadFile imports the JSON file at path into dst.
func ReadFile(path string, dst Importer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("export: open %s: %w", path, err)
	}
	defer f.Close()
	return ReadFrom(f, dst)
}

// ReadFrom imports a JSON payload from r into dst. Errors from dst are
// returned unwrapped so callers can match survey.ErrParse.
func ReadFrom(r io.Reader, dst Importer) error {
	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		return fmt.Errorf("export: read payload: %w", err)
	}
	if n > MaxImportSize {
		return fmt.Errorf("export: payload exceeds %d bytes", MaxImportSize)
	}
	return dst.Import(buf.Bytes())
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Filename expands {label} in pattern with a file system safe form of label.
// An empty pattern yields "<label>.json".
func Filename(pattern, label string) string {
	safe := strings.Trim(unsafeFilename.ReplaceAllString(label, "-"), "-")
	if safe == "" {
		safe = "survey"
	}
	if strings.TrimSpace(pattern) == "" {
		return safe + ".json"
	}
	return strings.ReplaceAll(pattern, "{label}", safe)
}

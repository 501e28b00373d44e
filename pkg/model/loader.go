package model

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadOption configures Load and Parse.
type LoadOption func(*loadConfig)

type loadConfig struct {
	decorators []Decorator
}

// WithDecorators runs decorators after normalisation and before validation.
func WithDecorators(decorators ...Decorator) LoadOption {
	return func(cfg *loadConfig) {
		cfg.decorators = append(cfg.decorators, decorators...)
	}
}

// Load reads a definition from a JSON or YAML file.
func Load(path string, options ...LoadOption) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	return Parse(data, path, options...)
}

// LoadFS reads a definition from fsys.
func LoadFS(fsys fs.FS, path string, options ...LoadOption) (*Definition, error) {
	if fsys == nil {
		return nil, fmt.Errorf("model: filesystem is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("model: read %s: %w", path, err)
	}
	return Parse(data, path, options...)
}

// Parse decodes, normalises, decorates and validates a definition. JSON is
// tried first, then YAML.
func Parse(data []byte, source string, options ...LoadOption) (*Definition, error) {
	cfg := loadConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	def, err := parseDocument(data, source)
	if err != nil {
		return nil, err
	}
	def.Source = source
	normalise(def)

	for _, decorator := range cfg.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(def); err != nil {
			return nil, fmt.Errorf("model: decorate %s: %w", source, err)
		}
	}

	if err := Validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

func parseDocument(data []byte, source string) (*Definition, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("model: file %s is empty", source)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err == nil {
		return &def, nil
	}

	def = Definition{}
	if err := yaml.Unmarshal(data, &def); err == nil {
		return &def, nil
	}

	return nil, fmt.Errorf("model: parse %s: invalid JSON or YAML", source)
}

func normalise(def *Definition) {
	def.Label = strings.TrimSpace(def.Label)
	for p := range def.Pages {
		page := &def.Pages[p]
		page.Label = strings.TrimSpace(page.Label)
		for q := range page.Questions {
			question := &page.Questions[q]
			question.ID = strings.TrimSpace(question.ID)
			question.Kind = strings.TrimSpace(question.Kind)
			question.VisibleIf = strings.TrimSpace(question.VisibleIf)
			if kind := question.RenderKind(); kind != "" {
				question.Kind = string(kind)
			}
		}
	}
}

package web

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const pageTemplate = "survey.html"

// TemplatesFS exposes the built-in templates so callers can copy or extend
// them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

type templates struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
}

func newTemplates(fsys fs.FS) *templates {
	if fsys == nil {
		fsys = TemplatesFS()
	}
	return &templates{
		set:   pongo2.NewSet("survey", pongo2.NewFSLoader(fsys)),
		cache: make(map[string]*pongo2.Template),
	}
}

func (t *templates) render(name string, data pongo2.Context) ([]byte, error) {
	tmpl, err := t.lookup(name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(data, &buf); err != nil {
		return nil, fmt.Errorf("web: execute template %q: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (t *templates) lookup(name string) (*pongo2.Template, error) {
	t.mu.RLock()
	tmpl, ok := t.cache[name]
	t.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if tmpl, ok := t.cache[name]; ok {
		return tmpl, nil
	}
	tmpl, err := t.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("web: load template %q: %w", name, err)
	}
	t.cache[name] = tmpl
	return tmpl, nil
}

package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/RockyKGFV/2201CS78-Faculty-Recruitment/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "layout.html"

// Views renders the embedded page templates. Every page is parsed together
// with the shared layout and executed through it.
type Views struct {
	mu    sync.RWMutex
	fsys  fs.FS
	pages map[string]*template.Template
}

// NewViews returns the view engine backed by the embedded templates.
func NewViews() *Views {
	sub, _ := fs.Sub(templateFS, "templates")
	return &Views{fsys: sub}
}

var viewFuncs = template.FuncMap{
	"fileURL": service.FileURL,
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"inc": func(i int) int { return i + 1 },
}

// Load parses every page template. It satisfies fiber.Views.
func (v *Views) Load() error {
	names, err := fs.Glob(v.fsys, "*.html")
	if err != nil {
		return err
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutFile {
			continue
		}
		t, err := template.New(name).Funcs(viewFuncs).ParseFS(v.fsys, layoutFile, name)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, path.Ext(name))] = t
	}

	v.mu.Lock()
	v.pages = pages
	v.mu.Unlock()
	return nil
}

// Render executes the named page through the layout.
func (v *Views) Render(w io.Writer, name string, binding interface{}, _ ...string) error {
	v.mu.RLock()
	t, ok := v.pages[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("view %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", binding)
}

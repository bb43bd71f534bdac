// Package view renders the site's HTML pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/aussiebroadwan/estate/internal/estate/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	Home     = "home"
	Property = "property"
	Search   = "search"
	Login    = "login"
	Register = "register"
	Error    = "error"
)

// Page is the data every template receives.
type Page struct {
	Title    string
	LoggedIn bool
	Username string
	Notices  []domain.Notice

	HeaderImageURL  string
	CompanyImageURL string

	Listings []domain.Listing
	Listing  domain.Listing
	Agents   []domain.Agent
	Reviews  []domain.Review
	Query    string
}

// Renderer writes a named page.
type Renderer interface {
	Render(w io.Writer, name string, page Page) error
}

// Templates renders the embedded html/template pages. Each page is parsed
// together with the shared layout.
type Templates struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"stars": func(n int) []struct{} { return make([]struct{}, max(n, 0)) },
}

func NewTemplates() (*Templates, error) {
	t := &Templates{pages: make(map[string]*template.Template)}
	for _, name := range []string{Home, Property, Search, Login, Register, Error} {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		t.pages[name] = tmpl
	}
	return t, nil
}

// Render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (t *Templates) Render(w io.Writer, name string, page Page) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("view: render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

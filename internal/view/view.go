// Package view renders the server-side HTML pages. Templates are embedded
// in the binary; every page is parsed together with the shared layout and
// executed through it.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/listings/internal/session"
)

//go:embed templates
var templates embed.FS

// Pages lists every template the handlers may render.
var Pages = []string{
	"listings/index.html",
	"listings/new.html",
	"listings/show.html",
	"listings/edit.html",
	"listings/book.html",
	"bookings/index.html",
	"users/signup.html",
	"users/login.html",
	"error.html",
}

// Page is the value every template is executed with.
type Page struct {
	Title    string
	Flash    session.Flash
	Username string // empty for anonymous visitors
	Data     any
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"price": func(p float64) string { return fmt.Sprintf("%.2f", p) },
	"stars": func(n int) string {
		n = max(0, min(n, 5))
		return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
	},
}

// New parses the layout with each page.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, name := range Pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templates, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the named page through the layout. data must be a Page.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}

// Package views renders the HTML pages of the catalog.
package views

import (
	"MachineCatalog/internal/model"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var files embed.FS

// Имена страниц.
const (
	PageIndex    = "index"
	PageNew      = "new"
	PageShow     = "show"
	PageEdit     = "edit"
	PageLogin    = "login"
	PageContacts = "contacts"
	PageError    = "error"
)

var pageNames = []string{PageIndex, PageNew, PageShow, PageEdit, PageLogin, PageContacts, PageError}

// Page данные для любого шаблона.
type Page struct {
	Title string
	// User имя залогиненного пользователя, пусто для анонима
	User  string
	Flash map[string][]string

	Machines []model.Machine
	Machine  *model.Machine

	Status  int
	Message string
}

// Renderer держит разобранные шаблоны: layout + страница.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.ParseFS(files, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render пишет страницу целиком или ничего: при ошибке шаблона в w не попадает обрывок.
func (r *Renderer) Render(w io.Writer, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", p); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

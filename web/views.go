package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"feiyi/internal/models"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutTemplate = "layout.html"

// Views renders the site pages. It implements fiber.Views.
type Views struct {
	templates map[string]*template.Template
	markdown  goldmark.Markdown
}

func NewViews() *Views {
	return &Views{
		templates: make(map[string]*template.Template),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Load parses every page together with the shared layout.
func (v *Views) Load() error {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return err
	}

	for _, page := range pages {
		base := path.Base(page)
		if base == layoutTemplate {
			continue
		}
		t, err := template.New(layoutTemplate).
			Funcs(v.funcs()).
			ParseFS(templateFS, "templates/"+layoutTemplate, page)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", base, err)
		}
		v.templates[strings.TrimSuffix(base, ".html")] = t
	}
	return nil
}

func (v *Views) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	t, ok := v.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, layoutTemplate, data)
}

func (v *Views) funcs() template.FuncMap {
	return template.FuncMap{
		"markdown":     v.renderMarkdown,
		"categoryName": categoryName,
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"truncate":     truncate,
	}
}

// renderMarkdown converts text to HTML. Raw HTML in the source is dropped.
func (v *Views) renderMarkdown(s string) template.HTML {
	var buf bytes.Buffer
	if err := v.markdown.Convert([]byte(s), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(s))
	}
	return template.HTML(buf.String())
}

func categoryName(id int64) string {
	if c, ok := models.FindCategory(id); ok {
		return c.Name
	}
	return "未知分类"
}

func truncate(n int, s string) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// StaticFS exposes the embedded assets rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

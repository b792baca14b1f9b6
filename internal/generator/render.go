package generator

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-articles/pkg/interfaces"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// SiteContext exposes site identity to templates.
type SiteContext struct {
	BaseURL  string
	Name     string
	Author   string
	Language string
}

// ArticleView is the data contract for a rendered article page.
type ArticleView struct {
	Site      SiteContext
	Title     string
	Slug      string
	Summary   string
	Canonical string
	Status    string
	DateISO   string
	Body      template.HTML
	JSONLD    template.JS
}

// IndexRow is one entry of the article index listing.
type IndexRow struct {
	Title       string
	Slug        string
	Summary     string
	Href        string
	DateDisplay string
}

// IndexView is the data contract for the article index page.
type IndexView struct {
	Site        SiteContext
	Title       string
	Description string
	Canonical   string
	Rows        []IndexRow
	JSONLD      template.JS
}

// RenderedPage captures a rendered output document.
type RenderedPage struct {
	Route    string
	Output   string
	HTML     string
	Checksum string
	LastMod  time.Time
}

// RenderDiagnostic records rendering outcomes for individual pages.
type RenderDiagnostic struct {
	Route    string
	Source   string
	Duration time.Duration
	Skipped  bool
	Err      error
}

// NewTemplateRenderer returns an html/template backed renderer. Templates
// are loaded from overrideDir when provided, falling back to the embedded
// defaults; the template set is parsed once on first use.
func NewTemplateRenderer(overrideDir string) interfaces.TemplateRenderer {
	return &templateRenderer{overrideDir: strings.TrimSpace(overrideDir)}
}

type templateRenderer struct {
	overrideDir string
	once        sync.Once
	tpl         *template.Template
	err         error
}

func (r *templateRenderer) ensure() (*template.Template, error) {
	r.once.Do(func() {
		root := template.New("site").Funcs(templateFuncs())

		parsed, err := root.ParseFS(defaultTemplates, "templates/*.tmpl")
		if err != nil {
			r.err = fmt.Errorf("generator: parse embedded templates: %w", err)
			return
		}

		if r.overrideDir != "" {
			overrides, err := collectTemplateFiles(r.overrideDir)
			if err != nil {
				r.err = err
				return
			}
			if len(overrides) > 0 {
				if parsed, err = parsed.ParseFiles(overrides...); err != nil {
					r.err = fmt.Errorf("generator: parse template overrides: %w", err)
					return
				}
			}
		}

		r.tpl = parsed
	})
	return r.tpl, r.err
}

func (r *templateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	tpl, err := r.ensure()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("generator: render %s: %w", name, err)
	}
	return emit(buf, out)
}

func (r *templateRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tpl, err := template.New("inline").Funcs(templateFuncs()).Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("generator: parse inline template: %w", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("generator: render inline template: %w", err)
	}
	return emit(buf, out)
}

func emit(buf bytes.Buffer, out []io.Writer) (string, error) {
	if len(out) > 0 && out[0] != nil {
		if _, err := out[0].Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(value any) template.HTML {
			switch v := value.(type) {
			case template.HTML:
				return v
			case string:
				return template.HTML(v)
			case []byte:
				return template.HTML(v)
			default:
				return template.HTML(fmt.Sprint(v))
			}
		},
	}
}

func collectTemplateFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".tmpl" && ext != ".html" {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("generator: inspect template dir %s: %w", dir, err)
	}
	return files, nil
}

// articleJSONLD builds the structured-data script body for an article page.
func articleJSONLD(view ArticleView) (template.JS, error) {
	person := map[string]string{"@type": "Person", "name": view.Site.Author}
	payload := map[string]any{
		"@context":         "https://schema.org",
		"@type":            "Article",
		"headline":         view.Title,
		"description":      view.Summary,
		"author":           person,
		"datePublished":    view.DateISO,
		"dateModified":     view.DateISO,
		"mainEntityOfPage": view.Canonical,
		"url":              view.Canonical,
		"publisher":        person,
	}
	return marshalJSONLD(payload)
}

// indexJSONLD builds the CollectionPage structured-data script body.
func indexJSONLD(view IndexView) (template.JS, error) {
	payload := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "CollectionPage",
		"name":        view.Title,
		"description": view.Description,
		"url":         view.Canonical,
	}
	return marshalJSONLD(payload)
}

func marshalJSONLD(payload map[string]any) (template.JS, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("generator: marshal json-ld: %w", err)
	}
	return template.JS(data), nil
}

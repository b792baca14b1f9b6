package generator

import (
	"html/template"
	"strings"
	"testing"
)

func articleView() ArticleView {
	view := ArticleView{
		Site: SiteContext{
			BaseURL:  "https://example.com",
			Name:     "Example Site",
			Author:   "Jane Doe",
			Language: "en",
		},
		Title:     "First Post",
		Slug:      "first-post",
		Summary:   "A short summary.",
		Canonical: "https://example.com/articles/first-post/",
		Status:    "published",
		DateISO:   "2026-03-01",
		Body:      template.HTML("<p>Hello <strong>world</strong>.</p>"),
	}
	ld, _ := articleJSONLD(view)
	view.JSONLD = ld
	return view
}

func TestRenderArticleTemplate(t *testing.T) {
	renderer := NewTemplateRenderer("")

	out, err := renderer.Render("article", articleView())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		`<!doctype html>`,
		`<html lang="en">`,
		`<title>First Post</title>`,
		`<link rel="canonical" href="https://example.com/articles/first-post/" />`,
		`<meta name="article:published" content="2026-03-01" />`,
		`<meta name="article:status" content="published" />`,
		`<p class="published">Published on 2026-03-01</p>`,
		`<p>Hello <strong>world</strong>.</p>`,
		`"@type":"Article"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("article page missing %q:\n%s", want, out)
		}
	}
}

func TestRenderArticleTemplateOmitsEmptyDate(t *testing.T) {
	view := articleView()
	view.DateISO = ""

	renderer := NewTemplateRenderer("")
	out, err := renderer.Render("article", view)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if strings.Contains(out, "Published on") {
		t.Fatalf("undated page should not carry the marker:\n%s", out)
	}
	if strings.Contains(out, `name="article:published"`) {
		t.Fatalf("undated page should not carry the published meta tag:\n%s", out)
	}
}

func TestRenderIndexTemplate(t *testing.T) {
	view := IndexView{
		Site:        SiteContext{Name: "Example Site", Author: "Jane Doe", Language: "en"},
		Title:       "Articles",
		Description: "Articles by Jane Doe.",
		Canonical:   "https://example.com/articles/",
		Rows: []IndexRow{
			{Title: "First Post", Slug: "first-post", Summary: "A short summary.", Href: "/articles/first-post/", DateDisplay: "Mar 1, 2026"},
			{Title: "Older Post", Slug: "older-post", Href: "/articles/older-post/", DateDisplay: "Jan 15, 2026"},
		},
	}
	ld, err := indexJSONLD(view)
	if err != nil {
		t.Fatalf("indexJSONLD: %v", err)
	}
	view.JSONLD = ld

	renderer := NewTemplateRenderer("")
	out, err := renderer.Render("index", view)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		`<link rel="canonical" href="https://example.com/articles/" />`,
		`Newest first.`,
		`<a href="/articles/first-post/">First Post</a>`,
		`Mar 1, 2026`,
		`"@type":"CollectionPage"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("index page missing %q:\n%s", want, out)
		}
	}

	firstIdx := strings.Index(out, "First Post")
	olderIdx := strings.Index(out, "Older Post")
	if firstIdx < 0 || olderIdx < firstIdx {
		t.Fatalf("rows out of order:\n%s", out)
	}
}

func TestRenderEscapesUntrustedFields(t *testing.T) {
	view := articleView()
	view.Title = `<script>alert("x")</script>`
	ld, _ := articleJSONLD(view)
	view.JSONLD = ld

	renderer := NewTemplateRenderer("")
	out, err := renderer.Render("article", view)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(out, `<title><script>`) {
		t.Fatalf("title not escaped:\n%s", out)
	}
}

func TestRenderString(t *testing.T) {
	renderer := NewTemplateRenderer("")
	out, err := renderer.RenderString(`Hello {{.Name}}`, map[string]string{"Name": "World"})
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if out != "Hello World" {
		t.Fatalf("RenderString = %q", out)
	}
}

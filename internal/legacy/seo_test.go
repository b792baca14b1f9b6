package legacy

import (
	"bytes"
	"strings"
	"testing"
)

func TestEnhanceSEO(t *testing.T) {
	page := readFixture(t, "testdata/legacy.html")
	site := Site{Name: "Example Site", Author: "Jane Doe"}

	enhanced, changed := EnhanceSEO(page, site)
	if !changed {
		t.Fatalf("expected enhancement to run")
	}

	out := string(enhanced)
	for _, want := range []string{
		`<meta name="description" content="`,
		`<meta property="og:title" content="Hand Written Article" />`,
		`<meta property="og:url" content="https://example.com/articles/hand-written/" />`,
		`<meta property="og:site_name" content="Example Site" />`,
		`<meta name="article:published" content="2019-06-12" />`,
		`<meta name="twitter:card" content="summary" />`,
		`"@type":"Article"`,
		`"datePublished":"2019-06-12"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("enhanced page missing %q\n%s", want, out)
		}
	}

	// The block lands right after the canonical link.
	canonicalIdx := strings.Index(out, `rel="canonical"`)
	descriptionIdx := strings.Index(out, `name="description"`)
	if canonicalIdx < 0 || descriptionIdx < canonicalIdx {
		t.Fatalf("metadata not inserted after canonical link")
	}

	// The navigation text must not leak into the description.
	if strings.Contains(out, `content="Home Articles Videos`) {
		t.Fatalf("nav prefix leaked into description")
	}
}

func TestEnhanceSEOIdempotent(t *testing.T) {
	page := readFixture(t, "testdata/legacy.html")
	site := Site{Name: "Example Site", Author: "Jane Doe"}

	once, changed := EnhanceSEO(page, site)
	if !changed {
		t.Fatalf("expected first enhancement to run")
	}
	twice, _ := EnhanceSEO(once, site)
	if !bytes.Equal(once, twice) {
		t.Fatalf("repeated enhancement changed the page")
	}
	if n := strings.Count(string(twice), `name="description"`); n != 1 {
		t.Fatalf("expected one description tag, got %d", n)
	}
}

func TestEnhanceSEOSkipsModernPages(t *testing.T) {
	page := []byte(`<!doctype html>
<html><head><title>Modern</title>
<link rel="canonical" href="https://example.com/articles/modern/" />
</head><body></body></html>`)

	_, changed := EnhanceSEO(page, Site{})
	if changed {
		t.Fatalf("doctype pages must be left untouched")
	}
}

func TestEnhanceSEOSkipsPagesWithoutAnchors(t *testing.T) {
	page := []byte(`<html><head><title>No Canonical</title></head><body></body></html>`)

	_, changed := EnhanceSEO(page, Site{})
	if changed {
		t.Fatalf("pages without a canonical link must be left untouched")
	}
}

func TestEnhanceSEOEscapesAttributeValues(t *testing.T) {
	page := []byte(`<html><head>
<title>Quotes "inside" &amp; more</title>
<link rel="canonical" href="https://example.com/articles/quotes/" />
</head><body><div><p>Body text for the description.</p></div></body></html>`)

	enhanced, changed := EnhanceSEO(page, Site{Name: "S", Author: "A"})
	if !changed {
		t.Fatalf("expected enhancement to run")
	}
	if strings.Contains(string(enhanced), `content="Quotes "inside"`) {
		t.Fatalf("unescaped quotes in attribute value")
	}
}

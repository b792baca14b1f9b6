package legacy

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestExtract(t *testing.T) {
	meta, err := Extract(readFixture(t, "testdata/legacy.html"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if meta.Title != "Hand Written Article" {
		t.Fatalf("Title = %q", meta.Title)
	}
	if meta.Canonical != "https://example.com/articles/hand-written/" {
		t.Fatalf("Canonical = %q", meta.Canonical)
	}
	if !meta.HasDate {
		t.Fatalf("expected the marker date to parse")
	}
	want := time.Date(2019, 6, 12, 0, 0, 0, 0, time.UTC)
	if !meta.PublishedAt.Equal(want) {
		t.Fatalf("PublishedAt = %v, want %v", meta.PublishedAt, want)
	}
	if meta.Status != "published" {
		t.Fatalf("Status = %q", meta.Status)
	}
}

func TestExtractMetaTagFallback(t *testing.T) {
	page := []byte(`<!doctype html>
<html><head>
<title>Modern Page</title>
<meta name="article:published" content="2026-02-10" />
<meta name="article:status" content="draft" />
</head><body><h1>Modern Page</h1></body></html>`)

	meta, err := Extract(page)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !meta.HasDate || meta.RawDate != "2026-02-10" {
		t.Fatalf("meta tag date not recovered: %+v", meta)
	}
	if meta.Status != "draft" {
		t.Fatalf("Status = %q", meta.Status)
	}
}

func TestExtractMissingDate(t *testing.T) {
	page := []byte(`<html><head><title>No Date</title></head><body><h1>No Date</h1></body></html>`)

	meta, err := Extract(page)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.HasDate {
		t.Fatalf("expected no date, got %v", meta.PublishedAt)
	}
	if meta.Status != "published" {
		t.Fatalf("missing status should default to published, got %q", meta.Status)
	}
}

func TestExtractMarkerWinsOverMetaTag(t *testing.T) {
	page := []byte(`<html><head>
<meta name="article:published" content="2020-01-01" />
</head><body>
<h1>Title</h1>
<p class="published">Published on 2019-06-12</p>
</body></html>`)

	meta, err := Extract(page)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if meta.RawDate != "2019-06-12" {
		t.Fatalf("marker should take precedence, got %q", meta.RawDate)
	}
}

func TestExtractIgnoresScriptText(t *testing.T) {
	page := []byte(`<html><body><h1>Real <script>var x = "Fake"</script>Title</h1></body></html>`)

	meta, err := Extract(page)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if strings.Contains(meta.Title, "Fake") {
		t.Fatalf("script text leaked into title: %q", meta.Title)
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

package legacy

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const publishedPrefix = "published on"

// markerFormats lists the accepted published marker date spellings, most
// specific first.
var markerFormats = []string{
	"2006-01-02 15:04",
	"2006-01-02",
}

// Meta captures the metadata recoverable from a legacy article page.
type Meta struct {
	Title       string
	Canonical   string
	PublishedAt time.Time
	HasDate     bool
	RawDate     string
	Status      string
}

// Extract walks the page and recovers title, canonical URL, publish date,
// and status. The publish date comes from the marker paragraph
// (`<p class="published">Published on ...</p>`) with the
// `article:published` meta tag as fallback, matching how modern article
// pages record it. Status defaults to published.
func Extract(source []byte) (Meta, error) {
	root, err := html.Parse(bytes.NewReader(source))
	if err != nil {
		return Meta{}, fmt.Errorf("legacy: parse html: %w", err)
	}

	meta := Meta{
		Status: "published",
	}

	var markerDate, metaDate string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1":
				if meta.Title == "" {
					meta.Title = collapseWhitespace(nodeText(n))
				}
			case "p":
				if markerDate == "" && hasClass(n, "published") {
					text := collapseWhitespace(nodeText(n))
					if raw, ok := cutMarker(text); ok {
						markerDate = raw
					}
				}
			case "link":
				if meta.Canonical == "" && attr(n, "rel") == "canonical" {
					meta.Canonical = strings.TrimSpace(attr(n, "href"))
				}
			case "meta":
				switch strings.ToLower(attr(n, "name")) {
				case "article:published":
					metaDate = strings.TrimSpace(attr(n, "content"))
				case "article:status":
					if status := strings.ToLower(strings.TrimSpace(attr(n, "content"))); status != "" {
						meta.Status = status
					}
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	raw := markerDate
	if raw == "" {
		raw = metaDate
	}
	meta.RawDate = raw
	if raw != "" {
		for _, format := range markerFormats {
			if parsed, err := time.Parse(format, raw); err == nil {
				meta.PublishedAt = parsed
				meta.HasDate = true
				break
			}
		}
	}

	return meta, nil
}

// cutMarker strips the "Published on" prefix from the marker paragraph text.
func cutMarker(text string) (string, bool) {
	lower := strings.ToLower(text)
	idx := strings.Index(lower, publishedPrefix)
	if idx < 0 {
		return "", false
	}
	return strings.TrimSpace(text[idx+len(publishedPrefix):]), true
}

func nodeText(n *html.Node) string {
	var builder strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			builder.WriteString(node.Data)
		}
		if node.Type == html.ElementNode && (node.Data == "script" || node.Data == "style") {
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return builder.String()
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

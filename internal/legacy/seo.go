package legacy

import (
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Site carries the identity fields stamped into enhanced metadata.
type Site struct {
	Name   string
	Author string
}

var (
	titleRe     = regexp.MustCompile(`(?is)<title>(.*?)</title>`)
	canonicalRe = regexp.MustCompile(`(?i)<link\s+rel="canonical"\s+href="([^"]+)"\s*/?>`)
	publishedRe = regexp.MustCompile(`(?i)Published on\s+(\d{4}-\d{2}-\d{2})`)
	headCloseRe = regexp.MustCompile(`(?i)</head>`)
	articleRe   = regexp.MustCompile(`(?is)<article\b[^>]*>(.*?)</article>`)
	divRe       = regexp.MustCompile(`(?is)<div\b[^>]*>.*?</div>`)
	navPrefixRe = regexp.MustCompile(`(?i)^Home\s+Articles\s+Videos\s+`)
)

// cleanupRes matches metadata previously injected by this enhancer so
// repeated runs replace rather than accumulate.
var cleanupRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*<meta name="description" content="[^"]*"\s*/?>`),
	regexp.MustCompile(`(?i)\s*<meta name="article:published" content="[^"]*"\s*/?>`),
	regexp.MustCompile(`(?i)\s*<meta property="og:type" content="[^"]*"\s*/?>`),
	regexp.MustCompile(`(?i)\s*<meta property="og:title" content="[^"]*"\s*/?>`),
	regexp.MustCompile(`(?i)\s*<meta property="og:description" content="[^"]*"\s*/?>`),
	regexp.MustCompile(`(?i)\s*<meta property="og:url" content="[^"]*"\s*/?>`),
	regexp.MustCompile(`(?i)\s*<meta property="og:site_name" content="[^"]*"\s*/?>`),
	regexp.MustCompile(`(?i)\s*<meta name="twitter:card" content="[^"]*"\s*/?>`),
	regexp.MustCompile(`(?i)\s*<meta name="twitter:title" content="[^"]*"\s*/?>`),
	regexp.MustCompile(`(?i)\s*<meta name="twitter:description" content="[^"]*"\s*/?>`),
	regexp.MustCompile(`(?is)\s*<script type="application/ld\+json">\{.*?"@type":\s*"Article".*?\}</script>`),
}

type jsonLDPerson struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type articleJSONLD struct {
	Context          string       `json:"@context"`
	Type             string       `json:"@type"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description"`
	Author           jsonLDPerson `json:"author"`
	DatePublished    string       `json:"datePublished,omitempty"`
	DateModified     string       `json:"dateModified,omitempty"`
	MainEntityOfPage string       `json:"mainEntityOfPage"`
	URL              string       `json:"url"`
	Publisher        jsonLDPerson `json:"publisher"`
}

// EnhanceSEO injects description, OpenGraph/Twitter tags, and an Article
// JSON-LD block into a legacy page that lacks them. Modern pages (those
// starting from the doctype template) and pages missing the title or
// canonical anchors are left untouched; the second return value reports
// whether the page changed.
func EnhanceSEO(page []byte, site Site) ([]byte, bool) {
	source := string(page)
	if strings.Contains(strings.ToLower(source), "<!doctype html>") {
		return page, false
	}

	titleMatch := titleRe.FindStringSubmatch(source)
	canonicalMatch := canonicalRe.FindStringSubmatch(source)
	if titleMatch == nil || canonicalMatch == nil {
		return page, false
	}

	title := collapseWhitespace(titleMatch[1])
	canonical := strings.TrimSpace(canonicalMatch[1])

	published := ""
	if m := publishedRe.FindStringSubmatch(source); m != nil {
		published = m[1]
	}

	description := Description(page, 160)

	ld := articleJSONLD{
		Context:          "https://schema.org",
		Type:             "Article",
		Headline:         title,
		Description:      description,
		Author:           jsonLDPerson{Type: "Person", Name: site.Author},
		MainEntityOfPage: canonical,
		URL:              canonical,
		Publisher:        jsonLDPerson{Type: "Person", Name: site.Author},
	}
	if published != "" {
		ld.DatePublished = published
		ld.DateModified = published
	}
	ldJSON, err := json.Marshal(ld)
	if err != nil {
		return page, false
	}

	var block strings.Builder
	writeMeta := func(attr, key, value string) {
		fmt.Fprintf(&block, "\n  <meta %s=\"%s\" content=\"%s\" />", attr, key, html.EscapeString(value))
	}
	writeMeta("name", "description", description)
	if published != "" {
		writeMeta("name", "article:published", published)
	}
	writeMeta("property", "og:type", "article")
	writeMeta("property", "og:title", title)
	writeMeta("property", "og:description", description)
	writeMeta("property", "og:url", canonical)
	writeMeta("property", "og:site_name", site.Name)
	writeMeta("name", "twitter:card", "summary")
	writeMeta("name", "twitter:title", title)
	writeMeta("name", "twitter:description", description)
	fmt.Fprintf(&block, "\n  <script type=\"application/ld+json\">%s</script>", ldJSON)

	cleaned := source
	for _, re := range cleanupRes {
		cleaned = re.ReplaceAllString(cleaned, "")
	}

	if loc := canonicalRe.FindStringIndex(cleaned); loc != nil {
		return []byte(cleaned[:loc[1]] + block.String() + cleaned[loc[1]:]), true
	}

	if loc := headCloseRe.FindStringIndex(cleaned); loc != nil {
		return []byte(cleaned[:loc[0]] + block.String() + "\n" + cleaned[loc[0]:]), true
	}

	return page, false
}

// Description derives a plain-text summary from the page's main content
// region, dropping the navigation prefix shared by the site templates.
func Description(page []byte, limit int) string {
	text := navPrefixRe.ReplaceAllString(PlainText([]byte(contentFragment(string(page)))), "")
	return Truncate(text, limit)
}

// contentFragment picks the best region to summarise: the article element,
// else the longest div block, else everything following the body tag.
func contentFragment(source string) string {
	bodyIdx := strings.Index(strings.ToLower(source), "<body")
	body := source
	if bodyIdx >= 0 {
		body = source[bodyIdx:]
	}

	if m := articleRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}

	longest := ""
	for _, block := range divRe.FindAllString(body, -1) {
		if len(block) > len(longest) {
			longest = block
		}
	}
	if longest != "" {
		return longest
	}

	return body
}

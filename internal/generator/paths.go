package generator

import (
	"path"
	"strings"
)

// buildOutputPath maps a site route to the file that serves it: "/" becomes
// index.html, "/articles/foo/" becomes articles/foo/index.html.
func buildOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	if strings.HasSuffix(clean, ".html") {
		return clean
	}
	return path.Join(clean, "index.html")
}

// routeForSlug returns the site-relative route for an article slug.
func routeForSlug(slug string) string {
	return "/articles/" + slug + "/"
}

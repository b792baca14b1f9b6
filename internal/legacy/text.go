package legacy

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// PlainText strips markup from an HTML fragment, skipping script and style
// content, and collapses runs of whitespace.
func PlainText(fragment []byte) string {
	root, err := html.Parse(bytes.NewReader(fragment))
	if err != nil {
		return collapseWhitespace(string(fragment))
	}
	return collapseWhitespace(nodeText(root))
}

// Truncate shortens text to at most limit runes, breaking on a word
// boundary and appending an ellipsis when content was dropped. Limits too
// small to carry an ellipsis return the bare head of the text.
func Truncate(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	cut := string(runes[:limit-3])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

func collapseWhitespace(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

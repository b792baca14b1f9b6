// Package markdown implements the Markdown side of article ingestion:
// frontmatter extraction, goldmark HTML rendering, and filesystem discovery
// of article sources.
package markdown

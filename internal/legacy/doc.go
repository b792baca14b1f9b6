// Package legacy handles article pages that exist only as HTML: metadata is
// recovered from the published marker paragraph, a first-level heading, and
// article meta tags rather than frontmatter. It also upgrades such pages
// with the SEO metadata block modern article pages carry.
package legacy

package articles

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes article source formats.
type Kind string

const (
	// KindMarkdown marks articles built from index.md sources.
	KindMarkdown Kind = "markdown"
	// KindLegacy marks articles that exist only as hand-written HTML.
	KindLegacy Kind = "legacy"
)

// Status enumerates article publication states.
type Status string

const (
	StatusPublished Status = "published"
	StatusDraft     Status = "draft"
)

// Record is the canonical article entry derived from one source folder. A
// fresh set is built on every scan; nothing persists between runs.
type Record struct {
	ID      uuid.UUID
	Slug    string
	Title   string
	Summary string
	Status  Status
	Kind    Kind

	// PublishedAt is meaningful only when HasDate is true. Records without
	// a parseable date are excluded from the dated index and sitemap.
	PublishedAt time.Time
	HasDate     bool

	// BodyHTML is the rendered Markdown body for markdown records; legacy
	// records keep their own markup and leave this empty.
	BodyHTML []byte

	Source       string
	LastModified time.Time
}

// ScanResult groups the outcome of one pass over the articles directory.
type ScanResult struct {
	// Published holds dated, published records ordered newest first; ties
	// keep discovery order.
	Published []*Record
	// Undated holds published records that were excluded from the dated
	// index because no publish date could be parsed.
	Undated []*Record
	// Drafts holds records excluded by status.
	Drafts []*Record
	// Warnings collects the per-article problems reported to the operator.
	Warnings []Warning
}

// Warning records a non-fatal per-article problem.
type Warning struct {
	Source string
	Reason string
}

// All returns every record that survives the status filter, dated first.
func (r *ScanResult) All() []*Record {
	out := make([]*Record, 0, len(r.Published)+len(r.Undated))
	out = append(out, r.Published...)
	out = append(out, r.Undated...)
	return out
}

package articles

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/goliatone/go-articles/internal/identity"
	"github.com/goliatone/go-articles/internal/legacy"
	"github.com/goliatone/go-articles/internal/logging"
	"github.com/goliatone/go-articles/internal/markdown"
	"github.com/goliatone/go-articles/pkg/interfaces"
)

const (
	defaultSummaryLength = 160
	defaultPattern       = "index.md"
)

// Config captures scan behaviour for the article service.
type Config struct {
	// Legacy enables discovery of HTML-only article folders.
	Legacy bool
	// Pattern names the Markdown source inside each article folder
	// (defaults to index.md).
	Pattern string
	// SummaryLength bounds derived summaries (defaults to 160).
	SummaryLength int
}

// Service derives the article record set from the current filesystem
// contents. Records are rebuilt from scratch on every call; the service
// keeps no state between scans.
type Service struct {
	fs      fs.FS
	loader  *markdown.Loader
	parser  interfaces.MarkdownParser
	logger  interfaces.Logger
	legacy  bool
	pattern string
	summary int
}

// NewService constructs the scanner over the supplied article filesystem.
// The filesystem root is the articles directory itself: one folder per
// article, each holding the configured Markdown source (index.md by
// default) or a legacy index.html.
func NewService(filesystem fs.FS, parser interfaces.MarkdownParser, cfg Config, logger interfaces.Logger) (*Service, error) {
	if filesystem == nil {
		return nil, ErrArticlesDirRequired
	}
	if parser == nil {
		return nil, ErrParserRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	summary := cfg.SummaryLength
	if summary <= 0 {
		summary = defaultSummaryLength
	}
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = defaultPattern
	}
	return &Service{
		fs:      filesystem,
		loader:  markdown.NewLoader(filesystem, markdown.LoaderConfig{Pattern: pattern}),
		parser:  parser,
		logger:  logger,
		legacy:  cfg.Legacy,
		pattern: pattern,
		summary: summary,
	}, nil
}

// Scan walks the articles directory and returns the derived record set.
// Published records come back sorted by publish date descending; the sort is
// stable so folder-name order breaks ties.
func (s *Service) Scan(ctx context.Context) (*ScanResult, error) {
	entries, err := fs.ReadDir(s.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("articles: read articles dir: %w", err)
	}

	result := &ScanResult{}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() || skipFolder(entry.Name()) {
			continue
		}

		folder := entry.Name()
		record, warnings, err := s.scanFolder(ctx, folder)
		if err != nil {
			return nil, err
		}
		result.Warnings = append(result.Warnings, warnings...)
		if record == nil {
			continue
		}

		switch {
		case record.Status != StatusPublished:
			result.Drafts = append(result.Drafts, record)
		case !record.HasDate:
			result.Undated = append(result.Undated, record)
		default:
			result.Published = append(result.Published, record)
		}
	}

	sort.SliceStable(result.Published, func(i, j int) bool {
		return result.Published[i].PublishedAt.After(result.Published[j].PublishedAt)
	})

	for _, warning := range result.Warnings {
		logging.WithArticleContext(s.logger, warning.Source, "", "scan").
			Warn("article metadata problem", "reason", warning.Reason)
	}

	return result, nil
}

// scanFolder builds the record for one article folder, preferring the
// Markdown source when both formats are present.
func (s *Service) scanFolder(ctx context.Context, folder string) (*Record, []Warning, error) {
	mdPath := path.Join(folder, s.pattern)
	if _, err := fs.Stat(s.fs, mdPath); err == nil {
		return s.scanMarkdown(ctx, folder, mdPath)
	}

	if !s.legacy {
		return nil, nil, nil
	}

	htmlPath := path.Join(folder, "index.html")
	if _, err := fs.Stat(s.fs, htmlPath); err != nil {
		return nil, nil, nil
	}
	return s.scanLegacy(folder, htmlPath)
}

func (s *Service) scanMarkdown(ctx context.Context, folder, mdPath string) (*Record, []Warning, error) {
	loaded, err := s.loader.LoadFile(ctx, mdPath)
	if err != nil {
		return nil, nil, err
	}
	doc := loaded.Document
	fm := doc.FrontMatter

	slugValue, warnings := s.resolveSlug(folder, fm.Slug, mdPath)

	body := markdown.StripLeadingH1(doc.Body)
	bodyHTML, err := s.parser.Parse(body)
	if err != nil {
		return nil, warnings, fmt.Errorf("articles: render %s: %w", mdPath, err)
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = markdown.FirstH1(doc.Body)
	}
	if title == "" {
		title = slugValue
	}

	record := &Record{
		ID:           identity.ArticleUUID(slugValue),
		Slug:         slugValue,
		Title:        title,
		Status:       resolveStatus(fm.Status, fm.Draft),
		Kind:         KindMarkdown,
		BodyHTML:     bodyHTML,
		Source:       mdPath,
		LastModified: doc.LastModified,
	}

	record.Summary = strings.TrimSpace(fm.Summary)
	if record.Summary == "" {
		record.Summary = legacy.Truncate(legacy.PlainText(bodyHTML), s.summary)
	} else {
		record.Summary = legacy.Truncate(record.Summary, s.summary)
	}

	if parsed, ok := markdown.ParseDate(fm.Date); ok {
		record.PublishedAt = parsed
		record.HasDate = true
	} else if record.Status == StatusPublished {
		warnings = append(warnings, Warning{
			Source: mdPath,
			Reason: "missing or unparseable date, excluded from dated index",
		})
	}

	return record, warnings, nil
}

func (s *Service) scanLegacy(folder, htmlPath string) (*Record, []Warning, error) {
	source, err := fs.ReadFile(s.fs, htmlPath)
	if err != nil {
		return nil, nil, fmt.Errorf("articles: read %s: %w", htmlPath, err)
	}
	info, err := fs.Stat(s.fs, htmlPath)
	if err != nil {
		return nil, nil, fmt.Errorf("articles: stat %s: %w", htmlPath, err)
	}

	meta, err := legacy.Extract(source)
	if err != nil {
		return nil, []Warning{{Source: htmlPath, Reason: err.Error()}}, nil
	}

	slugValue, warnings := s.resolveSlug(folder, "", htmlPath)

	if canonical := strings.TrimSpace(meta.Canonical); canonical != "" {
		if !strings.HasSuffix(strings.TrimSuffix(canonical, "/"), "/"+slugValue) {
			warnings = append(warnings, Warning{
				Source: htmlPath,
				Reason: fmt.Sprintf("canonical %q does not match slug %q, was the folder renamed?", canonical, slugValue),
			})
		}
	}

	title := meta.Title
	if title == "" {
		title = "(Untitled)"
	}

	record := &Record{
		ID:           identity.ArticleUUID(slugValue),
		Slug:         slugValue,
		Title:        title,
		Summary:      legacy.Description(source, s.summary),
		Status:       resolveStatus(meta.Status, false),
		Kind:         KindLegacy,
		Source:       htmlPath,
		LastModified: info.ModTime(),
	}

	if meta.HasDate {
		record.PublishedAt = meta.PublishedAt
		record.HasDate = true
	} else if record.Status == StatusPublished {
		warnings = append(warnings, Warning{
			Source: htmlPath,
			Reason: "missing or unparseable published marker, excluded from dated index",
		})
	}

	return record, warnings, nil
}

// resolveSlug prefers the explicit frontmatter slug, falling back to the
// folder name, normalizing either through go-slug.
func (s *Service) resolveSlug(folder, explicit, source string) (string, []Warning) {
	candidate := strings.TrimSpace(explicit)
	if candidate == "" {
		candidate = folder
	}
	if IsValidSlug(candidate) {
		return candidate, nil
	}
	normalized, err := NormalizeSlug(candidate)
	if err != nil || normalized == "" {
		return folder, []Warning{{
			Source: source,
			Reason: fmt.Sprintf("invalid slug %q, using folder name", candidate),
		}}
	}
	return normalized, nil
}

func resolveStatus(value string, draft bool) Status {
	if draft {
		return StatusDraft
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(StatusPublished):
		return StatusPublished
	case string(StatusDraft):
		return StatusDraft
	default:
		return StatusDraft
	}
}

// skipFolder filters non-article folders: the shared data folder and hidden
// directories.
func skipFolder(name string) bool {
	return name == "data" || strings.HasPrefix(name, ".")
}

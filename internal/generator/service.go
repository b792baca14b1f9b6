package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/goliatone/go-articles/internal/articles"
	"github.com/goliatone/go-articles/internal/legacy"
	"github.com/goliatone/go-articles/internal/logging"
	"github.com/goliatone/go-articles/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled = errors.New("generator: service disabled")
	// ErrNoManifest indicates Clean was invoked without a prior build
	// manifest to work from.
	ErrNoManifest       = errors.New("generator: no build manifest found")
	errScannerRequired  = errors.New("generator: article scanner is required")
	errRendererRequired = errors.New("generator: template renderer is required")
	errStorageRequired  = errors.New("generator: storage provider is required")
	errRoutesRequired   = errors.New("generator: route table is required")
)

// Service describes the static site build contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	BuildSitemap(ctx context.Context) error
	Clean(ctx context.Context) error
}

// Scanner abstracts the article discovery step.
type Scanner interface {
	Scan(ctx context.Context) (*articles.ScanResult, error)
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	Site            SiteContext
	GenerateSitemap bool
	GenerateFeed    bool
	GenerateRobots  bool
	WriteManifest   bool
	EnhanceLegacy   bool
	// StaticRoutes lists non-article routes included in the sitemap.
	StaticRoutes []string
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	DryRun bool
	// StaticRoutes overrides the configured sitemap static routes for this
	// run when non-empty.
	StaticRoutes []string
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt   int
	PagesSkipped int
	Warnings     int
	Duration     time.Duration
	Rendered     []RenderedPage
	Diagnostics  []RenderDiagnostic
	DryRun       bool
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	Scanner  Scanner
	Renderer interfaces.TemplateRenderer
	Storage  interfaces.StorageProvider
	Routes   *Routes
	// Sources is the articles directory filesystem, used to re-read legacy
	// page markup during output assembly.
	Sources fs.FS
	Logger  interfaces.Logger
}

// NewService wires a generator with the provided configuration and
// dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Scanner == nil {
		return nil, errScannerRequired
	}
	if deps.Renderer == nil {
		return nil, errRendererRequired
	}
	if deps.Storage == nil {
		return nil, errStorageRequired
	}
	if deps.Routes == nil {
		return nil, errRoutesRequired
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &service{
		cfg:    cfg,
		deps:   deps,
		site:   cfg.Site,
		routes: deps.Routes,
		writer: newArtifactWriter(deps.Storage),
		logger: logger,
		now:    time.Now,
	}, nil
}

// NewDisabledService returns a Service that fails all operations with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg    Config
	deps   Dependencies
	site   SiteContext
	routes *Routes
	writer *artifactWriter
	logger interfaces.Logger
	now    func() time.Time
}

// Build runs the full pipeline: scan, article pages, index, sitemap, feed,
// robots, manifest. Write failures abort the build; per-article metadata
// problems only surface as warnings.
func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	start := s.now()

	scan, err := s.deps.Scanner.Scan(ctx)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		Warnings: len(scan.Warnings),
		DryRun:   opts.DryRun,
	}
	var artifacts []ManifestArtifact

	record := func(page RenderedPage, category writeCategory, source string) error {
		diag := RenderDiagnostic{Route: page.Route, Source: source}
		pageStart := s.now()
		if opts.DryRun {
			diag.Skipped = true
			result.PagesSkipped++
		} else {
			checksum, err := s.writer.write(ctx, page.Output, []byte(page.HTML), category)
			if err != nil {
				diag.Err = err
				result.Diagnostics = append(result.Diagnostics, diag)
				return fmt.Errorf("generator: write %s: %w", page.Output, err)
			}
			page.Checksum = checksum
			artifacts = append(artifacts, ManifestArtifact{
				Path:     page.Output,
				Category: string(category),
				Checksum: checksum,
			})
			result.PagesBuilt++
		}
		diag.Duration = s.now().Sub(pageStart)
		result.Rendered = append(result.Rendered, page)
		result.Diagnostics = append(result.Diagnostics, diag)
		return nil
	}

	for _, article := range scan.All() {
		page, category, err := s.renderArticle(article)
		if err != nil {
			return nil, err
		}
		if err := record(page, category, article.Source); err != nil {
			return nil, err
		}
	}

	indexPage, err := s.renderIndex(scan.Published)
	if err != nil {
		return nil, err
	}
	if err := record(indexPage, categoryIndex, "articles index"); err != nil {
		return nil, err
	}

	if s.cfg.GenerateSitemap {
		staticRoutes := s.cfg.StaticRoutes
		if len(opts.StaticRoutes) > 0 {
			staticRoutes = opts.StaticRoutes
		}
		sitemapPage, err := s.renderSitemap(scan.Published, staticRoutes)
		if err != nil {
			return nil, err
		}
		if err := record(sitemapPage, categorySitemap, "sitemap"); err != nil {
			return nil, err
		}
	}

	if s.cfg.GenerateFeed {
		items, err := s.buildFeedItems(scan.Published)
		if err != nil {
			return nil, err
		}
		feed, err := s.buildFeed(items)
		if err != nil {
			return nil, err
		}
		page := RenderedPage{Route: "/feed.xml", Output: "feed.xml", HTML: feed}
		if err := record(page, categoryFeed, "feed"); err != nil {
			return nil, err
		}
	}

	if s.cfg.GenerateRobots {
		page := RenderedPage{
			Route:  "/robots.txt",
			Output: "robots.txt",
			HTML:   buildRobots(s.routes.BaseURL(), s.cfg.GenerateSitemap),
		}
		if err := record(page, categoryRobots, "robots"); err != nil {
			return nil, err
		}
	}

	if s.cfg.WriteManifest && !opts.DryRun {
		manifest, err := buildManifest(len(scan.Published), len(scan.Undated), len(scan.Drafts), artifacts)
		if err != nil {
			return nil, err
		}
		if _, err := s.writer.write(ctx, manifestPath, manifest, categoryManifest); err != nil {
			return nil, fmt.Errorf("generator: write manifest: %w", err)
		}
		result.PagesBuilt++
	}

	result.Duration = s.now().Sub(start)

	logging.WithFields(s.logger, map[string]any{
		"pages_built":   result.PagesBuilt,
		"pages_skipped": result.PagesSkipped,
		"warnings":      result.Warnings,
		"dry_run":       opts.DryRun,
	}).Info("generator.build.completed")

	return result, nil
}

// BuildSitemap regenerates only the sitemap document.
func (s *service) BuildSitemap(ctx context.Context) error {
	scan, err := s.deps.Scanner.Scan(ctx)
	if err != nil {
		return err
	}
	page, err := s.renderSitemap(scan.Published, s.cfg.StaticRoutes)
	if err != nil {
		return err
	}
	if _, err := s.writer.write(ctx, page.Output, []byte(page.HTML), categorySitemap); err != nil {
		return fmt.Errorf("generator: write %s: %w", page.Output, err)
	}
	return nil
}

// Clean removes the artifacts recorded in the previous build manifest. It
// deliberately refuses to guess when no manifest exists, since the output
// root may be the live site tree.
func (s *service) Clean(ctx context.Context) error {
	data, err := s.deps.Storage.ReadFile(ctx, manifestPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoManifest, err)
	}
	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("generator: parse manifest: %w", err)
	}
	for _, artifact := range manifest.Artifacts {
		if err := s.deps.Storage.Remove(ctx, artifact.Path); err != nil {
			return err
		}
	}
	return s.deps.Storage.Remove(ctx, manifestPath)
}

func (s *service) renderArticle(record *articles.Record) (RenderedPage, writeCategory, error) {
	route := routeForSlug(record.Slug)
	output := buildOutputPath(route)

	if record.Kind == articles.KindLegacy {
		source, err := fs.ReadFile(s.deps.Sources, record.Source)
		if err != nil {
			return RenderedPage{}, categoryLegacy, fmt.Errorf("generator: read legacy source %s: %w", record.Source, err)
		}
		if s.cfg.EnhanceLegacy {
			if enhanced, changed := legacy.EnhanceSEO(source, legacy.Site{Name: s.site.Name, Author: s.site.Author}); changed {
				source = enhanced
			}
		}
		return RenderedPage{
			Route:   route,
			Output:  output,
			HTML:    string(source),
			LastMod: record.LastModified,
		}, categoryLegacy, nil
	}

	canonical, err := s.routes.ArticleURL(record.Slug)
	if err != nil {
		return RenderedPage{}, categoryPage, err
	}

	view := ArticleView{
		Site:      s.site,
		Title:     record.Title,
		Slug:      record.Slug,
		Summary:   record.Summary,
		Canonical: canonical,
		Status:    string(record.Status),
	}
	if record.HasDate {
		view.DateISO = record.PublishedAt.Format("2006-01-02")
	}
	view.Body = template.HTML(record.BodyHTML)
	if view.JSONLD, err = articleJSONLD(view); err != nil {
		return RenderedPage{}, categoryPage, err
	}

	html, err := s.deps.Renderer.Render("article", view)
	if err != nil {
		return RenderedPage{}, categoryPage, err
	}
	return RenderedPage{
		Route:   route,
		Output:  output,
		HTML:    html,
		LastMod: record.LastModified,
	}, categoryPage, nil
}

func (s *service) renderIndex(published []*articles.Record) (RenderedPage, error) {
	canonical, err := s.routes.URL(RouteArticlesIndex)
	if err != nil {
		return RenderedPage{}, err
	}

	description := legacy.Truncate(fmt.Sprintf(
		"Articles by %s. Latest posts are listed first.", s.site.Author), 160)

	view := IndexView{
		Site:        s.site,
		Title:       "Articles",
		Description: description,
		Canonical:   canonical,
	}

	for _, record := range published {
		view.Rows = append(view.Rows, IndexRow{
			Title:       record.Title,
			Slug:        record.Slug,
			Summary:     record.Summary,
			Href:        routeForSlug(record.Slug),
			DateDisplay: record.PublishedAt.Format("Jan 2, 2006"),
		})
	}

	if view.JSONLD, err = indexJSONLD(view); err != nil {
		return RenderedPage{}, err
	}

	html, err := s.deps.Renderer.Render("index", view)
	if err != nil {
		return RenderedPage{}, err
	}
	return RenderedPage{
		Route:  "/articles/",
		Output: buildOutputPath("/articles/"),
		HTML:   html,
	}, nil
}

func (s *service) renderSitemap(published []*articles.Record, staticRoutes []string) (RenderedPage, error) {
	var fallback time.Time
	entries := make([]sitemapEntry, 0, len(published)+len(staticRoutes))

	for _, record := range published {
		location, err := s.routes.ArticleURL(record.Slug)
		if err != nil {
			return RenderedPage{}, err
		}
		entries = append(entries, sitemapEntry{Location: location, LastMod: record.LastModified})
		if record.LastModified.After(fallback) {
			fallback = record.LastModified
		}
	}

	for _, route := range staticRoutes {
		entries = append(entries, sitemapEntry{Location: s.routes.Absolute(route)})
	}

	return RenderedPage{
		Route:  "/sitemap.xml",
		Output: "sitemap.xml",
		HTML:   buildSitemap(entries, fallback),
	}, nil
}

type disabledService struct{}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) BuildSitemap(context.Context) error { return ErrServiceDisabled }

func (disabledService) Clean(context.Context) error { return ErrServiceDisabled }

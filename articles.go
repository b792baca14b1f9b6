// Package articles turns a directory of article folders into a static site:
// Markdown sources are rendered to HTML pages, legacy HTML articles are
// carried through with SEO enhancement, and an index page plus sitemap tie
// the set together.
package articles

import (
	"io/fs"
	"os"

	articlesvc "github.com/goliatone/go-articles/internal/articles"
	"github.com/goliatone/go-articles/internal/generator"
	"github.com/goliatone/go-articles/internal/logging"
	"github.com/goliatone/go-articles/internal/logging/gologger"
	"github.com/goliatone/go-articles/internal/markdown"
	"github.com/goliatone/go-articles/pkg/interfaces"
	"github.com/goliatone/go-articles/pkg/storage"
)

// ScannerService derives the article record set from the source directory.
type ScannerService = articlesvc.Service

// GeneratorService builds the static site output.
type GeneratorService = generator.Service

// BuildOptions narrows the scope of a generator run.
type BuildOptions = generator.BuildOptions

// BuildResult reports aggregated build metadata.
type BuildResult = generator.BuildResult

// ScanResult groups the outcome of one pass over the articles directory.
type ScanResult = articlesvc.ScanResult

// Record is the canonical article entry derived from one source folder.
type Record = articlesvc.Record

// Module aggregates the scanner, generator, and supporting services wired
// from one Config.
type Module struct {
	config    Config
	provider  interfaces.LoggerProvider
	scanner   *articlesvc.Service
	generator generator.Service
	routes    *generator.Routes
	storage   interfaces.StorageProvider
}

// Option customises module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider interfaces.LoggerProvider
	sources  fs.FS
	storage  interfaces.StorageProvider
	renderer interfaces.TemplateRenderer
}

// WithLoggerProvider overrides the default go-logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithSourceFS overrides the article source filesystem. The default is the
// configured articles directory on the local disk.
func WithSourceFS(sources fs.FS) Option {
	return func(o *moduleOptions) {
		o.sources = sources
	}
}

// WithStorage overrides the output storage provider. The default writes to
// the configured output directory on the local disk.
func WithStorage(provider interfaces.StorageProvider) Option {
	return func(o *moduleOptions) {
		o.storage = provider
	}
}

// WithTemplateRenderer overrides the page template renderer.
func WithTemplateRenderer(renderer interfaces.TemplateRenderer) Option {
	return func(o *moduleOptions) {
		o.renderer = renderer
	}
}

// New validates cfg and wires the full build pipeline.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
	}

	sources := options.sources
	if sources == nil {
		sources = os.DirFS(cfg.Content.ArticlesDir)
	}

	parser := markdown.NewGoldmarkParser(interfaces.ParseOptions{})

	scanner, err := articlesvc.NewService(sources, parser, articlesvc.Config{
		Legacy:        cfg.Content.Legacy,
		Pattern:       cfg.Content.Pattern,
		SummaryLength: cfg.Content.SummaryLength,
	}, logging.ScannerLogger(provider))
	if err != nil {
		return nil, err
	}

	store := options.storage
	if store == nil {
		store = storage.NewFilesystem(cfg.Generator.OutputDir)
	}

	renderer := options.renderer
	if renderer == nil {
		renderer = generator.NewTemplateRenderer(cfg.Generator.TemplateDir)
	}

	routes := generator.NewRoutes(cfg.Site.BaseURL)

	gen, err := generator.NewService(generator.Config{
		Site: generator.SiteContext{
			BaseURL:  routes.BaseURL(),
			Name:     cfg.Site.Name,
			Author:   cfg.Site.Author,
			Language: cfg.Site.Language,
		},
		GenerateSitemap: cfg.Generator.GenerateSitemap,
		GenerateFeed:    cfg.Generator.GenerateFeed,
		GenerateRobots:  cfg.Generator.GenerateRobots,
		WriteManifest:   cfg.Generator.WriteManifest,
		EnhanceLegacy:   cfg.Generator.EnhanceLegacy,
		StaticRoutes:    cfg.Generator.StaticRoutes,
	}, generator.Dependencies{
		Scanner:  scanner,
		Renderer: renderer,
		Storage:  store,
		Routes:   routes,
		Sources:  sources,
		Logger:   logging.GeneratorLogger(provider),
	})
	if err != nil {
		return nil, err
	}

	return &Module{
		config:    cfg,
		provider:  provider,
		scanner:   scanner,
		generator: gen,
		routes:    routes,
		storage:   store,
	}, nil
}

// Config returns the configuration the module was built from.
func (m *Module) Config() Config {
	return m.config
}

// LoggerProvider exposes the module's logger provider for callers that want
// scoped loggers.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Scanner returns the article discovery service.
func (m *Module) Scanner() *ScannerService {
	return m.scanner
}

// Generator returns the static site build service.
func (m *Module) Generator() GeneratorService {
	return m.generator
}

// Routes returns the site route table.
func (m *Module) Routes() *generator.Routes {
	return m.routes
}

// Storage returns the output storage provider.
func (m *Module) Storage() interfaces.StorageProvider {
	return m.storage
}

package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrSiteBaseURLRequired = errors.New("articles config: site base URL is required")
var ErrSiteBaseURLInvalid = errors.New("articles config: site base URL is invalid")
var ErrArticlesDirRequired = errors.New("articles config: articles directory is required")
var ErrGeneratorOutputDirRequired = errors.New("articles config: generator output directory is required")
var ErrStaticRouteInvalid = errors.New("articles config: static routes must be absolute paths")
var ErrLoggingLevelInvalid = errors.New("articles config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("articles config: logging format is invalid")

// Config aggregates site identity, content discovery, and generator
// behaviour for the build runtime. Fields use simple types so the structure
// round-trips through YAML configuration files unchanged.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Generator GeneratorConfig `yaml:"generator"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig identifies the published site; BaseURL anchors every canonical
// URL emitted into pages, the sitemap, and the feed.
type SiteConfig struct {
	BaseURL  string `yaml:"base_url"`
	Name     string `yaml:"name"`
	Author   string `yaml:"author"`
	Language string `yaml:"language"`
}

// ContentConfig captures how article sources are discovered.
type ContentConfig struct {
	ArticlesDir string `yaml:"articles_dir"`
	Pattern     string `yaml:"pattern"`
	// Legacy enables scanning for HTML-only articles carrying the
	// published marker paragraph.
	Legacy bool `yaml:"legacy"`
	// SummaryLength bounds derived summaries; defaults to 160 characters.
	SummaryLength int `yaml:"summary_length"`
}

// GeneratorConfig captures runtime behaviour toggles for the generator.
type GeneratorConfig struct {
	OutputDir       string `yaml:"output_dir"`
	TemplateDir     string `yaml:"template_dir"`
	GenerateSitemap bool   `yaml:"generate_sitemap"`
	GenerateFeed    bool   `yaml:"generate_feed"`
	GenerateRobots  bool   `yaml:"generate_robots"`
	WriteManifest   bool   `yaml:"write_manifest"`
	EnhanceLegacy   bool   `yaml:"enhance_legacy"`
	// StaticRoutes lists site routes that exist outside the article set but
	// still belong in the sitemap (home, videos, ...).
	StaticRoutes []string `yaml:"static_routes"`
}

// LoggingConfig wires the go-logger provider options.
type LoggingConfig struct {
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the baseline configuration for a single-author
// article site.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Language: "en",
		},
		Content: ContentConfig{
			ArticlesDir:   "articles",
			Pattern:       "index.md",
			Legacy:        true,
			SummaryLength: 160,
		},
		Generator: GeneratorConfig{
			OutputDir:       "dist",
			GenerateSitemap: true,
			GenerateFeed:    false,
			GenerateRobots:  false,
			WriteManifest:   true,
			EnhanceLegacy:   true,
			StaticRoutes:    []string{"/", "/articles/", "/videos/"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadFile overlays the YAML document at path onto DefaultConfig. A missing
// file is not an error so the CLI can run from flags alone.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("articles config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("articles config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	base := strings.TrimSpace(cfg.Site.BaseURL)
	if base == "" {
		return ErrSiteBaseURLRequired
	}
	if parsed, err := url.Parse(base); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("%w: %s", ErrSiteBaseURLInvalid, base)
	}
	if strings.TrimSpace(cfg.Content.ArticlesDir) == "" {
		return ErrArticlesDirRequired
	}
	if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrGeneratorOutputDirRequired
	}
	for _, route := range cfg.Generator.StaticRoutes {
		if !strings.HasPrefix(strings.TrimSpace(route), "/") {
			return fmt.Errorf("%w: %s", ErrStaticRouteInvalid, route)
		}
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

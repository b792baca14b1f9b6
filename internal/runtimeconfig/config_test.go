package runtimeconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.Site.BaseURL = "https://example.com"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Content.ArticlesDir != "articles" {
		t.Fatalf("ArticlesDir = %q", cfg.Content.ArticlesDir)
	}
	if cfg.Content.Pattern != "index.md" {
		t.Fatalf("Pattern = %q", cfg.Content.Pattern)
	}
	if !cfg.Content.Legacy {
		t.Fatalf("legacy scanning should default on")
	}
	if cfg.Content.SummaryLength != 160 {
		t.Fatalf("SummaryLength = %d", cfg.Content.SummaryLength)
	}
	if cfg.Generator.OutputDir != "dist" {
		t.Fatalf("OutputDir = %q", cfg.Generator.OutputDir)
	}
	if len(cfg.Generator.StaticRoutes) != 3 {
		t.Fatalf("StaticRoutes = %v", cfg.Generator.StaticRoutes)
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"missing base url", func(c *Config) { c.Site.BaseURL = "" }, ErrSiteBaseURLRequired},
		{"relative base url", func(c *Config) { c.Site.BaseURL = "/articles" }, ErrSiteBaseURLInvalid},
		{"missing articles dir", func(c *Config) { c.Content.ArticlesDir = " " }, ErrArticlesDirRequired},
		{"missing output dir", func(c *Config) { c.Generator.OutputDir = "" }, ErrGeneratorOutputDirRequired},
		{"relative static route", func(c *Config) { c.Generator.StaticRoutes = []string{"videos/"} }, ErrStaticRouteInvalid},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, ErrLoggingLevelInvalid},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		cfg := validConfig()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.yml")
	doc := []byte(`
site:
  base_url: https://example.com
  name: Example Site
  author: Jane Doe
content:
  articles_dir: content/articles
generator:
  output_dir: public
logging:
  level: debug
`)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if cfg.Site.BaseURL != "https://example.com" {
		t.Fatalf("BaseURL = %q", cfg.Site.BaseURL)
	}
	if cfg.Content.ArticlesDir != "content/articles" {
		t.Fatalf("ArticlesDir = %q", cfg.Content.ArticlesDir)
	}
	if cfg.Generator.OutputDir != "public" {
		t.Fatalf("OutputDir = %q", cfg.Generator.OutputDir)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Level = %q", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if cfg.Content.Pattern != "index.md" {
		t.Fatalf("Pattern = %q", cfg.Content.Pattern)
	}
}

func TestLoadFileMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Content.ArticlesDir != "articles" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.yml")
	if err := os.WriteFile(path, []byte("site: [unclosed"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}

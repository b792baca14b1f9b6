package bootstrap

import (
	"fmt"
	"strings"

	articles "github.com/goliatone/go-articles"
	"github.com/goliatone/go-articles/internal/commands"
	"github.com/goliatone/go-articles/pkg/interfaces"
)

// Options captures configuration for the build CLI bootstrap. Flag values
// overlay the loaded configuration file; empty values leave the file (or
// default) settings untouched.
type Options struct {
	ConfigPath    string
	ArticlesDir   string
	OutputDir     string
	TemplateDir   string
	BaseURL       string
	SiteName      string
	SiteAuthor    string
	LogLevel      string
	LogFormat     string
	DisableLegacy bool
}

// Module wraps the articles module with the services the CLI drives.
type Module struct {
	Module    *articles.Module
	Generator articles.GeneratorService
	Logger    interfaces.Logger
	Config    articles.Config
}

// BuildModule loads configuration, applies flag overrides, and wires the
// build pipeline.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := articles.LoadConfigFile(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if dir := strings.TrimSpace(opts.ArticlesDir); dir != "" {
		cfg.Content.ArticlesDir = dir
	}
	if dir := strings.TrimSpace(opts.OutputDir); dir != "" {
		cfg.Generator.OutputDir = dir
	}
	if dir := strings.TrimSpace(opts.TemplateDir); dir != "" {
		cfg.Generator.TemplateDir = dir
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.Site.BaseURL = base
	}
	if name := strings.TrimSpace(opts.SiteName); name != "" {
		cfg.Site.Name = name
	}
	if author := strings.TrimSpace(opts.SiteAuthor); author != "" {
		cfg.Site.Author = author
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if format := strings.TrimSpace(opts.LogFormat); format != "" {
		cfg.Logging.Format = format
	}
	if opts.DisableLegacy {
		cfg.Content.Legacy = false
	}

	module, err := articles.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise articles module: %w", err)
	}

	return &Module{
		Module:    module,
		Generator: module.Generator(),
		Logger:    commands.CommandLogger(module.LoggerProvider(), "site"),
		Config:    cfg,
	}, nil
}

package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-articles/internal/generator"
)

const (
	buildSiteMessageType    = "articles.site.build"
	buildSitemapMessageType = "articles.site.build_sitemap"
	cleanSiteMessageType    = "articles.site.clean"
)

// ResultCallback receives build results produced by generator operations. The
// callback is optional and is invoked synchronously from the handler when a
// BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a site command execution that
// generated a BuildResult.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand executes a full generator build.
type BuildSiteCommand struct {
	// DryRun renders every page without writing output artifacts.
	DryRun bool `json:"dry_run,omitempty"`
	// StaticRoutes overrides the configured sitemap static routes for this run.
	StaticRoutes   []string       `json:"static_routes,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures static route overrides are site-relative paths.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	for _, route := range m.StaticRoutes {
		trimmed := strings.TrimSpace(route)
		if trimmed == "" {
			errs["static_routes"] = validation.NewError("articles.site.build.static_route_empty", "static_routes must not contain empty values")
			break
		}
		if !strings.HasPrefix(trimmed, "/") {
			errs["static_routes"] = validation.NewError("articles.site.build.static_route_relative", "static_routes must start with /")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BuildSitemapCommand regenerates only the sitemap document.
type BuildSitemapCommand struct{}

// Type implements command.Message.
func (BuildSitemapCommand) Type() string { return buildSitemapMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (BuildSitemapCommand) Validate() error { return nil }

// CleanSiteCommand removes the artifacts recorded in the previous build
// manifest from the output storage.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }

// FeatureGates exposes runtime switches used to guard handler execution.
type FeatureGates struct {
	GeneratorEnabled func() bool
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return false
	}
	return g.GeneratorEnabled()
}

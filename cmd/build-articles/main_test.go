package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	articles "github.com/goliatone/go-articles"
	"github.com/goliatone/go-articles/cmd/build-articles/internal/bootstrap"
	"github.com/goliatone/go-articles/internal/generator"
)

type stubGenerator struct {
	buildCalls   int
	sitemapCalls int
	cleanCalls   int
	lastOpts     generator.BuildOptions
	buildErr     error
	result       *generator.BuildResult
}

func (s *stubGenerator) Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	s.buildCalls++
	s.lastOpts = opts
	if s.buildErr != nil {
		return nil, s.buildErr
	}
	if s.result != nil {
		return s.result, nil
	}
	return &generator.BuildResult{PagesBuilt: 3}, nil
}

func (s *stubGenerator) BuildSitemap(ctx context.Context) error {
	s.sitemapCalls++
	return nil
}

func (s *stubGenerator) Clean(ctx context.Context) error {
	s.cleanCalls++
	return nil
}

func withStubModule(t *testing.T) *stubGenerator {
	t.Helper()

	stub := &stubGenerator{}
	original := moduleBuilder
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Generator: stub,
			Config:    articles.DefaultConfig(),
		}, nil
	}
	t.Cleanup(func() { moduleBuilder = original })
	return stub
}

func TestRunBuild_InvokesGenerator(t *testing.T) {
	stub := withStubModule(t)

	if err := runBuild([]string{}); err != nil {
		t.Fatalf("run build: %v", err)
	}
	if stub.buildCalls != 1 {
		t.Fatalf("expected one build call, got %d", stub.buildCalls)
	}
	if stub.lastOpts.DryRun {
		t.Fatal("expected dry run to default to false")
	}
}

func TestRunBuild_DryRunPropagates(t *testing.T) {
	stub := withStubModule(t)

	if err := runBuild([]string{"-dry-run"}); err != nil {
		t.Fatalf("run build: %v", err)
	}
	if !stub.lastOpts.DryRun {
		t.Fatal("expected dry run flag to propagate to the generator")
	}
}

func TestRunBuild_SitemapOnly(t *testing.T) {
	stub := withStubModule(t)

	if err := runBuild([]string{"-sitemap-only"}); err != nil {
		t.Fatalf("run sitemap: %v", err)
	}
	if stub.sitemapCalls != 1 {
		t.Fatalf("expected one sitemap call, got %d", stub.sitemapCalls)
	}
	if stub.buildCalls != 0 {
		t.Fatalf("expected no build calls, got %d", stub.buildCalls)
	}
}

func TestRunBuild_Clean(t *testing.T) {
	stub := withStubModule(t)

	if err := runBuild([]string{"-clean"}); err != nil {
		t.Fatalf("run clean: %v", err)
	}
	if stub.cleanCalls != 1 {
		t.Fatalf("expected one clean call, got %d", stub.cleanCalls)
	}
	if stub.buildCalls != 0 {
		t.Fatalf("expected no build calls, got %d", stub.buildCalls)
	}
}

func TestRunBuild_GeneratorErrorSurfaces(t *testing.T) {
	stub := withStubModule(t)
	stub.buildErr = errors.New("render failed")

	err := runBuild([]string{})
	if err == nil {
		t.Fatal("expected build error")
	}
	if !strings.Contains(err.Error(), "execute build command") {
		t.Fatalf("expected wrapped build error, got %v", err)
	}
}

func TestRunBuild_GeneratorMissing(t *testing.T) {
	original := moduleBuilder
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{}, nil
	}
	t.Cleanup(func() { moduleBuilder = original })

	err := runBuild([]string{})
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunBuild_FlagOverridesReachBootstrap(t *testing.T) {
	var captured bootstrap.Options
	original := moduleBuilder
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		captured = opts
		return &bootstrap.Module{
			Generator: &stubGenerator{},
			Config:    articles.DefaultConfig(),
		}, nil
	}
	t.Cleanup(func() { moduleBuilder = original })

	args := []string{
		"-articles-dir", "content/articles",
		"-output-dir", "public",
		"-base-url", "https://example.com",
		"-no-legacy",
	}
	if err := runBuild(args); err != nil {
		t.Fatalf("run build: %v", err)
	}
	if captured.ArticlesDir != "content/articles" {
		t.Fatalf("unexpected articles dir: %q", captured.ArticlesDir)
	}
	if captured.OutputDir != "public" {
		t.Fatalf("unexpected output dir: %q", captured.OutputDir)
	}
	if captured.BaseURL != "https://example.com" {
		t.Fatalf("unexpected base url: %q", captured.BaseURL)
	}
	if !captured.DisableLegacy {
		t.Fatal("expected legacy scanning to be disabled")
	}
}

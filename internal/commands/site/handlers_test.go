package sitecmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-articles/internal/generator"
)

type fakeGeneratorService struct {
	buildFunc        func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error)
	buildSitemapFunc func(ctx context.Context) error
	cleanFunc        func(ctx context.Context) error
}

func (f *fakeGeneratorService) Build(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	if f.buildFunc != nil {
		return f.buildFunc(ctx, opts)
	}
	return &generator.BuildResult{}, nil
}

func (f *fakeGeneratorService) BuildSitemap(ctx context.Context) error {
	if f.buildSitemapFunc != nil {
		return f.buildSitemapFunc(ctx)
	}
	return nil
}

func (f *fakeGeneratorService) Clean(ctx context.Context) error {
	if f.cleanFunc != nil {
		return f.cleanFunc(ctx)
	}
	return nil
}

func alwaysTrue() bool { return true }

func TestBuildSiteHandler_Execute_Build(t *testing.T) {
	var capturedOpts generator.BuildOptions
	callbackInvoked := false

	svc := &fakeGeneratorService{
		buildFunc: func(ctx context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
			capturedOpts = opts
			return &generator.BuildResult{PagesBuilt: 3}, nil
		},
	}

	handler := NewBuildSiteHandler(svc, nil, FeatureGates{GeneratorEnabled: alwaysTrue})

	cmd := BuildSiteCommand{
		DryRun:       true,
		StaticRoutes: []string{"/", "/videos/"},
		ResultCallback: func(env ResultEnvelope) {
			callbackInvoked = true
			if env.Result == nil || env.Result.PagesBuilt != 3 {
				t.Fatalf("unexpected result %#v", env.Result)
			}
			if env.Metadata["operation"] != "build" {
				t.Fatalf("expected operation build, got %v", env.Metadata["operation"])
			}
		},
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("execute build: %v", err)
	}

	if !capturedOpts.DryRun {
		t.Fatalf("expected DryRun to be forwarded")
	}
	if len(capturedOpts.StaticRoutes) != 2 {
		t.Fatalf("expected static routes forwarded, got %v", capturedOpts.StaticRoutes)
	}
	if !callbackInvoked {
		t.Fatal("expected callback to be invoked")
	}
}

func TestBuildSiteHandler_Execute_ValidationFailure(t *testing.T) {
	handler := NewBuildSiteHandler(&fakeGeneratorService{}, nil, FeatureGates{GeneratorEnabled: alwaysTrue})

	err := handler.Execute(context.Background(), BuildSiteCommand{
		StaticRoutes: []string{"videos/"},
	})
	if err == nil {
		t.Fatal("expected a validation error")
	}
}

func TestBuildSiteHandler_Execute_GateDisabled(t *testing.T) {
	handler := NewBuildSiteHandler(&fakeGeneratorService{}, nil, FeatureGates{})

	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if err == nil || !errors.Is(err, generator.ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestBuildSitemapHandler_Execute(t *testing.T) {
	called := false
	svc := &fakeGeneratorService{
		buildSitemapFunc: func(ctx context.Context) error {
			called = true
			return nil
		},
	}

	handler := NewBuildSitemapHandler(svc, nil, FeatureGates{GeneratorEnabled: alwaysTrue})
	if err := handler.Execute(context.Background(), BuildSitemapCommand{}); err != nil {
		t.Fatalf("execute sitemap: %v", err)
	}
	if !called {
		t.Fatal("expected BuildSitemap to be called")
	}
}

func TestCleanSiteHandler_Execute(t *testing.T) {
	called := false
	svc := &fakeGeneratorService{
		cleanFunc: func(ctx context.Context) error {
			called = true
			return nil
		},
	}

	handler := NewCleanSiteHandler(svc, nil, FeatureGates{GeneratorEnabled: alwaysTrue})
	if err := handler.Execute(context.Background(), CleanSiteCommand{}); err != nil {
		t.Fatalf("execute clean: %v", err)
	}
	if !called {
		t.Fatal("expected Clean to be called")
	}
}

func TestBuildSiteCommandValidate(t *testing.T) {
	if err := (BuildSiteCommand{}).Validate(); err != nil {
		t.Fatalf("empty command should validate: %v", err)
	}
	if err := (BuildSiteCommand{StaticRoutes: []string{"/ok/"}}).Validate(); err != nil {
		t.Fatalf("absolute routes should validate: %v", err)
	}
	if err := (BuildSiteCommand{StaticRoutes: []string{" "}}).Validate(); err == nil {
		t.Fatal("blank route should fail validation")
	}
	if err := (BuildSiteCommand{StaticRoutes: []string{"videos/"}}).Validate(); err == nil {
		t.Fatal("relative route should fail validation")
	}
}

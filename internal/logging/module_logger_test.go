package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-articles/pkg/interfaces"
)

type recordingLogger struct {
	fields map[string]any
}

func (l *recordingLogger) Trace(string, ...any) {}
func (l *recordingLogger) Debug(string, ...any) {}
func (l *recordingLogger) Info(string, ...any)  {}
func (l *recordingLogger) Warn(string, ...any)  {}
func (l *recordingLogger) Error(string, ...any) {}
func (l *recordingLogger) Fatal(string, ...any) {}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for key, value := range l.fields {
		merged[key] = value
	}
	for key, value := range fields {
		merged[key] = value
	}
	return &recordingLogger{fields: merged}
}

type recordingProvider struct {
	requested []string
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.requested = append(p.requested, name)
	return &recordingLogger{}
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	provider := &recordingProvider{}

	logger := ScannerLogger(provider)

	rec, ok := logger.(*recordingLogger)
	if !ok {
		t.Fatalf("expected the provider logger, got %T", logger)
	}
	if rec.fields["module"] != "articles.scanner" {
		t.Fatalf("module field = %v", rec.fields["module"])
	}
	if len(provider.requested) != 1 || provider.requested[0] != "articles.scanner" {
		t.Fatalf("provider asked for %v", provider.requested)
	}
}

func TestModuleLoggerNilProviderFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "articles.generator")
	if logger == nil {
		t.Fatalf("expected a logger")
	}
	// Must not panic.
	logger.Info("noop")
}

func TestWithArticleContext(t *testing.T) {
	base := &recordingLogger{}

	logger := WithArticleContext(base, "first-post/index.md", "first-post", "scan")

	rec := logger.(*recordingLogger)
	if rec.fields["article_path"] != "first-post/index.md" {
		t.Fatalf("article_path = %v", rec.fields["article_path"])
	}
	if rec.fields["slug"] != "first-post" {
		t.Fatalf("slug = %v", rec.fields["slug"])
	}
	if rec.fields["build_action"] != "scan" {
		t.Fatalf("build_action = %v", rec.fields["build_action"])
	}
}

func TestWithArticleContextSkipsEmptyValues(t *testing.T) {
	base := &recordingLogger{}

	logger := WithArticleContext(base, "path.md", "", " ")

	rec := logger.(*recordingLogger)
	if _, ok := rec.fields["slug"]; ok {
		t.Fatalf("empty slug should be skipped")
	}
	if _, ok := rec.fields["build_action"]; ok {
		t.Fatalf("blank action should be skipped")
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-articles/cmd/build-articles/internal/bootstrap"
	sitecmd "github.com/goliatone/go-articles/internal/commands/site"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("build-articles: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("build-articles", flag.ExitOnError)
	configPath := fs.String("config", "articles.yml", "Path to the YAML configuration file")
	articlesDir := fs.String("articles-dir", "", "Directory holding one folder per article (overrides config)")
	outputDir := fs.String("output-dir", "", "Directory the generated site is written to (overrides config)")
	templateDir := fs.String("template-dir", "", "Directory with page template overrides (overrides config)")
	baseURL := fs.String("base-url", "", "Absolute site base URL used for canonical links (overrides config)")
	siteName := fs.String("site-name", "", "Site name emitted into page metadata (overrides config)")
	siteAuthor := fs.String("site-author", "", "Author name emitted into page metadata (overrides config)")
	logLevel := fs.String("log-level", "", "Log level: trace, debug, info, warn, error, fatal")
	logFormat := fs.String("log-format", "", "Log format: json, console, pretty")
	noLegacy := fs.Bool("no-legacy", false, "Skip HTML-only article folders")
	dryRun := fs.Bool("dry-run", false, "Render every page without writing output artifacts")
	sitemapOnly := fs.Bool("sitemap-only", false, "Regenerate only the sitemap")
	clean := fs.Bool("clean", false, "Remove the artifacts recorded in the previous build manifest")
	watch := fs.Bool("watch", false, "Rebuild whenever the articles directory changes")

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := bootstrap.Options{
		ConfigPath:    *configPath,
		ArticlesDir:   *articlesDir,
		OutputDir:     *outputDir,
		TemplateDir:   *templateDir,
		BaseURL:       *baseURL,
		SiteName:      *siteName,
		SiteAuthor:    *siteAuthor,
		LogLevel:      *logLevel,
		LogFormat:     *logFormat,
		DisableLegacy: *noLegacy,
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Generator == nil {
		return fmt.Errorf("generator service not configured")
	}

	ctx := context.Background()
	gates := sitecmd.FeatureGates{
		GeneratorEnabled: func() bool { return true },
	}

	if *clean {
		handler := sitecmd.NewCleanSiteHandler(module.Generator, module.Logger, gates)
		if err := handler.Execute(ctx, sitecmd.CleanSiteCommand{}); err != nil {
			return fmt.Errorf("execute clean command: %w", err)
		}
		fmt.Fprintln(os.Stdout, "build artifacts removed")
		return nil
	}

	if *sitemapOnly {
		handler := sitecmd.NewBuildSitemapHandler(module.Generator, module.Logger, gates)
		if err := handler.Execute(ctx, sitecmd.BuildSitemapCommand{}); err != nil {
			return fmt.Errorf("execute sitemap command: %w", err)
		}
		fmt.Fprintln(os.Stdout, "sitemap regenerated")
		return nil
	}

	handler := sitecmd.NewBuildSiteHandler(module.Generator, module.Logger, gates)
	execute := func(ctx context.Context) error {
		return handler.Execute(ctx, sitecmd.BuildSiteCommand{
			DryRun: *dryRun,
			ResultCallback: func(envelope sitecmd.ResultEnvelope) {
				if envelope.Result == nil {
					return
				}
				fmt.Fprintf(os.Stdout, "built %d pages (%d skipped, %d warnings) in %s\n",
					envelope.Result.PagesBuilt,
					envelope.Result.PagesSkipped,
					envelope.Result.Warnings,
					envelope.Result.Duration,
				)
			},
		})
	}

	if err := execute(ctx); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}

	if !*watch {
		return nil
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher, err := bootstrap.NewSourceWatcher(module.Config.Content.ArticlesDir, execute, module.Logger)
	if err != nil {
		return fmt.Errorf("create source watcher: %w", err)
	}
	if err := watcher.Start(watchCtx); err != nil {
		return fmt.Errorf("start source watcher: %w", err)
	}
	defer watcher.Stop()

	fmt.Fprintf(os.Stdout, "watching %s for changes; press Ctrl-C to stop\n", module.Config.Content.ArticlesDir)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	<-signals

	return nil
}

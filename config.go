package articles

import "github.com/goliatone/go-articles/internal/runtimeconfig"

// Config aggregates site identity, content discovery, generator behaviour,
// and logging for the build runtime.
type Config = runtimeconfig.Config

// SiteConfig identifies the published site.
type SiteConfig = runtimeconfig.SiteConfig

// ContentConfig captures how article sources are discovered.
type ContentConfig = runtimeconfig.ContentConfig

// GeneratorConfig captures runtime behaviour toggles for the generator.
type GeneratorConfig = runtimeconfig.GeneratorConfig

// LoggingConfig wires the go-logger provider options.
type LoggingConfig = runtimeconfig.LoggingConfig

// DefaultConfig returns the baseline configuration for a single-author
// article site.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfigFile overlays the YAML document at path onto DefaultConfig. A
// missing file is not an error so the CLI can run from flags alone.
func LoadConfigFile(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}

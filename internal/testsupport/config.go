package testsupport

import (
	"path/filepath"
	"testing"

	"photojson/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a default config whose log file lives in a per-test temp
// directory. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.File = filepath.Join(base, "logs", "photojson.log")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithPaletteSize sets the number of colors per image.
func WithPaletteSize(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.PaletteSize = n
	}
}

// WithWorkers sets the number of concurrent inspections.
func WithWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.Workers = n
	}
}

// WithDestinationInBase points the output at name inside the test's temp
// directory.
func WithDestinationInBase(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Destination = filepath.Join(b.baseDir, name)
	}
}

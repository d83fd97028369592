package config

const (
	defaultPaletteSize   = 3
	defaultSampleQuality = 10
	defaultPaletteMethod = "median_cut"
	defaultWorkers       = 1
	defaultLogFormat     = "console"
	defaultLogLevel      = "warn"
	maxPaletteSize       = 255
	maxWorkers           = 256
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			PaletteSize:   defaultPaletteSize,
			SampleQuality: defaultSampleQuality,
			PaletteMethod: defaultPaletteMethod,
			Workers:       defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

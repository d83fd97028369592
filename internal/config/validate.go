package config

import (
	"errors"
	"fmt"
)

var paletteMethods = []string{"median_cut", "dominant", "kmeans"}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if c.Catalog.PaletteSize < 1 || c.Catalog.PaletteSize > maxPaletteSize {
		return fmt.Errorf("catalog.palette_size must be between 1 and %d", maxPaletteSize)
	}
	if c.Catalog.SampleQuality < 1 {
		return errors.New("catalog.sample_quality must be positive")
	}
	if c.Catalog.Workers < 1 || c.Catalog.Workers > maxWorkers {
		return fmt.Errorf("catalog.workers must be between 1 and %d", maxWorkers)
	}
	if !contains(paletteMethods, c.Catalog.PaletteMethod) {
		return fmt.Errorf("catalog.palette_method %q is not one of %v", c.Catalog.PaletteMethod, paletteMethods)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

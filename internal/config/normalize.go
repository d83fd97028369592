package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeCatalog()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeCatalog() {
	c.Catalog.PaletteMethod = strings.ToLower(strings.TrimSpace(c.Catalog.PaletteMethod))
	c.Catalog.PaletteMethod = strings.ReplaceAll(c.Catalog.PaletteMethod, "-", "_")
	if c.Catalog.PaletteMethod == "" {
		c.Catalog.PaletteMethod = defaultPaletteMethod
	}
	if c.Catalog.SampleQuality == 0 {
		c.Catalog.SampleQuality = defaultSampleQuality
	}
	if c.Catalog.Workers == 0 {
		c.Catalog.Workers = defaultWorkers
	}
}

func (c *Config) normalizeOutput() error {
	dest := strings.TrimSpace(c.Output.Destination)
	if dest == "" {
		c.Output.Destination = ""
		return nil
	}
	expanded, err := expandPath(dest)
	if err != nil {
		return fmt.Errorf("output.destination: %w", err)
	}
	c.Output.Destination = expanded
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("PHOTOJSON_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	} else {
		c.Logging.File = ""
	}
	return nil
}

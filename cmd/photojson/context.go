package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"photojson/internal/config"
	"photojson/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// configCopy returns a copy of the loaded config that a command may mutate
// with its flag overrides.
func (c *commandContext) configCopy() (*config.Config, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	clone := *cfg
	return &clone, nil
}

// runLogger builds the logger for one command invocation and tags it with a
// fresh run ID.
func runLogger(ctx context.Context, cfg *config.Config) (context.Context, *slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return ctx, nil, err
	}
	ctx = logging.WithRunID(ctx, uuid.NewString())
	return ctx, logging.WithContext(ctx, logger), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func passFail(value bool) string {
	if value {
		return "ok"
	}
	return "FAIL"
}

package main

import (
	"context"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"pulpit/internal/config"
	"pulpit/internal/logging"
	"pulpit/internal/session"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
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
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// withSession opens the catalog session, runs fn, then closes the
// session so autosaved state and the close-time backup land on disk.
func (c *commandContext) withSession(ctx context.Context, fn func(*session.Session) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	sess, err := session.Open(cfg, logger)
	if err != nil {
		return err
	}
	runErr := fn(sess)
	closeErr := sess.Close(ctx)
	if runErr != nil {
		return runErr
	}
	return closeErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

package main

import (
	"log/slog"
	"strings"
	"sync"

	"filmpress/internal/config"
	"filmpress/internal/logging"
	"filmpress/internal/scanner"
)

type commandContext struct {
	fileFlag      *string
	dirFlag       *string
	recursiveFlag *bool
	configFlag    *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(fileFlag, dirFlag *string, recursiveFlag *bool, configFlag *string) *commandContext {
	return &commandContext{
		fileFlag:      fileFlag,
		dirFlag:       dirFlag,
		recursiveFlag: recursiveFlag,
		configFlag:    configFlag,
	}
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

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.loggerOnce.Do(func() {
		logger, logErr := logging.NewFromConfig(cfg)
		if logErr != nil {
			logger = logging.NewNop()
		}
		c.logger = logger
	})
	return c.logger, nil
}

// scanOptions translates the persistent input flags into scanner options.
// The current directory is scanned when neither --file nor --directory is
// given.
func (c *commandContext) scanOptions() scanner.Options {
	opts := scanner.Options{}
	if c.fileFlag != nil {
		opts.File = strings.TrimSpace(*c.fileFlag)
	}
	if c.dirFlag != nil {
		opts.Dir = strings.TrimSpace(*c.dirFlag)
	}
	if c.recursiveFlag != nil {
		opts.Recursive = *c.recursiveFlag
	}
	if opts.File == "" && opts.Dir == "" {
		opts.Dir = "."
	}
	return opts
}

// singleInput reports whether the flags name exactly one source file, which
// the per-file convert overrides require.
func (c *commandContext) singleInput() bool {
	return c.fileFlag != nil && strings.TrimSpace(*c.fileFlag) != ""
}

// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Package config loads layoutdump settings from an optional TOML file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creasty/defaults"
	"go.uber.org/zap/zapcore"

	"github.com/minatosato/binary-parser-with-xml/endian"
	"github.com/minatosato/binary-parser-with-xml/render"
)

// Config holds the settings a decode run uses. Command-line flags override
// any value loaded here.
type Config struct {
	Endian   string `toml:"endian" default:"little"`
	Format   string `toml:"format" default:"json"`
	Indent   string `toml:"indent"`
	SortKeys bool   `toml:"sort_keys"`
	RawBytes bool   `toml:"raw_bytes"`
	TypeInfo bool   `toml:"type_info"`
	LogLevel string `toml:"log_level" default:"warn"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	c := &Config{}
	if err := defaults.Set(c); err != nil {
		// Only reachable with a malformed default tag
		panic(err)
	}
	return c
}

// Load reads path over the defaults. Unknown keys are an error.
func Load(path string) (*Config, error) {
	c := Default()
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks that every named setting is recognized.
func (c *Config) Validate() error {
	if _, err := c.Order(); err != nil {
		return err
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Order returns the configured byte order.
func (c *Config) Order() (endian.Order, error) {
	return endian.Parse(c.Endian)
}

// OutputFormat returns the configured output format.
func (c *Config) OutputFormat() (render.Format, error) {
	return render.ParseFormat(c.Format)
}

// Level returns the configured log level.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}

// RenderOptions returns the renderer settings.
func (c *Config) RenderOptions() render.Options {
	return render.Options{
		Indent:   c.Indent,
		SortKeys: c.SortKeys,
		RawBytes: c.RawBytes,
		TypeInfo: c.TypeInfo,
	}
}

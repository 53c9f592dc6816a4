// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/minio/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/minatosato/binary-parser-with-xml/decoder"
	"github.com/minatosato/binary-parser-with-xml/internal/config"
	"github.com/minatosato/binary-parser-with-xml/render"
	"github.com/minatosato/binary-parser-with-xml/schema"
)

// loadConfig reads the --config file if given and applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if c.IsSet("endian") {
		cfg.Endian = c.String("endian")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("indent") {
		cfg.Indent = c.String("indent")
	}
	// Bool flags accept --name=false to clear a config file setting
	if c.IsSet("sort-keys") {
		cfg.SortKeys = c.Bool("sort-keys")
	}
	if c.IsSet("raw-bytes") {
		cfg.RawBytes = c.Bool("raw-bytes")
	}
	if c.IsSet("type-info") {
		cfg.TypeInfo = c.Bool("type-info")
	}
	if c.Bool("debug") {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(stderr io.Writer, level zapcore.Level, debug bool) *zap.Logger {
	log := newLogger(stderr, level, debug)
	schema.SetLogger(log.Named("schema"))
	return log
}

func requireSchema(c *cli.Context) (string, error) {
	path := c.String("schema")
	if path == "" {
		return "", errors.New("missing --schema")
	}
	return path, nil
}

func decodeAction(stdout, stderr io.Writer) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		schemaPath, err := requireSchema(c)
		if err != nil {
			return err
		}
		if len(c.Args()) != 1 {
			return fmt.Errorf("decode: expected one binary file, got %d arguments", len(c.Args()))
		}
		binPath := c.Args().First()

		// Validate already checked these
		order, _ := cfg.Order()
		format, _ := cfg.OutputFormat()
		level, _ := cfg.Level()

		log := setupLogger(stderr, level, c.Bool("debug"))
		defer func() { _ = log.Sync() }()

		reg := schema.NewRegistry()
		names, err := reg.LoadFile(schemaPath)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("%s defines no structs", schemaPath)
		}
		name := c.String("struct")
		if name == "" {
			name = names[0]
			if len(names) > 1 {
				log.Info("schema defines several structs, decoding the first",
					zap.String("struct", name),
					zap.Strings("available", reg.Names()))
			}
		}
		st, _, err := reg.Get(name)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(binPath)
		if err != nil {
			return fmt.Errorf("read binary: %w", err)
		}
		log.Debug("decoding",
			zap.String("struct", st.Name),
			zap.Uint64("struct_size", st.Size),
			zap.Int("bytes", len(data)),
			zap.Stringer("endian", order))

		rec, err := decoder.Decode(data, st, order)
		if err != nil {
			log.Debug("decode failed", zap.Error(err))
			return fmt.Errorf("decode %s: %w", binPath, err)
		}

		opts := cfg.RenderOptions()
		if !c.IsSet("indent") && cfg.Indent == "" && isTerminal(stdout) {
			opts.Indent = "  "
		}

		// Nothing reaches stdout unless rendering succeeds
		var out bytes.Buffer
		switch {
		case c.String("query") != "":
			var vals []any
			if vals, err = render.Query(rec, c.String("query")); err == nil {
				err = render.Values(&out, vals, opts)
			}
		case format == render.FormatText:
			err = render.Text(&out, rec, opts)
		default:
			err = render.JSON(&out, rec, opts)
		}
		if err != nil {
			return err
		}

		_, err = stdout.Write(out.Bytes())
		return err
	}
}

func compileAction(stdout, stderr io.Writer) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		schemaPath, err := requireSchema(c)
		if err != nil {
			return err
		}
		level := zapcore.WarnLevel
		if c.Bool("debug") {
			level = zapcore.DebugLevel
		}
		log := setupLogger(stderr, level, c.Bool("debug"))
		defer func() { _ = log.Sync() }()

		structs, err := schema.LoadFile(schemaPath)
		if err != nil {
			return err
		}
		data, err := schema.MarshalBinary(structs...)
		if err != nil {
			return err
		}

		out := c.String("out")
		if out == "" {
			out = strings.TrimSuffix(schemaPath, filepath.Ext(schemaPath)) + schema.CompiledExt
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write compiled schema: %w", err)
		}

		log.Debug("compiled schema", zap.String("out", out), zap.Int("bytes", len(data)))
		_, err = fmt.Fprintf(stdout, "%s: %d structs, %d bytes\n", out, len(structs), len(data))
		return err
	}
}

func inspectAction(stdout io.Writer) func(c *cli.Context) error {
	return func(c *cli.Context) error {
		schemaPath, err := requireSchema(c)
		if err != nil {
			return err
		}
		structs, err := schema.LoadFile(schemaPath)
		if err != nil {
			return err
		}

		var out bytes.Buffer
		tw := tabwriter.NewWriter(&out, 0, 4, 2, ' ', 0)
		for _, s := range structs {
			fmt.Fprintf(tw, "%s\tsize=%d\tfields=%d\tdepth=%d", s.Name, s.Size, s.FieldCount(), s.Depth())
			if s.Packed {
				fmt.Fprint(tw, "\tpacked")
			}
			fmt.Fprintln(tw)

			_ = s.Walk(func(path []string, f *schema.Field) error {
				fmt.Fprintf(tw, "  %s%s\t%s\t@%d\t%d", strings.Repeat("  ", len(path)-1), f.Name, f.Kind, f.Offset, f.Size)
				if f.IsArray() {
					fmt.Fprintf(tw, "\t[%d]", f.Count)
				}
				if f.IsBitfield() {
					fmt.Fprintf(tw, "\tbits %d:%d", f.BitOffset, f.Bits)
				}
				fmt.Fprintln(tw)
				return nil
			})
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err = stdout.Write(out.Bytes())
		return err
	}
}

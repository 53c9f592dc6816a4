// Copyright (c) 2024-2026 Multitech Systems, Inc.
// Author: Jason Reiss
// SPDX-License-Identifier: MIT

// Command layoutdump decodes binary files against C-like struct layouts
// described in XML, YAML, JSON or a C header.
//
// Usage:
//
//	layoutdump decode --schema packet.xml [--endian big] [--format text] capture.bin
//	layoutdump decode --schema sensors.yaml --struct Reading --query '.value' reading.bin
//	layoutdump decode --schema telemetry.h --struct BitfieldTest --type-info capture.bin
//	layoutdump compile --schema packet.xml --out packet.lsc
//	layoutdump inspect --schema packet.lsc
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/minio/cli"
)

// Version is set at build time.
var Version = "dev"

var schemaFlag = cli.StringFlag{
	Name:  "schema, s",
	Usage: "Layout definition file (.xml, .yaml, .yml, .json, .h or compiled .lsc).",
}

var decodeFlags = []cli.Flag{
	schemaFlag,
	cli.StringFlag{
		Name:  "struct",
		Usage: "Struct to decode when the schema defines several (default: the first).",
	},
	cli.StringFlag{
		Name:  "endian, e",
		Usage: "Byte order of the data: little or big.",
	},
	cli.StringFlag{
		Name:  "format, f",
		Usage: "Output format: json or text.",
	},
	cli.StringFlag{
		Name:  "query, q",
		Usage: "jq expression applied to the decoded record; results are printed as JSON.",
	},
	cli.StringFlag{
		Name:  "indent",
		Usage: "Indent string for the output.",
	},
	cli.BoolFlag{
		Name:  "sort-keys",
		Usage: "Order fields by name instead of layout order; --sort-keys=false overrides the config file.",
	},
	cli.BoolFlag{
		Name:  "raw-bytes",
		Usage: "Print character arrays as numbers.",
	},
	cli.BoolFlag{
		Name:  "type-info",
		Usage: "Tag every value with its decoded type.",
	},
	cli.StringFlag{
		Name:  "config, c",
		Usage: "TOML configuration file.",
	},
	cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging.",
	},
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "layoutdump"
	app.Usage = "Decode binary data using C-like struct layouts."
	app.Version = Version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Commands = []cli.Command{
		{
			Name:      "decode",
			Usage:     "Decode a binary file and print the result.",
			ArgsUsage: "BINARY",
			Flags:     decodeFlags,
			Action:    decodeAction(stdout, stderr),
		},
		{
			Name:  "compile",
			Usage: "Write a layout definition in the compiled .lsc form.",
			Flags: []cli.Flag{
				schemaFlag,
				cli.StringFlag{
					Name:  "out, o",
					Usage: "Output file (default: the schema path with a .lsc extension).",
				},
				cli.BoolFlag{
					Name:  "debug",
					Usage: "Enable debug logging.",
				},
			},
			Action: compileAction(stdout, stderr),
		},
		{
			Name:  "inspect",
			Usage: "List the structs and fields of a layout definition.",
			Flags: []cli.Flag{
				schemaFlag,
			},
			Action: inspectAction(stdout),
		},
	}
	return app
}

func run(args []string, stdout, stderr io.Writer) error {
	return newApp(stdout, stderr).Run(args)
}

func main() {
	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "layoutdump: %v\n", err)
		os.Exit(1)
	}
}

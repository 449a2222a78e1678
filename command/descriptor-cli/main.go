// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/descriptor/configuration"
	"github.com/bitmark-inc/logger"
)

type metadata struct {
	file    string
	config  *configuration.Configuration
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "descriptor-cli"
	app.Usage = "inspect accounts through their descriptor"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "descriptord.conf",
			Usage: " descriptord configuration `FILE`",
		},
	}

	accountFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "funder, f",
			Value: "",
			Usage: "+funder of the primary account `ACCOUNT`",
		},
		cli.StringFlag{
			Name:  "account, a",
			Value: "",
			Usage: "+primary account `ACCOUNT`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "discriminator",
			Usage:     "compute the discriminator of a record type",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "namespace, n",
					Value: "account",
					Usage: " record `NAMESPACE`",
				},
				cli.StringFlag{
					Name:  "name, N",
					Value: "person",
					Usage: " record `NAME`",
				},
			},
			Action: runDiscriminator,
		},
		{
			Name:      "address",
			Usage:     "derive the primary and descriptor addresses of a funder",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "funder, f",
					Value: "",
					Usage: "*funder `ACCOUNT`",
				},
			},
			Action: runAddress,
		},
		{
			Name:      "account",
			Usage:     "show lamports owner and size of an account",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*`ACCOUNT` to show",
				},
			},
			Action: runAccount,
		},
		{
			Name:      "raw",
			Usage:     "show the discriminator and payload of a primary account",
			ArgsUsage: "\n   (+ = select one)",
			Flags:     accountFlags,
			Action:    runRaw,
		},
		{
			Name:      "schema",
			Usage:     "show the descriptor of a primary account",
			ArgsUsage: "\n   (+ = select one)",
			Flags:     accountFlags,
			Action:    runSchema,
		},
		{
			Name:      "describe",
			Usage:     "decode a primary account using only its descriptor",
			ArgsUsage: "\n   (+ = select one)",
			Flags: []cli.Flag{
				accountFlags[0],
				accountFlags[1],
				cli.StringFlag{
					Name:  "struct, s",
					Value: "",
					Usage: " schema struct `NAME`, default is the first",
				},
			},
			Action: runDescribe,
		},
		{
			Name:   "version",
			Usage:  "display descriptor-cli version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "discriminator" == command {
			return nil
		}

		file := c.GlobalString("config")
		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		theConfiguration, err := configuration.GetConfiguration(file)
		if nil != err {
			return err
		}

		// keep the daemon log separate
		theConfiguration.Logging.File = theConfiguration.Logging.File + ".cli"
		if err := logger.Initialise(theConfiguration.Logging); nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			config:  theConfiguration,
			verbose: verbose,
			e:       e,
			w:       w,
		}

		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); ok {
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bitmark-inc/descriptor/configuration"
	"github.com/bitmark-inc/descriptor/instruction"
	"github.com/bitmark-inc/descriptor/keypair"
	"github.com/bitmark-inc/exitwithstatus"
)

const (
	payerFilename = "payer.json"
)

// setup command handler
//
// commands that run to create key files these commands cannot
// access the ledger or the configuration file
func processSetupCommand(programName string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-payer", "payer":
		fileName := payerFilename
		if len(arguments) > 0 {
			fileName = arguments[0]
		}
		if _, err := os.Stat(fileName); nil == err {
			fmt.Printf("generate payer: %q error: file already exists\n", fileName)
			exitwithstatus.Exit(1)
		}
		keyPair, err := keypair.New()
		if nil != err {
			fmt.Printf("generate payer: %q error: %s\n", fileName, err)
			exitwithstatus.Exit(1)
		}
		if err := keyPair.Save(fileName); nil != err {
			fmt.Printf("generate payer: %q error: %s\n", fileName, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated payer: %s  in: %q\n", keyPair.Address(), fileName)

	case "version", "v":
		fmt.Printf("%s\n", version)

	case "start", "run", "demo",
		"init-self-describing", "isd", "read-self-describing", "rsd",
		"init-compact", "ic", "read-compact", "rc",
		"describe", "d", "address", "addr", "airdrop", "balance", "bal":
		return false // continue processing

	case "config-test", "cfg":
		return false // defer processing until configuration is read

	default:
		switch command {
		case "help", "h", "?":
		case "":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}

		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", programName)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-payer [FILE]           (payer)  - create a payer key pair in: %q\n", payerFilename)
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  demo                       (run)    - initialise and read both encodings with new payers\n")
		fmt.Printf("                                        each on its own scratch ledger\n")
		fmt.Printf("                                        same as no arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  init-self-describing       (isd)    - create the payer's self-describing account\n")
		fmt.Printf("  read-self-describing [ACC] (rsd)    - read a self-describing account\n")
		fmt.Printf("  init-compact               (ic)     - create the payer's compact account\n")
		fmt.Printf("  read-compact [ACC]         (rc)     - read a compact account\n")
		fmt.Printf("                                        ACC is the funder, default is the payer\n")
		fmt.Printf("\n")

		fmt.Printf("  address [ACC]              (addr)   - show the primary and descriptor addresses\n")
		fmt.Printf("  describe [ACC]             (d)      - decode an account through its descriptor\n")
		fmt.Printf("\n")

		fmt.Printf("  airdrop LAMPORTS                    - credit the payer\n")
		fmt.Printf("  balance [ACC]              (bal)    - show lamports of an account\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and prefor normal exit from main
	return true
}

// configuration command handler
//
// commands that just use the configuration without opening the ledger
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		fmt.Printf("configuration is OK\n")
		printJson(os.Stdout, options)
		return true

	default:
		return false
	}
}

// data command handler
//
// commands that run instructions or read the ledger
func processDataCommand(c *client, arguments []string) bool {

	command := "demo"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "demo", "start", "run":
		results, err := c.runDemo()
		if nil != err {
			exitwithstatus.Message("%s", err)
		}
		c.print(results)

	case "init-self-describing", "isd":
		c.run(c.payer.Address(), instruction.InitialiseSelfDescribing)

	case "read-self-describing", "rsd":
		c.run(c.funderArgument(arguments), instruction.ReadSelfDescribing)

	case "init-compact", "ic":
		c.run(c.payer.Address(), instruction.InitialiseCompact)

	case "read-compact", "rc":
		c.run(c.funderArgument(arguments), instruction.ReadCompact)

	case "address", "addr":
		a, err := findAddresses(c.program, c.funderArgument(arguments))
		if nil != err {
			exitwithstatus.Message("derive error: %s", err)
		}
		c.print(a)

	case "describe", "d":
		funder := c.funderArgument(arguments)
		a, err := findAddresses(c.program, funder)
		if nil != err {
			exitwithstatus.Message("derive error: %s", err)
		}
		description, err := c.reader.Describe(a.Primary)
		if nil != err {
			exitwithstatus.Message("describe: %s  error: %s", a.Primary, err)
		}
		c.print(description)

	case "airdrop":
		if len(arguments) < 1 {
			exitwithstatus.Message("missing argument: LAMPORTS")
		}
		lamports, err := strconv.ParseUint(arguments[0], 10, 64)
		if nil != err {
			exitwithstatus.Message("lamports: %q error: %s", arguments[0], err)
		}
		if err := c.store.Airdrop(c.payer.Address(), lamports); nil != err {
			exitwithstatus.Message("airdrop error: %s", err)
		}
		c.print(map[string]uint64{"balance": c.store.Balance(c.payer.Address())})

	case "balance", "bal":
		account := c.funderArgument(arguments)
		c.print(map[string]interface{}{
			"account": account,
			"balance": c.store.Balance(account),
		})

	default:
		return false
	}

	return true
}

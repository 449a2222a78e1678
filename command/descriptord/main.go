// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/bitmark-inc/descriptor/configuration"
	"github.com/bitmark-inc/descriptor/inspect"
	"github.com/bitmark-inc/descriptor/keypair"
	"github.com/bitmark-inc/descriptor/ledger"
	"github.com/bitmark-inc/descriptor/program"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	programName, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", programName, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(programName, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(programName, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(programName, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", programName, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", programName, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", programName, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	programConfiguration, err := theConfiguration.ProgramConfiguration()
	if nil != err {
		log.Criticalf("program configuration error: %s", err)
		exitwithstatus.Message("program configuration error: %s", err)
	}
	theProgram, err := program.New(programConfiguration)
	if nil != err {
		log.Criticalf("program initialise error: %s", err)
		exitwithstatus.Message("program initialise error: %s", err)
	}
	log.Infof("program: %s", theProgram.ID())
	log.Infof("discriminator: %s", theProgram.Discriminator())

	// start the ledger storage
	log.Infof("ledger: %q", theConfiguration.Database.Name)
	store, err := ledger.Open(theConfiguration.Database.Name, false)
	if nil != err {
		log.Criticalf("ledger open error: %s", err)
		exitwithstatus.Message("ledger open error: %s", err)
	}
	defer store.Close()

	payer, created, err := keypair.LoadOrCreate(theConfiguration.PayerFile)
	if nil != err {
		log.Criticalf("payer: %q  error: %s", theConfiguration.PayerFile, err)
		exitwithstatus.Message("payer: %q  error: %s", theConfiguration.PayerFile, err)
	}
	log.Infof("payer: %s", payer.Address())
	if created {
		log.Infof("created payer file: %q", theConfiguration.PayerFile)
		if err := store.Airdrop(payer.Address(), theConfiguration.Airdrop); nil != err {
			log.Criticalf("airdrop error: %s", err)
			exitwithstatus.Message("airdrop error: %s", err)
		}
	}

	c := &client{
		log:     log,
		program: theProgram,
		store:   store,
		reader:  inspect.NewReader(store, theProgram.ID()),
		payer:   payer,
		airdrop: theConfiguration.Airdrop,
		verbose: len(options["verbose"]) > 0,
		quiet:   len(options["quiet"]) > 0,
	}

	if !processDataCommand(c, arguments) {
		exitwithstatus.Message("%s: no such command: %q", programName, arguments[0])
	}

	stats := store.Statistics()
	log.Infof("invocations committed: %d  rolled back: %d  accounts created: %d",
		stats.Committed, stats.RolledBack, stats.AccountsCreated)
	if c.verbose {
		printJson(os.Stderr, stats)
	}
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/program"
	"github.com/bitmark-inc/descriptor/record"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultPayerFile = "payer.json"

	defaultLevelDBDirectory = "data"
	defaultLedgerDatabase   = "ledger.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "descriptord.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultAirdrop = 1000000000 // lamports
)

// path expanded or calculated defaults
var (
	defaultLogLevels = map[string]string{
		"main":            "info",
		"program":         "info",
		logger.DefaultTag: "critical",
	}
)

// DatabaseType - location of the ledger database
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// RecordType - values written by one initialise operation
type RecordType struct {
	FirstName string `gluamapper:"first_name" json:"first_name"`
	LastName  string `gluamapper:"last_name" json:"last_name"`
}

// ProgramType - the deployed program
type ProgramType struct {
	ID             string     `gluamapper:"id" json:"id"`
	SeedPrefix     string     `gluamapper:"seed_prefix" json:"seed_prefix"`
	Namespace      string     `gluamapper:"namespace" json:"namespace"`
	Name           string     `gluamapper:"name" json:"name"`
	SelfDescribing RecordType `gluamapper:"self_describing" json:"self_describing"`
	Compact        RecordType `gluamapper:"compact" json:"compact"`
}

// Configuration - shared by the daemon and the client
type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PayerFile     string               `gluamapper:"payer_file" json:"payer_file"`
	Airdrop       uint64               `gluamapper:"airdrop" json:"airdrop"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Program       ProgramType          `gluamapper:"program" json:"program"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// GetConfiguration - read decode and verify the configuration
func GetConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := defaults()

	if err := ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if err := options.resolve(dataDirectory); nil != err {
		return nil, err
	}

	// done
	return options, nil
}

func defaults() *Configuration {
	demo := program.DefaultConfiguration(address.Zero)

	levels := make(map[string]string, len(defaultLogLevels))
	for tag, level := range defaultLogLevels {
		levels[tag] = level
	}

	return &Configuration{
		DataDirectory: defaultDataDirectory,
		PayerFile:     defaultPayerFile,
		Airdrop:       defaultAirdrop,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultLedgerDatabase,
		},

		Program: ProgramType{
			SeedPrefix:     constants.PrimarySeedPrefix,
			Namespace:      constants.RecordNamespace,
			Name:           constants.RecordName,
			SelfDescribing: RecordType(demo.SelfDescribing),
			Compact:        RecordType(demo.Compact),
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    levels,
		},
	}
}

// make every path absolute and create the directories
func (options *Configuration) resolve(configurationDirectory string) error {

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = configurationDirectory // same directory as the configuration file
	} else {
		options.DataDirectory = filepath.Clean(options.DataDirectory)
	}

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return err
	} else if !fileInfo.IsDir() {
		return fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	if _, err := options.ProgramConfiguration(); nil != err {
		return err
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.PayerFile,
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = ensureAbsolute(*f[1], *f[0])
			}
		default:
			return fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{options.Database.Directory, options.Logging.Directory} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return err
		}
	}

	return nil
}

// ProgramConfiguration - the program values with the id decoded
func (options *Configuration) ProgramConfiguration() (program.Configuration, error) {
	if "" == options.Program.ID {
		return program.Configuration{}, fault.ErrMissingParameters
	}
	id, err := address.FromBase58(options.Program.ID)
	if nil != err {
		return program.Configuration{}, err
	}

	return program.Configuration{
		ProgramID:      id,
		SeedPrefix:     options.Program.SeedPrefix,
		Namespace:      options.Program.Namespace,
		Name:           options.Program.Name,
		SelfDescribing: record.Record(options.Program.SelfDescribing),
		Compact:        record.Record(options.Program.Compact),
	}, nil
}

// ensure the path is absolute
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package program routes instructions to the record handlers
//
// accounts are always passed as:
//
//	0  funder      pays for both accounts
//	1  primary     derived from ["customaddress", funder, bump]
//	2  descriptor  derived from [record discriminator, canonical bump]
//	3  system      optional, the ledger performs account creation
package program

import (
	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/discriminator"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/instruction"
	"github.com/bitmark-inc/descriptor/ledger"
	"github.com/bitmark-inc/descriptor/record"
	"github.com/bitmark-inc/logger"
)

// positions in the account list
const (
	funderIndex     = 0
	primaryIndex    = 1
	descriptorIndex = 2
	minimumAccounts = 3
)

// Configuration - the fixed values of one deployment
type Configuration struct {
	ProgramID      address.Address
	SeedPrefix     string
	Namespace      string
	Name           string
	SelfDescribing record.Record
	Compact        record.Record
}

// DefaultConfiguration - the person record demo values
func DefaultConfiguration(programID address.Address) Configuration {
	return Configuration{
		ProgramID:  programID,
		SeedPrefix: constants.PrimarySeedPrefix,
		Namespace:  constants.RecordNamespace,
		Name:       constants.RecordName,
		SelfDescribing: record.Record{
			FirstName: "Captain",
			LastName:  "Proto",
		},
		Compact: record.Record{
			FirstName: "John",
			LastName:  "Borsh",
		},
	}
}

// Program - a deployed instance
type Program struct {
	id             address.Address
	seedPrefix     []byte
	discriminator  discriminator.T
	selfDescribing record.Codec
	compact        record.Codec
	values         map[instruction.Opcode]record.Record
	log            *logger.L
}

// New - create a program from its configuration
func New(configuration Configuration) (*Program, error) {
	if "" == configuration.SeedPrefix || "" == configuration.Namespace || "" == configuration.Name {
		return nil, fault.ErrMissingParameters
	}
	if len(configuration.SeedPrefix) > constants.MaximumSeedLength {
		return nil, fault.ErrInvalidSeeds
	}

	d := discriminator.Derive(configuration.Namespace, configuration.Name)
	p := &Program{
		id:             configuration.ProgramID,
		seedPrefix:     []byte(configuration.SeedPrefix),
		discriminator:  d,
		selfDescribing: record.NewSelfDescribing(d),
		compact:        record.NewCompact(d),
		values: map[instruction.Opcode]record.Record{
			instruction.InitialiseSelfDescribing: configuration.SelfDescribing,
			instruction.InitialiseCompact:        configuration.Compact,
		},
		log: logger.New("program"),
	}

	// reject values neither codec could ever store
	if _, err := p.selfDescribing.Encode(configuration.SelfDescribing); nil != err {
		return nil, err
	}
	if _, err := p.compact.Encode(configuration.Compact); nil != err {
		return nil, err
	}

	return p, nil
}

// ID - the program address, owner of every account it creates
func (p *Program) ID() address.Address {
	return p.id
}

// Discriminator - tag of the record type
func (p *Program) Discriminator() discriminator.T {
	return p.discriminator
}

// PrimarySeeds - base seeds of the primary account of a funder
func (p *Program) PrimarySeeds(funder address.Address) [][]byte {
	return [][]byte{
		append([]byte(nil), p.seedPrefix...),
		funder.Bytes(),
	}
}

// DescriptorSeeds - base seeds of the descriptor account
func (p *Program) DescriptorSeeds() [][]byte {
	return [][]byte{p.discriminator.Bytes()}
}

// PrimaryAddress - address and canonical bump of a funder's primary
// account, as a client computes them
func (p *Program) PrimaryAddress(funder address.Address) (address.Address, byte, error) {
	return address.FindProgramAddress(p.PrimarySeeds(funder), p.id)
}

// DescriptorAddress - address of the descriptor account
func (p *Program) DescriptorAddress() (address.Address, error) {
	a, _, err := address.FindProgramAddress(p.DescriptorSeeds(), p.id)
	return a, err
}

// Process - run one instruction against a view of the ledger
//
// returns the record written or read; any error leaves the caller to
// discard every change made through l
func (p *Program) Process(l ledger.Ledger, accounts []address.Address, data []byte) (*record.Record, error) {
	i, err := instruction.Unpack(data)
	if nil != err {
		p.log.Warnf("unpack: %x  error: %s", data, err)
		return nil, err
	}

	p.log.Infof("instruction: %s", i)

	if len(accounts) < minimumAccounts {
		return nil, fault.ErrNotEnoughAccounts
	}

	switch i.Opcode {
	case instruction.InitialiseSelfDescribing:
		return p.initialise(l, accounts, i.Bump, p.selfDescribing, p.values[i.Opcode])
	case instruction.ReadSelfDescribing:
		return p.read(l, accounts, p.selfDescribing)
	case instruction.InitialiseCompact:
		return p.initialise(l, accounts, i.Bump, p.compact, p.values[i.Opcode])
	case instruction.ReadCompact:
		return p.read(l, accounts, p.compact)
	default:
		return nil, fault.ErrInvalidInstructionData
	}
}

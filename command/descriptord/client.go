// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/inspect"
	"github.com/bitmark-inc/descriptor/instruction"
	"github.com/bitmark-inc/descriptor/keypair"
	"github.com/bitmark-inc/descriptor/ledger"
	"github.com/bitmark-inc/descriptor/program"
	"github.com/bitmark-inc/descriptor/record"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
)

// client - sends instructions to the program on behalf of a payer
type client struct {
	log     *logger.L
	program *program.Program
	store   *ledger.Store
	reader  *inspect.Reader
	payer   *keypair.KeyPair
	airdrop uint64
	verbose bool
	quiet   bool
}

// the accounts of one funder
type addresses struct {
	Funder     address.Address `json:"funder"`
	Primary    address.Address `json:"primary"`
	Bump       byte            `json:"bump"`
	Descriptor address.Address `json:"descriptor"`
}

type demoResult struct {
	Strategy    string               `json:"strategy"`
	Instruction string               `json:"instruction"`
	Addresses   *addresses           `json:"addresses"`
	Written     *record.Record       `json:"written"`
	Read        *record.Record       `json:"read"`
	Description *inspect.Description `json:"description"`
}

func findAddresses(p *program.Program, funder address.Address) (*addresses, error) {
	primary, bump, err := p.PrimaryAddress(funder)
	if nil != err {
		return nil, err
	}
	descriptor, err := p.DescriptorAddress()
	if nil != err {
		return nil, err
	}
	return &addresses{
		Funder:     funder,
		Primary:    primary,
		Bump:       bump,
		Descriptor: descriptor,
	}, nil
}

// send - one instruction as its own invocation
func (c *client) send(funder address.Address, opcode instruction.Opcode) (*addresses, *record.Record, error) {
	a, err := findAddresses(c.program, funder)
	if nil != err {
		return nil, nil, err
	}

	i := &instruction.Instruction{Opcode: opcode}
	if opcode.IsInitialise() {
		i.Bump = a.Bump
	}

	// the last account is the system program
	accounts := []address.Address{a.Funder, a.Primary, a.Descriptor, address.Zero}
	data := i.Pack()

	c.log.Debugf("send: %s  data: %x", i, data)
	if c.verbose {
		fmt.Fprintf(os.Stderr, "send: %s  accounts: %v  data: %x\n", i, accounts, data)
	}

	var result *record.Record
	err = c.store.Invoke(func(l ledger.Ledger) error {
		r, err := c.program.Process(l, accounts, data)
		result = r
		return err
	})
	if nil != err {
		c.log.Errorf("%s  error: %s", i, err)
		return a, nil, err
	}
	return a, result, nil
}

// run - send one instruction and print the record
func (c *client) run(funder address.Address, opcode instruction.Opcode) {
	a, r, err := c.send(funder, opcode)
	if nil != err {
		exitwithstatus.Message("%s  error: %s", opcode, err)
	}
	c.print(struct {
		Instruction string         `json:"instruction"`
		Addresses   *addresses     `json:"addresses"`
		Record      *record.Record `json:"record"`
	}{opcode.String(), a, r})
}

// the initialise and read pair of each strategy
var demoStrategies = []struct {
	initialise instruction.Opcode
	read       instruction.Opcode
}{
	{instruction.InitialiseSelfDescribing, instruction.ReadSelfDescribing},
	{instruction.InitialiseCompact, instruction.ReadCompact},
}

// scratch - the same client over a fresh in-memory ledger
func (c *client) scratch() (*client, error) {
	store, err := ledger.OpenMemory()
	if nil != err {
		return nil, err
	}
	s := *c
	s.store = store
	s.reader = inspect.NewReader(store, c.program.ID())
	return &s, nil
}

// runDemo - every strategy end to end
//
// both strategies tag the same record type and so share one descriptor
// account, which can hold only one of the two descriptions; each
// strategy runs on its own scratch ledger
func (c *client) runDemo() ([]*demoResult, error) {
	results := make([]*demoResult, 0, len(demoStrategies))
	for _, strategy := range demoStrategies {
		s, err := c.scratch()
		if nil != err {
			return nil, err
		}
		result, err := s.demo(strategy.initialise, strategy.read)
		s.store.Close()
		if nil != err {
			c.log.Errorf("demo: %s  error: %s", strategy.initialise, err)
			return nil, fmt.Errorf("demo: %s  error: %s", strategy.initialise, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// demo - new payer, airdrop, initialise, read back and describe
func (c *client) demo(initialise instruction.Opcode, read instruction.Opcode) (*demoResult, error) {
	payer, err := keypair.New()
	if nil != err {
		return nil, err
	}
	funder := payer.Address()

	c.log.Infof("demo payer: %s", funder)
	if err := c.store.Airdrop(funder, c.airdrop); nil != err {
		return nil, err
	}

	a, written, err := c.send(funder, initialise)
	if nil != err {
		return nil, err
	}
	_, readBack, err := c.send(funder, read)
	if nil != err {
		return nil, err
	}
	description, err := c.reader.Describe(a.Primary)
	if nil != err {
		return nil, err
	}

	strategy := "self-describing"
	if initialise.IsCompact() {
		strategy = "compact"
	}

	return &demoResult{
		Strategy:    strategy,
		Instruction: initialise.String(),
		Addresses:   a,
		Written:     written,
		Read:        readBack,
		Description: description,
	}, nil
}

// funderArgument - first argument as an address, default the payer
func (c *client) funderArgument(arguments []string) address.Address {
	if 0 == len(arguments) {
		return c.payer.Address()
	}
	a, err := address.FromBase58(arguments[0])
	if nil != err {
		exitwithstatus.Message("account: %q error: %s", arguments[0], err)
	}
	return a
}

func (c *client) print(message interface{}) {
	if c.quiet {
		return
	}
	if err := printJson(os.Stdout, message); nil != err {
		exitwithstatus.Message("print error: %s", err)
	}
}

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

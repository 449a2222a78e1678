// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/ledger"
	"github.com/bitmark-inc/descriptor/program"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

func checkAccount(name string, value string) (address.Address, error) {
	if "" == value {
		return address.Zero, fmt.Errorf("%s is required", name)
	}
	a, err := address.FromBase58(value)
	if nil != err {
		return address.Zero, fmt.Errorf("%s: %q error: %s", name, value, err)
	}
	return a, nil
}

func newProgram(m *metadata) (*program.Program, error) {
	configuration, err := m.config.ProgramConfiguration()
	if nil != err {
		return nil, err
	}
	return program.New(configuration)
}

// openLedger - read only, the daemon must not be running
func openLedger(m *metadata) (*ledger.Store, error) {
	if m.verbose {
		fmt.Fprintf(m.e, "ledger: %s\n", m.config.Database.Name)
	}
	return ledger.Open(m.config.Database.Name, true)
}

// primaryAccount - from --account or derived from --funder
func primaryAccount(c *cli.Context, m *metadata) (address.Address, error) {
	account := c.String("account")
	funder := c.String("funder")

	switch {
	case "" != account && "" != funder:
		return address.Zero, fmt.Errorf("only one of account or funder is allowed")
	case "" != account:
		return checkAccount("account", account)
	}

	f, err := checkAccount("funder", funder)
	if nil != err {
		return address.Zero, err
	}
	p, err := newProgram(m)
	if nil != err {
		return address.Zero, err
	}
	primary, bump, err := p.PrimaryAddress(f)
	if nil != err {
		return address.Zero, err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "primary: %s  bump: %d\n", primary, bump)
	}
	return primary, nil
}

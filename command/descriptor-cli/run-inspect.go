// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/descriptor/inspect"
	"github.com/bitmark-inc/descriptor/record"
)

func runAccount(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	target, err := checkAccount("account", c.String("account"))
	if nil != err {
		return err
	}

	store, err := openLedger(m)
	if nil != err {
		return err
	}
	defer store.Close()

	account, err := store.Account(target)
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"account":  target,
		"lamports": account.Lamports,
		"owner":    account.Owner,
		"size":     len(account.Data),
	})
}

func runRaw(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	primary, err := primaryAccount(c, m)
	if nil != err {
		return err
	}

	reader, closer, err := newReader(m)
	if nil != err {
		return err
	}
	defer closer()

	d, payload, err := reader.RawAccountData(primary)
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"account":       primary,
		"discriminator": d,
		"payload":       hex.EncodeToString(payload),
	})
}

func runSchema(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	primary, err := primaryAccount(c, m)
	if nil != err {
		return err
	}

	reader, closer, err := newReader(m)
	if nil != err {
		return err
	}
	defer closer()

	descriptor, data, err := reader.AccountSchema(primary)
	if nil != err {
		return err
	}
	if m.verbose {
		fmt.Fprintf(m.e, "descriptor: %s  size: %d\n", descriptor, len(data))
	}

	if record.IsLayout(data) {
		layout, err := record.UnpackLayout(data)
		if nil != err {
			return err
		}
		return printJson(m.w, layout)
	}

	_, err = m.w.Write(data)
	return err
}

func runDescribe(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	primary, err := primaryAccount(c, m)
	if nil != err {
		return err
	}

	reader, closer, err := newReader(m)
	if nil != err {
		return err
	}
	defer closer()

	description, err := reader.DescribeAs(primary, c.String("struct"))
	if nil != err {
		return err
	}
	return printJson(m.w, description)
}

func newReader(m *metadata) (*inspect.Reader, func(), error) {
	p, err := newProgram(m)
	if nil != err {
		return nil, nil, err
	}
	store, err := openLedger(m)
	if nil != err {
		return nil, nil, err
	}
	return inspect.NewReader(store, p.ID()), func() { store.Close() }, nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/descriptor/discriminator"
)

func runDiscriminator(c *cli.Context) error {
	namespace := c.String("namespace")
	name := c.String("name")
	if "" == namespace || "" == name {
		return fmt.Errorf("namespace and name are required")
	}

	d := discriminator.Derive(namespace, name)
	return printJson(c.App.Writer, map[string]interface{}{
		"namespace":     namespace,
		"name":          name,
		"discriminator": d,
	})
}

func runAddress(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	funder, err := checkAccount("funder", c.String("funder"))
	if nil != err {
		return err
	}

	p, err := newProgram(m)
	if nil != err {
		return err
	}
	primary, bump, err := p.PrimaryAddress(funder)
	if nil != err {
		return err
	}
	descriptor, err := p.DescriptorAddress()
	if nil != err {
		return err
	}

	return printJson(m.w, map[string]interface{}{
		"program":    p.ID(),
		"funder":     funder,
		"primary":    primary,
		"bump":       bump,
		"descriptor": descriptor,
	})
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}

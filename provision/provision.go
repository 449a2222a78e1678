// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package provision creates rent exempt program owned accounts at
// verified derived addresses
package provision

import (
	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/ledger"
	"github.com/bitmark-inc/logger"
)

// Provisioner - allocates accounts for one program
type Provisioner struct {
	ledger  ledger.Ledger
	program address.Address
	log     *logger.L
}

// New - provisioner for accounts owned by program
func New(l ledger.Ledger, program address.Address) *Provisioner {
	return &Provisioner{
		ledger:  l,
		program: program,
		log:     logger.New("provision"),
	}
}

// Provision - fund target with the rent exempt minimum for size bytes
// and allocate it, signing with the seeds target was verified from
//
// ledger failures are returned unchanged
func (p *Provisioner) Provision(funder address.Address, target address.Derived, size uint64) error {
	if target.IsZero() {
		return fault.ErrInvalidSeeds
	}
	if 0 == size || size > constants.MaximumAccountSize {
		return fault.ErrInvalidAccountSize
	}

	lamports := p.ledger.MinimumBalance(size)

	p.log.Debugf("create: %s  size: %d  lamports: %d  bump: %d", target.Address(), size, lamports, target.Bump())

	err := p.ledger.CreateAccount(funder, target.Address(), lamports, size, p.program, target.Seeds())
	if nil != err {
		p.log.Warnf("create: %s  error: %s", target.Address(), err)
		return err
	}

	p.log.Infof("created: %s  size: %d  funded by: %s", target.Address(), size, funder)
	return nil
}
